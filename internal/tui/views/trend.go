package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/mood/internal/cli"
	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/service"
	"github.com/xolan/mood/internal/stats"
	"github.com/xolan/mood/internal/tui/ui"
)

// TrendModel is the model for the trend view
type TrendModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	loc      *time.Location

	// UI state
	width   int
	height  int
	size    int
	daily   bool
	result  *service.TrendResult
	loading bool
	err     error
}

// NewTrendModel creates a new trend view model
func NewTrendModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) TrendModel {
	return TrendModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loc:      location(services),
		size:     stats.ChartSize,
		loading:  true,
	}
}

// trendLoadedMsg is sent when the trend is computed
type trendLoadedMsg struct {
	result *service.TrendResult
	err    error
}

// Init implements tea.Model
func (m TrendModel) Init() tea.Cmd {
	return m.loadTrend()
}

// Update implements tea.Model
func (m TrendModel) Update(msg tea.Msg) (TrendModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Daily):
			m.daily = !m.daily
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.loadTrend()
		}

	case trendLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.result = msg.result
		return m, nil

	case ui.EntriesChangedMsg:
		return m, m.loadTrend()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m TrendModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Mood trend, last %d entries", m.size)
	if m.daily {
		title += " by day"
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	r := m.result
	b.WriteString(renderCorruption(m.styles, r.Corruption))

	if !r.ShowChart {
		b.WriteString(m.styles.StatusHelp.Render(fmt.Sprintf("Not enough entries for a trend (have %d, need %d)", len(r.Points), stats.MinChartEntries)))
		return b.String()
	}

	b.WriteString(m.styles.Sparkline.Render(cli.Sparkline(r.Points)))
	b.WriteString("\n\n")

	if m.daily {
		b.WriteString(m.renderDaily(r.Daily))
	} else {
		b.WriteString(m.renderPoints(r.Points))
	}

	b.WriteString("\n")
	b.WriteString(separator(m.width))
	b.WriteString("\n\n")
	b.WriteString(m.renderSummary(r.Summary))

	if r.Overall.Count > r.Summary.Count {
		b.WriteString(renderField(m.styles, "All-time:", fmt.Sprintf("%.1f over %d entries", r.Overall.Average, r.Overall.Count)))
	}

	return b.String()
}

// renderPoints draws one bar per entry, oldest first
func (m TrendModel) renderPoints(points []entry.MoodEntry) string {
	var b strings.Builder
	for _, e := range points {
		b.WriteString(m.styles.EntryDate.Render(cli.FormatDate(e.Date, m.loc)))
		b.WriteString(m.styles.MoodStyle(e.Scale).Render(cli.Bar(e.Scale)))
		b.WriteString(" ")
		b.WriteString(m.styles.StatValue.Render(cli.FormatScale(e.Scale)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderDaily draws the average of each day
func (m TrendModel) renderDaily(days []stats.DayAverage) string {
	var b strings.Builder
	for _, d := range days {
		scale := int(d.Average + 0.5)
		b.WriteString(m.styles.EntryDate.Render(d.Day.Format("Mon Jan 2")))
		b.WriteString(m.styles.MoodStyle(scale).Render(cli.Bar(scale)))
		b.WriteString(" ")
		b.WriteString(m.styles.StatValue.Render(fmt.Sprintf("%.1f", d.Average)))
		b.WriteString(m.styles.StatusHelp.Render(fmt.Sprintf("  %d %s", d.Count, cli.Pluralize("entry", d.Count))))
		b.WriteString("\n")
	}
	return b.String()
}

// renderSummary renders the aggregate numbers of the charted entries
func (m TrendModel) renderSummary(s stats.Summary) string {
	var b strings.Builder
	avg := int(s.Average + 0.5)
	b.WriteString(m.styles.StatLabel.Render("Average:") + " " +
		m.styles.MoodStyle(avg).Render(fmt.Sprintf("%.1f (%s)", s.Average, entry.Label(avg))) + "\n")
	b.WriteString(m.styles.StatLabel.Render("Lowest:") + " " + m.styles.MoodStyle(s.Min).Render(cli.FormatMood(s.Min)) + "\n")
	b.WriteString(m.styles.StatLabel.Render("Highest:") + " " + m.styles.MoodStyle(s.Max).Render(cli.FormatMood(s.Max)) + "\n")
	b.WriteString(renderField(m.styles, "With insight:", fmt.Sprintf("%d/%d", s.WithInsight, s.Count)))
	return b.String()
}

// SetSize sets the view dimensions
func (m *TrendModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadTrend creates a command to compute the trend
func (m TrendModel) loadTrend() tea.Cmd {
	return func() tea.Msg {
		result, err := m.services.Trend.Trend(m.size)
		return trendLoadedMsg{result: result, err: err}
	}
}
