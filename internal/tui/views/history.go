package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/mood/internal/cli"
	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/service"
	"github.com/xolan/mood/internal/storage"
	"github.com/xolan/mood/internal/tui/ui"
)

// detailHeight is the number of lines reserved below the list for the selected entry
const detailHeight = 9

// HistoryModel is the model for the history view
type HistoryModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	loc      *time.Location

	// UI state
	width      int
	height     int
	entries    []entry.MoodEntry
	shortIDs   map[string]string
	idWidth    int
	corruption *storage.CorruptionError
	cursor     int
	offset     int
	loading    bool
	err        error

	// Insight retry for the selected entry
	attaching bool
	notice    string
	noticeErr error
	spinner   spinner.Model
}

// NewHistoryModel creates a new history view model
func NewHistoryModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) HistoryModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return HistoryModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loc:      location(services),
		loading:  true,
		spinner:  sp,
	}
}

// insightAttachedMsg is sent when an insight retry finishes
type insightAttachedMsg struct {
	entry *entry.MoodEntry
	err   error
}

// Init implements tea.Model
func (m HistoryModel) Init() tea.Cmd {
	return loadEntries(m.services)
}

// Update implements tea.Model
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.entries = msg.result.Entries
		m.shortIDs = cli.ShortIDs(msg.result.IDs)
		m.idWidth = 0
		for _, id := range m.shortIDs {
			m.idWidth = max(m.idWidth, len(id))
		}
		m.corruption = msg.result.Corruption
		m.cursor = max(min(m.cursor, len(m.entries)-1), 0)
		m.updateOffset()
		return m, nil

	case insightAttachedMsg:
		m.attaching = false
		m.noticeErr = msg.err
		m.notice = ""
		if msg.err != nil {
			return m, nil
		}
		m.notice = "Insight attached"
		return m, entriesChanged(*msg.entry)

	case ui.EntriesChangedMsg:
		return m, loadEntries(m.services)

	case spinner.TickMsg:
		if !m.attaching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.spinner.Style = msg.Styles.Spinner
		return m, nil
	}

	return m, nil
}

// handleKey handles navigation and actions on the selected entry
func (m HistoryModel) handleKey(msg tea.KeyMsg) (HistoryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.updateOffset()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.updateOffset()
		}
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, loadEntries(m.services)
	case key.Matches(msg, m.keys.Insight):
		selected, ok := m.Selected()
		if !ok || selected.HasInsight() || m.attaching {
			return m, nil
		}
		m.attaching = true
		m.notice = ""
		m.noticeErr = nil
		return m, tea.Batch(m.spinner.Tick, m.attachInsight(selected.ID))
	}
	return m, nil
}

// visibleRows is the number of list rows that fit above the detail panel
func (m HistoryModel) visibleRows() int {
	return max(m.height-detailHeight-4, 3)
}

// updateOffset adjusts scroll offset to keep cursor visible
func (m *HistoryModel) updateOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// Selected returns the entry under the cursor
func (m HistoryModel) Selected() (entry.MoodEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return entry.MoodEntry{}, false
	}
	return m.entries[m.cursor], true
}

// View implements tea.Model
func (m HistoryModel) View() string {
	var b strings.Builder

	title := "History"
	if len(m.entries) > 0 {
		title = fmt.Sprintf("History (%d %s)", len(m.entries), cli.Pluralize("entry", len(m.entries)))
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

	b.WriteString(renderCorruption(m.styles, m.corruption))

	if len(m.entries) == 0 {
		b.WriteString(m.styles.StatusHelp.Render("No entries found"))
		return b.String()
	}

	end := min(m.offset+m.visibleRows(), len(m.entries))
	if m.offset > 0 {
		b.WriteString(m.styles.StatusHelp.Render("  ↑ newer entries above"))
		b.WriteString("\n")
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(renderEntryLine(m.entries[i], m.shortIDs[m.entries[i].ID], m.idWidth, m.styles, m.loc, m.width, i == m.cursor))
		b.WriteString("\n")
	}
	if end < len(m.entries) {
		b.WriteString(m.styles.StatusHelp.Render("  ↓ older entries below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(separator(m.width))
	b.WriteString("\n\n")

	selected, _ := m.Selected()
	b.WriteString(renderEntryDetail(selected, m.styles, m.loc, m.width))

	switch {
	case m.attaching:
		b.WriteString("\n" + m.spinner.View() + " Requesting insight...")
	case m.noticeErr != nil:
		b.WriteString("\n" + m.styles.Error.Render(fmt.Sprintf("Error: %v", m.noticeErr)))
	case m.notice != "":
		b.WriteString("\n" + m.styles.Success.Render(m.notice))
	case !selected.HasInsight():
		b.WriteString("\n" + m.styles.StatusHelp.Render("Press 'i' to request the insight"))
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateOffset()
}

// attachInsight creates a command that requests the insight of a stored entry
func (m HistoryModel) attachInsight(id string) tea.Cmd {
	return func() tea.Msg {
		e, err := m.services.Entry.AttachInsight(context.Background(), id)
		return insightAttachedMsg{entry: e, err: err}
	}
}
