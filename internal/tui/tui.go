// Package tui provides the Terminal User Interface for the mood application.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/mood/internal/service"
	"github.com/xolan/mood/internal/tui/ui"
	"github.com/xolan/mood/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabLog Tab = iota
	TabHistory
	TabTrend
	TabConfig
)

var tabNames = []string{"Log", "History", "Trend", "Config"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	logView     views.LogModel
	historyView views.HistoryModel
	trendView   views.TrendModel
	configView  views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabLog,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		logView:       views.NewLogModel(services, styles, keys),
		historyView:   views.NewHistoryModel(services, styles, keys),
		trendView:     views.NewTrendModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.logView.Init(),
		m.historyView.Init(),
		m.trendView.Init(),
		m.configView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.logView.Cancel()
			return m, tea.Quit
		}

		// The log form and the theme selector own every key but ctrl+c
		if m.isModalInputMode() {
			return m.updateActive(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.NextTab):
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, nil
		case key.Matches(msg, m.keys.Tab1):
			m.activeTab = TabLog
			return m, nil
		case key.Matches(msg, m.keys.Tab2):
			m.activeTab = TabHistory
			return m, nil
		case key.Matches(msg, m.keys.Tab3):
			m.activeTab = TabTrend
			return m, nil
		case key.Matches(msg, m.keys.Tab4):
			m.activeTab = TabConfig
			return m, nil
		}
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // Account for tabs and status bar
		m.logView.SetSize(m.width, contentHeight)
		m.historyView.SetSize(m.width, contentHeight)
		m.trendView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		if !m.themeProvider.SetTheme(msg.ThemeName) {
			return m, nil
		}
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		model, cmd := m.broadcast(ui.ThemeChangedMsg{ThemeName: newTheme, Styles: m.styles})
		return model, tea.Batch(cmd, m.saveThemeConfig(newTheme))
	}

	// Loads, spinner ticks and change notifications go to every view
	return m.broadcast(msg)
}

// updateActive sends msg to the active view only
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabLog:
		m.logView, cmd = m.logView.Update(msg)
	case TabHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	case TabTrend:
		m.trendView, cmd = m.trendView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}
	return m, cmd
}

// broadcast sends msg to every view
func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 4)
	m.logView, cmds[0] = m.logView.Update(msg)
	m.historyView, cmds[1] = m.historyView.Update(msg)
	m.trendView, cmds[2] = m.trendView.Update(msg)
	m.configView, cmds[3] = m.configView.Update(msg)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabLog:
		b.WriteString(m.logView.View())
	case TabHistory:
		b.WriteString(m.historyView.View())
	case TabTrend:
		b.WriteString(m.trendView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	switch {
	case m.activeTab == TabLog && m.logView.IsSubmitting():
		parts = append(parts, m.renderKeyHelp("Esc", "cancel request"))
		parts = append(parts, m.renderKeyHelp("ctrl+c", "quit"))
	case m.activeTab == TabLog && m.logView.IsInputMode():
		parts = append(parts, m.renderKeyHelp("Tab", "switch field"))
		parts = append(parts, m.renderKeyHelp("Enter", "save"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	case m.activeTab == TabConfig && m.configView.IsSelecting():
		parts = append(parts, m.renderKeyHelp("↑/↓", "navigate"))
		parts = append(parts, m.renderKeyHelp("Enter", "select"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	default:
		switch m.activeTab {
		case TabLog:
			parts = append(parts, m.renderKeyHelp("n", "new entry"))
		case TabHistory:
			parts = append(parts, m.renderKeyHelp("j/k", "select"))
			parts = append(parts, m.renderKeyHelp("i", "insight"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabTrend:
			parts = append(parts, m.renderKeyHelp("d", "daily/entries"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-4", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode reports whether the active view captures every key
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabLog:
		return m.logView.IsInputMode()
	case TabConfig:
		return m.configView.IsSelecting()
	}
	return false
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeSavedMsg{
			ThemeName: themeName,
			Err:       m.services.Config.SetTheme(themeName),
		}
	}
}

// renderHelpOverlay renders the keyboard shortcuts of the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("  ctrl+c     Quit from anywhere\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabLog:
		help.WriteString(m.styles.StatLabel.Render("Log:"))
		help.WriteString("\n")
		help.WriteString("  n/Enter    New entry\n")
		help.WriteString("  Tab        Switch field\n")
		help.WriteString("  Enter      Save\n")
		help.WriteString("  Esc        Cancel form or request\n")
	case TabHistory:
		help.WriteString(m.styles.StatLabel.Render("History:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  i          Request missing insight\n")
		help.WriteString("  r          Refresh\n")
	case TabTrend:
		help.WriteString(m.styles.StatLabel.Render("Trend:"))
		help.WriteString("\n")
		help.WriteString("  d          Toggle daily averages\n")
		help.WriteString("  r          Refresh\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatusHelp.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(services *service.Services) error {
	p := tea.NewProgram(New(services), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
