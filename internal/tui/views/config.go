package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/mood/internal/config"
	"github.com/xolan/mood/internal/service"
	"github.com/xolan/mood/internal/tui/ui"
)

// ConfigModel is the model for the config view
type ConfigModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	// UI state
	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	themeName string
	saved     *ui.ThemeSavedMsg

	// Theme selector state
	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int
}

// NewConfigModel creates a new config view model
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	m := ConfigModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        themeProvider.AvailableThemes(),
		themeName:     themeProvider.CurrentName(),
	}
	m.resetCursor()
	return m
}

// configLoadedMsg is sent when config is loaded
type configLoadedMsg struct {
	config config.Config
	path   string
	exists bool
}

// maxVisibleThemes is the maximum number of themes to show at once
const maxVisibleThemes = 10

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}
		if key.Matches(msg, m.keys.Themes) {
			m.selectingTheme = true
			m.saved = nil
			m.updateThemeOffset()
		}
		return m, nil

	case configLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.resetCursor()
		return m, nil

	case ui.ThemeSavedMsg:
		m.saved = &msg
		if msg.Err == nil {
			m.exists = true
			m.config.Theme = msg.ThemeName
		}
		return m, nil
	}

	return m, nil
}

// handleThemeSelection handles keys when theme selector is open
func (m ConfigModel) handleThemeSelection(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.updateThemeOffset()
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.updateThemeOffset()
		}
	case key.Matches(msg, m.keys.Select):
		m.selectingTheme = false
		if len(m.themes) == 0 {
			return m, nil
		}
		return m, m.requestThemeChange(m.themes[m.themeCursor])
	case key.Matches(msg, m.keys.Back):
		m.selectingTheme = false
		m.resetCursor()
	}
	return m, nil
}

// resetCursor moves the selector cursor to the current theme
func (m *ConfigModel) resetCursor() {
	m.themeCursor = max(m.themeProvider.Index(m.themeName), 0)
	m.updateThemeOffset()
}

// updateThemeOffset adjusts scroll offset to keep cursor visible
func (m *ConfigModel) updateThemeOffset() {
	if m.themeCursor < m.themeOffset {
		m.themeOffset = m.themeCursor
	} else if m.themeCursor >= m.themeOffset+maxVisibleThemes {
		m.themeOffset = m.themeCursor - maxVisibleThemes + 1
	}
}

// requestThemeChange creates a command to request a theme change by name
func (m ConfigModel) requestThemeChange(themeName string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeChangeRequestMsg{ThemeName: themeName}
	}
}

// IsSelecting returns true while the theme selector is open
func (m ConfigModel) IsSelecting() bool {
	return m.selectingTheme
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	b.WriteString(renderField(m.styles, "Config file:", m.path))
	b.WriteString(m.styles.StatLabel.Render("Status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n\n")

	b.WriteString(separator(m.width))
	b.WriteString("\n\n")

	ic := m.config.Insight
	b.WriteString(renderField(m.styles, "timezone:", m.config.Timezone))
	b.WriteString(renderField(m.styles, "storage:", m.services.StorageDir))
	b.WriteString(renderField(m.styles, "insight mode:", ic.Mode))
	if ic.Endpoint != "" {
		b.WriteString(renderField(m.styles, "endpoint:", ic.Endpoint))
	} else {
		b.WriteString(renderField(m.styles, "provider:", ic.Provider))
		b.WriteString(renderField(m.styles, "model:", ic.Model))
		apiKey := "set"
		if ic.APIKey == "" {
			apiKey = "(not set)"
		}
		b.WriteString(renderField(m.styles, "api key:", apiKey))
	}

	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
		return b.String()
	}

	b.WriteString(renderField(m.styles, "theme:", m.themeName))
	if m.themeProvider.Fallback() && m.themeName == ui.DefaultTheme {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Unknown theme %q in config, using %s", m.config.Theme, ui.DefaultTheme)))
		b.WriteString("\n")
	}
	if m.saved != nil {
		if m.saved.Err != nil {
			b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: theme not saved: %v", m.saved.Err)))
		} else {
			b.WriteString(m.styles.Success.Render(fmt.Sprintf("Theme %s saved", m.saved.ThemeName)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.StatusHelp.Render("Press Enter or 't' to change theme"))

	return b.String()
}

// renderThemeSelector renders the theme selection list
func (m ConfigModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString(m.styles.StatLabel.Render("theme:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render("Select a theme"))
	b.WriteString("\n\n")

	endIdx := min(m.themeOffset+maxVisibleThemes, len(m.themes))

	if m.themeOffset > 0 {
		b.WriteString(m.styles.StatusHelp.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}

	for i := m.themeOffset; i < endIdx; i++ {
		theme := m.themes[i]
		current := ""
		if theme == m.themeName {
			current = m.styles.Success.Render(" (current)")
		}
		if i == m.themeCursor {
			b.WriteString(m.styles.EntrySelected.Render("▸ "+theme) + current)
		} else {
			b.WriteString("  " + m.styles.StatValue.Render(theme) + current)
		}
		b.WriteString("\n")
	}

	if endIdx < len(m.themes) {
		b.WriteString(m.styles.StatusHelp.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatusHelp.Render("↑/↓ navigate  Enter select  Esc cancel"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadConfig creates a command to load config
func (m ConfigModel) loadConfig() tea.Cmd {
	return func() tea.Msg {
		return configLoadedMsg{
			config: m.services.Config.Get(),
			path:   m.services.Config.GetPath(),
			exists: m.services.Config.Exists(),
		}
	}
}
