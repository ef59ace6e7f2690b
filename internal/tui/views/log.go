package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/mood/internal/cli"
	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/service"
	"github.com/xolan/mood/internal/tui/ui"
)

// Form fields of the log view
const (
	fieldScale = iota
	fieldDescription
)

// LogModel is the model for the log view
type LogModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	loc      *time.Location

	// UI state
	width   int
	height  int
	latest  *entry.MoodEntry
	logged  *entry.MoodEntry
	warning string
	err     error

	// Input state for a new entry
	inputMode  bool
	focus      int
	scaleInput textinput.Model
	descInput  textinput.Model

	// In-flight submission
	submitting bool
	cancel     context.CancelFunc
	spinner    spinner.Model
}

// NewLogModel creates a new log view model
func NewLogModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) LogModel {
	scale := textinput.New()
	scale.Placeholder = "1-10"
	scale.CharLimit = 5
	scale.Width = 6

	desc := textinput.New()
	desc.Placeholder = "How do you feel?"
	desc.CharLimit = 500
	desc.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return LogModel{
		services:   services,
		styles:     styles,
		keys:       keys,
		loc:        location(services),
		scaleInput: scale,
		descInput:  desc,
		spinner:    sp,
	}
}

// latestLoadedMsg is sent when the most recent entry is loaded
type latestLoadedMsg struct {
	entry *entry.MoodEntry
}

// entrySubmittedMsg is sent when a submission finishes, successfully or not
type entrySubmittedMsg struct {
	entry     *entry.MoodEntry
	err       error
	cancelled bool
}

// ErrCancelled is reported when a submission is cancelled before its insight arrived.
var ErrCancelled = errors.New("request cancelled, entry not saved")

// Init implements tea.Model
func (m LogModel) Init() tea.Cmd {
	return m.loadLatest()
}

// Update implements tea.Model
func (m LogModel) Update(msg tea.Msg) (LogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputMode(msg)
		}
		if key.Matches(msg, m.keys.New) {
			return m, m.startInput()
		}
		return m, nil

	case latestLoadedMsg:
		m.latest = msg.entry
		return m, nil

	case entrySubmittedMsg:
		return m.handleSubmitted(msg)

	case ui.EntriesChangedMsg:
		e := msg.Entry
		m.latest = &e
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
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

	// Cursor blink and other input messages
	if m.inputMode {
		return m.updateFocused(msg)
	}
	return m, nil
}

// startInput opens an empty form with the scale focused
func (m *LogModel) startInput() tea.Cmd {
	m.inputMode = true
	m.err = nil
	m.warning = ""
	m.logged = nil
	m.scaleInput.SetValue("")
	m.descInput.SetValue("")
	m.setFocus(fieldScale)
	return textinput.Blink
}

// handleInputMode handles key events when the form is open
func (m LogModel) handleInputMode(msg tea.KeyMsg) (LogModel, tea.Cmd) {
	if m.submitting {
		// Only cancellation is possible while the insight is requested
		if key.Matches(msg, m.keys.Back) && m.cancel != nil {
			m.cancel()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.inputMode = false
		m.err = nil
		m.scaleInput.Blur()
		m.descInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		m.setFocus(1 - m.focus)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Select):
		if m.focus == fieldScale {
			m.setFocus(fieldDescription)
			return m, textinput.Blink
		}
		return m.submit()
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input
func (m LogModel) updateFocused(msg tea.Msg) (LogModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == fieldScale {
		m.scaleInput, cmd = m.scaleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m *LogModel) setFocus(field int) {
	m.focus = field
	if field == fieldScale {
		m.descInput.Blur()
		m.scaleInput.Focus()
		return
	}
	m.scaleInput.Blur()
	m.descInput.Focus()
}

// submit validates the form and starts the submission
func (m LogModel) submit() (LogModel, tea.Cmd) {
	scale, err := entry.ParseScale(m.scaleInput.Value())
	if err != nil {
		m.err = err
		m.setFocus(fieldScale)
		return m, nil
	}
	description := strings.TrimSpace(m.descInput.Value())
	if err := entry.Validate(scale, description); err != nil {
		m.err = err
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.err = nil
	m.submitting = true
	m.cancel = cancel
	return m, tea.Batch(m.spinner.Tick, m.submitEntry(ctx, scale, description))
}

// handleSubmitted closes the form once the entry is stored
func (m LogModel) handleSubmitted(msg entrySubmittedMsg) (LogModel, tea.Cmd) {
	m.submitting = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	switch {
	case msg.err == nil:
	case errors.Is(msg.err, service.ErrInsightPending) && msg.entry != nil:
		m.warning = "Entry saved without an insight, press 'i' on it in History to retry"
	case msg.cancelled:
		m.err = ErrCancelled
		return m, nil
	default:
		// Keep the form open so the entry can be resubmitted
		m.err = msg.err
		return m, nil
	}

	m.inputMode = false
	m.scaleInput.Blur()
	m.descInput.Blur()
	m.logged = msg.entry
	return m, entriesChanged(*msg.entry)
}

// IsInputMode returns true if the form is open
func (m LogModel) IsInputMode() bool {
	return m.inputMode
}

// IsSubmitting returns true while an insight is being requested
func (m LogModel) IsSubmitting() bool {
	return m.submitting
}

// Cancel aborts an in-flight submission
func (m LogModel) Cancel() {
	if m.cancel != nil {
		m.cancel()
	}
}

// View implements tea.Model
func (m LogModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Log how you feel"))
	b.WriteString("\n\n")

	if m.inputMode {
		b.WriteString(m.renderForm())
		return b.String()
	}

	if m.logged != nil {
		b.WriteString(m.styles.Success.Render("Logged: "))
		b.WriteString(m.styles.MoodStyle(m.logged.Scale).Render(cli.FormatMood(m.logged.Scale)))
		b.WriteString(" " + m.logged.Description + "\n\n")
		b.WriteString(renderEntryDetail(*m.logged, m.styles, m.loc, m.width))
		if m.warning != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.Warning.Render(m.warning))
			b.WriteString("\n")
		}
	} else if m.latest != nil {
		b.WriteString(m.styles.StatLabel.Render("Latest entry"))
		b.WriteString("\n\n")
		b.WriteString(renderEntryDetail(*m.latest, m.styles, m.loc, m.width))
	} else {
		b.WriteString(m.styles.StatusHelp.Render("No entries yet"))
		b.WriteString("\n")
	}

	mode := "strict, insight first"
	if m.services.Entry.Deferred() {
		mode = "deferred, save first"
	}
	b.WriteString("\n")
	b.WriteString(renderField(m.styles, "Insight mode:", mode))
	b.WriteString("\n")
	b.WriteString(m.styles.StatusHelp.Render("Press 'n' to log a new entry"))

	return b.String()
}

// renderForm renders the new entry form
func (m LogModel) renderForm() string {
	var b strings.Builder

	b.WriteString(m.styles.InputLabel.Render("Scale:"))
	b.WriteString(m.inputStyle(fieldScale).Render(m.scaleInput.View()))
	if scale, err := entry.ParseScale(m.scaleInput.Value()); err == nil {
		b.WriteString(" ")
		b.WriteString(m.styles.MoodStyle(scale).Render(entry.Label(scale)))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.InputLabel.Render("Description:"))
	b.WriteString(m.inputStyle(fieldDescription).Render(m.descInput.View()))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.submitting {
		b.WriteString(m.spinner.View())
		b.WriteString(" Requesting insight...")
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatusHelp.Render("Esc to cancel"))
		return b.String()
	}

	b.WriteString(m.styles.StatusHelp.Render("Tab to switch field, Enter to save, Esc to cancel"))
	return b.String()
}

func (m LogModel) inputStyle(field int) lipgloss.Style {
	if m.focus == field {
		return m.styles.InputFocused
	}
	return m.styles.Input
}

// SetSize sets the view dimensions
func (m *LogModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadLatest creates a command to load the most recent entry
func (m LogModel) loadLatest() tea.Cmd {
	return func() tea.Msg {
		latest, err := m.services.Entry.Latest()
		if err != nil {
			return latestLoadedMsg{}
		}
		return latestLoadedMsg{entry: latest}
	}
}

// submitEntry creates a command that stores the entry using the configured insight mode
func (m LogModel) submitEntry(ctx context.Context, scale int, description string) tea.Cmd {
	return func() tea.Msg {
		e, err := m.services.Entry.Submit(ctx, scale, description)
		return entrySubmittedMsg{entry: e, err: err, cancelled: ctx.Err() != nil}
	}
}
