// Package views holds the tab views of the mood TUI.
package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/mood/internal/cli"
	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/service"
	"github.com/xolan/mood/internal/storage"
	"github.com/xolan/mood/internal/tui/ui"
)

// minDescWidth keeps descriptions readable on narrow terminals
const minDescWidth = 20

// entriesLoadedMsg is sent when the entry list is loaded
type entriesLoadedMsg struct {
	result *service.ListResult
	err    error
}

// loadEntries creates a command that lists every entry, newest first
func loadEntries(services *service.Services) tea.Cmd {
	return func() tea.Msg {
		result, err := services.Entry.List(service.ListOptions{})
		return entriesLoadedMsg{result: result, err: err}
	}
}

// entriesChanged creates a command announcing that e was stored or updated
func entriesChanged(e entry.MoodEntry) tea.Cmd {
	return func() tea.Msg {
		return ui.EntriesChangedMsg{Entry: e}
	}
}

// location returns the configured timezone, or nil to keep each entry's own.
func location(services *service.Services) *time.Location {
	cfg := services.Config.Get()
	loc, err := cfg.Location()
	if err != nil {
		return nil
	}
	return loc
}

// renderEntryLine renders one entry as an aligned row.
// The id column is widened to idWidth so longer short ids stay on one line.
func renderEntryLine(e entry.MoodEntry, shortID string, idWidth int, styles ui.Styles, loc *time.Location, width int, selected bool) string {
	if shortID == "" {
		shortID = e.ID
	}
	idStyle := styles.EntryID.Width(max(styles.EntryID.GetWidth(), idWidth+2))

	mood := styles.MoodStyle(e.Scale).Render(fmt.Sprintf("%-16s", cli.FormatMood(e.Scale)))

	marker := " "
	if !e.HasInsight() {
		marker = styles.Pending.Render("•")
	}

	descWidth := max(width-lipgloss.Width(idStyle.Render(""))-lipgloss.Width(styles.EntryDate.Render(""))-20, minDescWidth)
	line := fmt.Sprintf("%s %s %s %s %s",
		idStyle.Render(shortID),
		styles.EntryDate.Render(cli.FormatDate(e.Date, loc)),
		mood,
		marker,
		styles.EntryDesc.Render(cli.Truncate(e.Description, descWidth)),
	)

	if selected {
		return styles.EntrySelected.Render(line)
	}
	return styles.EntryNormal.Render(line)
}

// renderEntryDetail renders every field of one entry, wrapping the long ones
func renderEntryDetail(e entry.MoodEntry, styles ui.Styles, loc *time.Location, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width-lipgloss.Width(styles.StatLabel.Render(""))-1, minDescWidth))

	insight := styles.Pending.Render("(pending)")
	if e.HasInsight() {
		insight = styles.Insight.Render(wrap.Render(e.Insight))
	}

	var b strings.Builder
	b.WriteString(renderField(styles, "ID:", e.ID))
	b.WriteString(renderField(styles, "Date:", cli.FormatDate(e.Date, loc)))
	b.WriteString(styles.StatLabel.Render("Mood:") + " " + styles.MoodStyle(e.Scale).Render(cli.FormatMood(e.Scale)) + "\n")
	b.WriteString(renderField(styles, "Description:", wrap.Render(e.Description)))
	b.WriteString(styles.StatLabel.Render("Insight:") + " " + insight + "\n")
	return b.String()
}

// renderField renders a label and its value on one line
func renderField(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}

// renderCorruption renders the warning for a stored payload that was read as empty
func renderCorruption(styles ui.Styles, c *storage.CorruptionError) string {
	if c == nil {
		return ""
	}
	return styles.Warning.Render("Stored entries are corrupted and were read as empty:") + "\n" +
		styles.Warning.Render(cli.FormatCorruption(c)) + "\n" +
		styles.StatusHelp.Render("Run 'mood validate' and 'mood restore --list' from the shell") + "\n\n"
}

// separator renders a horizontal rule no wider than the view
func separator(width int) string {
	return strings.Repeat("─", max(min(50, width), 1))
}
