package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"

	"github.com/xolan/mood/internal/entry"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	Content   lipgloss.Style
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Entry list
	EntrySelected lipgloss.Style
	EntryNormal   lipgloss.Style
	EntryID       lipgloss.Style
	EntryDate     lipgloss.Style
	EntryDesc     lipgloss.Style

	// Insight text, and the marker for entries still waiting for one
	Insight lipgloss.Style
	Pending lipgloss.Style

	// Trend
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Sparkline lipgloss.Style

	// Input
	InputLabel   lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Spinner      lipgloss.Style

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// Mood scales keep their own band colors regardless of the theme.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	primary := r.Purple()
	secondary := r.Cyan()
	accent := r.BrightPurple()
	muted := r.BrightBlack()
	success := r.Green()
	warning := r.Yellow()
	errorColor := r.Red()
	fg := r.Fg()
	bg := r.Bg()

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted),
		TabActive: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		EntrySelected: lipgloss.NewStyle().
			Background(muted).
			Bold(true),
		EntryNormal: lipgloss.NewStyle(),
		EntryID: lipgloss.NewStyle().
			Foreground(muted).
			Width(10),
		EntryDate: lipgloss.NewStyle().
			Foreground(secondary).
			Width(22),
		EntryDesc: lipgloss.NewStyle().
			Foreground(fg),

		Insight: lipgloss.NewStyle().
			Foreground(fg).
			Italic(true),
		Pending: lipgloss.NewStyle().
			Foreground(warning),

		StatLabel: lipgloss.NewStyle().
			Foreground(muted).
			Width(16),
		StatValue: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),
		Sparkline: lipgloss.NewStyle().
			Foreground(accent),

		InputLabel: lipgloss.NewStyle().
			Foreground(muted).
			Width(14),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		Spinner: lipgloss.NewStyle().
			Foreground(accent),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Success: lipgloss.NewStyle().
			Foreground(success),
	}
}

// MoodStyle returns the style for a mood scale, colored by its band.
func (s Styles) MoodStyle(scale int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(entry.Color(scale))).
		Bold(scale <= 2 || scale >= 9)
}
