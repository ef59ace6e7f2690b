package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"

	"github.com/xolan/mood/internal/config"
)

// DefaultTheme is the theme used when the configured one is unknown.
var DefaultTheme = config.DefaultConfig().Theme

// ThemeProvider manages TUI themes using bubbletint
type ThemeProvider struct {
	registry *tint.Registry
	themes   []string
	fallback bool
}

// NewThemeProvider creates a ThemeProvider starting at the named theme.
// An empty or unknown name starts at DefaultTheme; Fallback reports the unknown case.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	allTints := tint.DefaultTints()

	var defaultTint tint.Tint
	for _, t := range allTints {
		if t.ID() == DefaultTheme {
			defaultTint = t
			break
		}
	}
	if defaultTint == nil && len(allTints) > 0 {
		defaultTint = allTints[0]
	}

	registry := tint.NewRegistry(defaultTint, allTints...)
	tp := &ThemeProvider{
		registry: registry,
		themes:   registry.TintIDs(),
	}
	sort.Strings(tp.themes)

	if initialTheme != "" && !registry.SetTintID(initialTheme) {
		tp.fallback = true
	}
	return tp
}

// SetTheme sets the current theme by name.
// Returns false and keeps the current theme if the name is unknown.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// Fallback reports whether the initial theme was unknown and DefaultTheme was used instead.
func (tp *ThemeProvider) Fallback() bool {
	return tp.fallback
}

// CurrentName returns the id of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the display name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns the sorted ids of every theme.
func (tp *ThemeProvider) AvailableThemes() []string {
	return tp.themes
}

// Index returns the position of name in AvailableThemes, or -1.
func (tp *ThemeProvider) Index(name string) int {
	i := sort.SearchStrings(tp.themes, name)
	if i < len(tp.themes) && tp.themes[i] == name {
		return i
	}
	return -1
}

// Styles returns a Styles struct configured for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
