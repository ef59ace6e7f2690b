package ui

import "github.com/xolan/mood/internal/entry"

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// ThemeSavedMsg reports the outcome of persisting the theme to the config file.
type ThemeSavedMsg struct {
	ThemeName string
	Err       error
}

// EntriesChangedMsg is broadcast after an entry is stored or gets its insight.
type EntriesChangedMsg struct {
	Entry entry.MoodEntry
}
