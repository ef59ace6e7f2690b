package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/mood/internal/config"
	"github.com/xolan/mood/internal/kv"
	"github.com/xolan/mood/internal/service"
	"github.com/xolan/mood/internal/storage"
	"github.com/xolan/mood/internal/tui/ui"
)

type staticInsighter struct{}

func (staticInsighter) Insight(context.Context, int, string) (string, error) {
	return "Rest well tonight.", nil
}

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"

	return service.NewServicesWith(
		storage.NewEntryStore(kv.NewMemoryStore(), nil),
		staticInsighter{},
		filepath.Join(t.TempDir(), "config.toml"),
		cfg,
		nil,
	)
}

// collect runs cmd and every command it batches, returning their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func isQuit(cmd tea.Cmd) bool {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestNew(t *testing.T) {
	services := setupTestServices(t)
	model := New(services)

	if model.activeTab != TabLog {
		t.Errorf("expected initial tab to be Log, got %d", model.activeTab)
	}
	if model.services == nil {
		t.Error("expected services to be set")
	}
	if model.showHelp {
		t.Error("expected showHelp to be false initially")
	}
	if model.themeProvider.CurrentName() != "dracula" {
		t.Errorf("expected configured theme, got %q", model.themeProvider.CurrentName())
	}
}

func TestInit(t *testing.T) {
	model := New(setupTestServices(t))

	if model.Init() == nil {
		t.Error("expected Init to return a command")
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	model := New(setupTestServices(t))

	m, _ := update(t, model, tea.WindowSizeMsg{Width: 100, Height: 50})

	if m.width != 100 {
		t.Errorf("expected width 100, got %d", m.width)
	}
	if m.height != 50 {
		t.Errorf("expected height 50, got %d", m.height)
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	model := New(setupTestServices(t))

	_, cmd := update(t, model, runes("q"))
	if !isQuit(cmd) {
		t.Error("expected q to quit")
	}
}

func TestUpdate_QuitKeyTypedIntoForm(t *testing.T) {
	model := New(setupTestServices(t))

	m, _ := update(t, model, runes("n"))
	m, _ = update(t, m, runes("q"))
	if !m.logView.IsInputMode() {
		t.Fatal("expected the log form to stay open")
	}

	m, _ = update(t, m, runes("2"))
	if m.activeTab != TabLog {
		t.Errorf("expected number keys to be typed, not switch tabs; tab is %d", m.activeTab)
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Error("expected ctrl+c to quit from the form")
	}
}

func TestUpdate_TabNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want Tab
	}{
		{"tab moves right", []tea.KeyMsg{{Type: tea.KeyTab}}, TabHistory},
		{"shift+tab wraps left", []tea.KeyMsg{{Type: tea.KeyShiftTab}}, TabConfig},
		{"tab wraps right", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyTab}, {Type: tea.KeyTab}, {Type: tea.KeyTab}}, TabLog},
		{"2 opens history", []tea.KeyMsg{runes("2")}, TabHistory},
		{"3 opens trend", []tea.KeyMsg{runes("3")}, TabTrend},
		{"4 opens config", []tea.KeyMsg{runes("4")}, TabConfig},
		{"1 opens log", []tea.KeyMsg{runes("3"), runes("1")}, TabLog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(setupTestServices(t))
			for _, k := range tt.keys {
				m, _ = update(t, m, k)
			}
			if m.activeTab != tt.want {
				t.Errorf("expected tab %d, got %d", tt.want, m.activeTab)
			}
		})
	}
}

func TestUpdate_HelpToggle(t *testing.T) {
	m := New(setupTestServices(t))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = update(t, m, runes("?"))
	if !m.showHelp {
		t.Fatal("expected help to show")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Errorf("expected help overlay, got:\n%s", m.View())
	}

	m, _ = update(t, m, runes("?"))
	if m.showHelp {
		t.Error("expected help to hide")
	}
}

func TestUpdate_ThemeChange(t *testing.T) {
	services := setupTestServices(t)
	m := New(services)

	m, cmd := update(t, m, ui.ThemeChangeRequestMsg{ThemeName: "nord"})
	if m.themeProvider.CurrentName() != "nord" {
		t.Errorf("expected theme nord, got %q", m.themeProvider.CurrentName())
	}

	var saved *ui.ThemeSavedMsg
	for _, msg := range collect(cmd) {
		if s, ok := msg.(ui.ThemeSavedMsg); ok {
			saved = &s
		}
	}
	if saved == nil {
		t.Fatal("expected the theme to be saved")
	}
	if saved.Err != nil {
		t.Fatalf("unexpected save error: %v", saved.Err)
	}
	if services.Config.Get().Theme != "nord" {
		t.Errorf("expected config theme nord, got %q", services.Config.Get().Theme)
	}
	data, err := os.ReadFile(services.Config.GetPath())
	if err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	if !strings.Contains(string(data), "nord") {
		t.Errorf("expected theme in config file, got:\n%s", data)
	}
}

func TestUpdate_UnknownThemeIgnored(t *testing.T) {
	m := New(setupTestServices(t))

	m, cmd := update(t, m, ui.ThemeChangeRequestMsg{ThemeName: "nonexistent-theme-xyz"})
	if cmd != nil {
		t.Error("expected no command for an unknown theme")
	}
	if m.themeProvider.CurrentName() != "dracula" {
		t.Errorf("expected theme unchanged, got %q", m.themeProvider.CurrentName())
	}
}

func TestUpdate_EntriesChangedReloadsViews(t *testing.T) {
	m := New(setupTestServices(t))

	_, cmd := update(t, m, ui.EntriesChangedMsg{})
	if cmd == nil {
		t.Error("expected history and trend to reload")
	}
}

func TestView(t *testing.T) {
	m := New(setupTestServices(t))

	if m.View() != "Loading..." {
		t.Errorf("expected Loading... before the first resize, got %q", m.View())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	for _, want := range []string{"Log", "History", "Trend", "Config", "new entry", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}

	m, _ = update(t, m, runes("n"))
	if !strings.Contains(m.View(), "switch field") {
		t.Errorf("expected form hints in the status bar, got:\n%s", m.View())
	}
}

func TestEndToEnd_LogEntry(t *testing.T) {
	services := setupTestServices(t)
	m := New(services)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = update(t, m, runes("n"))
	m, _ = update(t, m, runes("9"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, runes("slept well"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Feed results back until the views settle; spinner frames are not followed
	pending := collect(cmd)
	for i := 0; i < 10 && len(pending) > 0; i++ {
		var next []tea.Msg
		for _, msg := range pending {
			var c tea.Cmd
			m, c = update(t, m, msg)
			if _, tick := msg.(spinner.TickMsg); tick {
				continue
			}
			next = append(next, collect(c)...)
		}
		pending = next
	}
	if m.logView.IsInputMode() {
		t.Error("expected the form to close")
	}

	latest, err := services.Entry.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if latest.Insight != "Rest well tonight." {
		t.Errorf("expected insight stored, got %q", latest.Insight)
	}

	m, _ = update(t, m, runes("2"))
	if !strings.Contains(m.View(), "slept well") {
		t.Errorf("expected history to show the new entry, got:\n%s", m.View())
	}
}
