package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/xolan/mood/internal/service"
)

func TestRunTUI(t *testing.T) {
	env := testDeps(t)

	runTUI()

	env.assertNoExit(t)
	if env.tuiRuns != 1 {
		t.Errorf("expected the TUI to run once, got %d", env.tuiRuns)
	}
}

func TestRunTUI_Error(t *testing.T) {
	env := testDeps(t)
	deps.RunTUI = func(*service.Services) error {
		return errors.New("no terminal")
	}

	runTUI()

	env.assertExit(t, 1)
	if !strings.Contains(env.stderr.String(), "Error running TUI: no terminal") {
		t.Errorf("expected TUI error, got: %s", env.stderr.String())
	}
}

func TestCheckTUIFlag(t *testing.T) {
	env := testDeps(t)

	if CheckTUIFlag(rootCmd) {
		t.Fatal("expected false without --tui")
	}

	if err := rootCmd.PersistentFlags().Set("tui", "true"); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = rootCmd.PersistentFlags().Set("tui", "false") }()

	if !CheckTUIFlag(rootCmd) {
		t.Fatal("expected true with --tui")
	}
	if env.tuiRuns != 1 {
		t.Errorf("expected the TUI to run once, got %d", env.tuiRuns)
	}
}
