package cmd

import (
	"strings"
	"testing"
)

// backedUp corrupts the slot and saves over it so one backup exists
func (env *testEnv) backedUp(t *testing.T) {
	t.Helper()
	env.corrupt(t)
	env.log(t, 6)
}

func TestRestoreFromBackup_NoBackups(t *testing.T) {
	env := testDeps(t)

	restoreFromBackup(nil, false)

	env.assertExit(t, 1)
	if !strings.Contains(env.stdout.String(), "No backups available") {
		t.Errorf("expected no backups message, got: %s", env.stdout.String())
	}
}

func TestRestoreFromBackup_List(t *testing.T) {
	env := testDeps(t)
	env.backedUp(t)

	restoreFromBackup(nil, true)

	env.assertNoExit(t)
	out := env.stdout.String()
	if !strings.Contains(out, "mood_entries.bak.1") {
		t.Errorf("expected backup listing, got: %s", out)
	}
	if strings.Contains(out, "Successfully restored") {
		t.Error("--list must not restore")
	}
	if len(env.services.Store.All()) != 1 {
		t.Error("--list must not change stored entries")
	}
}

func TestRestoreFromBackup_Restores(t *testing.T) {
	env := testDeps(t)
	env.backedUp(t)

	restoreFromBackup(nil, false)

	env.assertNoExit(t)
	if !strings.Contains(env.stdout.String(), "Successfully restored from backup 1") {
		t.Errorf("expected success, got: %s", env.stdout.String())
	}
	// The backup held the corrupted payload
	if !strings.Contains(env.stderr.String(), "also corrupted") {
		t.Errorf("expected corruption warning, got: %s", env.stderr.String())
	}

	backups, err := env.services.Store.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("expected the replaced payload to be backed up, got %d backups", len(backups))
	}
}

func TestRestoreFromBackup_InvalidNumber(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		expected string
	}{
		{"not a number", "abc", "Invalid backup number 'abc'"},
		{"too low", "0", "must be between 1 and 3"},
		{"too high", "4", "must be between 1 and 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testDeps(t)
			restoreFromBackup([]string{tt.arg}, false)

			env.assertExit(t, 1)
			if !strings.Contains(env.stderr.String(), tt.expected) {
				t.Errorf("expected %q in stderr, got: %s", tt.expected, env.stderr.String())
			}
		})
	}
}

func TestRestoreFromBackup_MissingBackup(t *testing.T) {
	env := testDeps(t)
	env.backedUp(t)

	restoreFromBackup([]string{"3"}, false)

	env.assertExit(t, 1)
	if !strings.Contains(env.stderr.String(), "Backup 3 does not exist") {
		t.Errorf("expected missing backup error, got: %s", env.stderr.String())
	}
}
