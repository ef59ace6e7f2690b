package cmd

import (
	"strings"
	"testing"
)

func TestShowTrend(t *testing.T) {
	env := testDeps(t)
	env.log(t, 3, 6, 9)

	showTrend(7, false)

	env.assertNoExit(t)
	out := env.stdout.String()
	for _, want := range []string{"Mood trend, last 3 entries", "███······", "6/10", "Average:", "6.0 (Neutral)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got: %s", want, out)
		}
	}
}

func TestShowTrend_Last(t *testing.T) {
	env := testDeps(t)
	env.log(t, 1, 4, 8, 10)

	showTrend(2, false)

	out := env.stdout.String()
	if !strings.Contains(out, "last 2 entries") {
		t.Errorf("expected two points, got: %s", out)
	}
	if !strings.Contains(out, "All-time average: 5.8 over 4 entries") {
		t.Errorf("expected all-time line, got: %s", out)
	}
}

func TestShowTrend_Daily(t *testing.T) {
	env := testDeps(t)
	env.log(t, 4, 8)

	showTrend(7, true)

	out := env.stdout.String()
	if !strings.Contains(out, "Sun Mar 1") || !strings.Contains(out, "6.0") || !strings.Contains(out, "2 entries") {
		t.Errorf("expected one daily row, got: %s", out)
	}
}

func TestShowTrend_NotEnoughEntries(t *testing.T) {
	tests := []struct {
		name   string
		scales []int
	}{
		{"none", nil},
		{"one", []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testDeps(t)
			env.log(t, tt.scales...)

			showTrend(7, false)

			env.assertNoExit(t)
			if !strings.Contains(env.stdout.String(), "Not enough entries for a trend") {
				t.Errorf("expected no chart, got: %s", env.stdout.String())
			}
		})
	}
}

func TestShowTrend_InvalidLast(t *testing.T) {
	env := testDeps(t)

	showTrend(0, false)

	env.assertExit(t, 1)
	if !strings.Contains(env.stderr.String(), "Invalid number of entries 0") {
		t.Errorf("expected error, got: %s", env.stderr.String())
	}
}
