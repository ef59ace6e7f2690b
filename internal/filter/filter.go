// Package filter narrows mood entries by text, scale, date and insight state.
package filter

import (
	"fmt"
	"strings"

	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/timeutil"
)

// Filter holds optional criteria. The zero Filter matches every entry.
type Filter struct {
	Keyword  string         // case-insensitive substring of the description or insight
	MinScale int            // 0 leaves the lower bound open
	MaxScale int            // 0 leaves the upper bound open
	Range    timeutil.Range // entry dates, bounds included
	Pending  bool           // only entries still waiting for an insight
}

// IsEmpty returns true if no criterion is set
func (f Filter) IsEmpty() bool {
	return f.Keyword == "" && f.MinScale == 0 && f.MaxScale == 0 && f.Range.IsZero() && !f.Pending
}

// Validate rejects scale bounds outside the mood scale or in the wrong order.
func (f Filter) Validate() error {
	for _, bound := range []struct {
		name  string
		value int
	}{{"min", f.MinScale}, {"max", f.MaxScale}} {
		if bound.value != 0 && (bound.value < entry.MinScale || bound.value > entry.MaxScale) {
			return fmt.Errorf("--%s must be between %d and %d, got %d", bound.name, entry.MinScale, entry.MaxScale, bound.value)
		}
	}
	if f.MinScale != 0 && f.MaxScale != 0 && f.MinScale > f.MaxScale {
		return fmt.Errorf("--min (%d) is greater than --max (%d)", f.MinScale, f.MaxScale)
	}
	return nil
}

// Matches returns true if e satisfies every criterion
func (f Filter) Matches(e entry.MoodEntry) bool {
	return f.MatchesKeyword(e) && f.MatchesScale(e) && f.Range.Contains(e.Date) && (!f.Pending || !e.HasInsight())
}

// MatchesKeyword returns true if the keyword is in the description or the insight.
// An empty keyword matches all entries.
func (f Filter) MatchesKeyword(e entry.MoodEntry) bool {
	if f.Keyword == "" {
		return true
	}
	keyword := strings.ToLower(f.Keyword)
	return strings.Contains(strings.ToLower(e.Description), keyword) ||
		strings.Contains(strings.ToLower(e.Insight), keyword)
}

// MatchesScale returns true if the scale is within the bounds
func (f Filter) MatchesScale(e entry.MoodEntry) bool {
	if f.MinScale != 0 && e.Scale < f.MinScale {
		return false
	}
	if f.MaxScale != 0 && e.Scale > f.MaxScale {
		return false
	}
	return true
}

// Apply returns the entries that match f, keeping their order.
// An empty filter returns entries unchanged.
func Apply(entries []entry.MoodEntry, f Filter) []entry.MoodEntry {
	if f.IsEmpty() {
		return entries
	}

	filtered := make([]entry.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
