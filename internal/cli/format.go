// Package cli provides the CLI presentation layer for the mood application.
// It handles command-line output formatting: mood labels, colors, charts and tables.
package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/storage"
)

// ShortIDLength is the fewest id characters shown in listings
const ShortIDLength = 8

// DateLayout is used for entry dates in listings
const DateLayout = "Mon Jan 2 2006 15:04"

// Glyphs for charts, lowest to highest
var sparks = []rune("▁▂▃▄▅▆▇█")

// FormatScale formats a scale as "8/10"
func FormatScale(scale int) string {
	return fmt.Sprintf("%d/%d", scale, entry.MaxScale)
}

// FormatMood formats a scale with its label, e.g. "8/10 (Good)"
func FormatMood(scale int) string {
	return fmt.Sprintf("%s (%s)", FormatScale(scale), entry.Label(scale))
}

// FormatDate formats t in loc. A nil loc keeps t's own location.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

// ShortIDs maps each id to the shortest prefix that no other id in ids starts with.
// Prefixes are at least ShortIDLength characters and never end on a hyphen.
// Entries logged close together share their leading timestamp digits and get longer prefixes.
func ShortIDs(ids []string) map[string]string {
	sorted := slices.Compact(slices.Sorted(slices.Values(ids)))
	out := make(map[string]string, len(sorted))
	for i, id := range sorted {
		n := ShortIDLength
		if i > 0 {
			n = max(n, commonPrefixLen(id, sorted[i-1])+1)
		}
		if i < len(sorted)-1 {
			n = max(n, commonPrefixLen(id, sorted[i+1])+1)
		}
		for n < len(id) && id[n-1] == '-' {
			n++
		}
		out[id] = id[:min(n, len(id))]
	}
	return out
}

// EntryIDs returns the ids of entries, in order
func EntryIDs(entries []entry.MoodEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// Truncate shortens s to at most max runes, ending with "..." when cut
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if n := len(word); n > 1 && word[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[n-2])) {
		return word[:n-1] + "ies"
	}
	return word + "s"
}

// ScaleColor returns the terminal color for the scale's label band
func ScaleColor(scale int) *color.Color {
	switch {
	case scale <= 2:
		return color.New(color.FgRed, color.Bold)
	case scale <= 4:
		return color.New(color.FgRed)
	case scale <= 6:
		return color.New(color.FgYellow)
	case scale <= 8:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

// ColorMood renders FormatMood in the scale's color
func ColorMood(scale int) string {
	return ScaleColor(scale).Sprint(FormatMood(scale))
}

// Bar renders scale as a horizontal bar of MaxScale cells
func Bar(scale int) string {
	if scale < 0 {
		scale = 0
	}
	if scale > entry.MaxScale {
		scale = entry.MaxScale
	}
	return strings.Repeat("█", scale) + strings.Repeat("·", entry.MaxScale-scale)
}

// Sparkline renders one glyph per entry, in the order given
func Sparkline(entries []entry.MoodEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteRune(spark(e.Scale))
	}
	return b.String()
}

func spark(scale int) rune {
	if scale <= entry.MinScale {
		return sparks[0]
	}
	if scale >= entry.MaxScale {
		return sparks[len(sparks)-1]
	}
	i := (scale - entry.MinScale) * (len(sparks) - 1) / (entry.MaxScale - entry.MinScale)
	return sparks[i]
}

// FormatCorruption describes a corrupted payload in one line
func FormatCorruption(c *storage.CorruptionError) string {
	return fmt.Sprintf("  Slot %q (%d bytes): %v", c.Key, c.Size, c.Err)
}
