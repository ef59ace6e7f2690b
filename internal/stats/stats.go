package stats

import (
	"sort"
	"time"

	"github.com/xolan/mood/internal/entry"
)

// ChartSize is the number of recent entries plotted by the trend chart
const ChartSize = 7

// MinChartEntries is the fewest entries needed before a trend chart is drawn
const MinChartEntries = 2

// Summary contains aggregated statistics for a set of entries
type Summary struct {
	Count       int
	Average     float64
	Min         int
	Max         int
	WithInsight int
	// ByLabel counts entries per mood label, keyed by entry.Labels
	ByLabel map[string]int
}

// DayAverage is the mean scale of the entries logged on one calendar day
type DayAverage struct {
	Day     time.Time // midnight in the grouping location
	Average float64
	Count   int
}

// SortNewestFirst returns a copy of entries ordered by date descending.
// Entries with equal dates keep their stored order reversed, so the latest append comes first.
func SortNewestFirst(entries []entry.MoodEntry) []entry.MoodEntry {
	out := make([]entry.MoodEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Recent returns the n most recent entries in chronological order.
// n <= 0 returns every entry.
func Recent(entries []entry.MoodEntry, n int) []entry.MoodEntry {
	newest := SortNewestFirst(entries)
	if n > 0 && len(newest) > n {
		newest = newest[:n]
	}
	out := make([]entry.MoodEntry, len(newest))
	for i, e := range newest {
		out[len(newest)-1-i] = e
	}
	return out
}

// ShowChart reports whether enough entries exist to draw a trend.
func ShowChart(entries []entry.MoodEntry) bool {
	return len(entries) >= MinChartEntries
}

// Summarize computes count, average, range and label distribution of entries.
func Summarize(entries []entry.MoodEntry) Summary {
	s := Summary{ByLabel: make(map[string]int, len(entry.Labels))}
	for _, label := range entry.Labels {
		s.ByLabel[label] = 0
	}
	if len(entries) == 0 {
		return s
	}

	total := 0
	s.Min = entries[0].Scale
	s.Max = entries[0].Scale
	for _, e := range entries {
		total += e.Scale
		if e.Scale < s.Min {
			s.Min = e.Scale
		}
		if e.Scale > s.Max {
			s.Max = e.Scale
		}
		if e.HasInsight() {
			s.WithInsight++
		}
		s.ByLabel[entry.Label(e.Scale)]++
	}
	s.Count = len(entries)
	s.Average = float64(total) / float64(s.Count)
	return s
}

// DailyAverages groups entries by calendar day in loc and averages each day, oldest first.
// A nil loc uses time.Local.
func DailyAverages(entries []entry.MoodEntry, loc *time.Location) []DayAverage {
	if loc == nil {
		loc = time.Local
	}

	type acc struct {
		day   time.Time
		total int
		count int
	}
	days := make(map[string]*acc)
	for _, e := range entries {
		t := e.Date.In(loc)
		key := t.Format("2006-01-02")
		a, ok := days[key]
		if !ok {
			a = &acc{day: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)}
			days[key] = a
		}
		a.total += e.Scale
		a.count++
	}

	out := make([]DayAverage, 0, len(days))
	for _, a := range days {
		out = append(out, DayAverage{Day: a.day, Average: float64(a.total) / float64(a.count), Count: a.count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})
	return out
}
