package timeutil

import (
	"fmt"
	"time"
)

// ParseRange builds the range selected by the --from, --to and --days flags.
// days > 0 selects that many calendar days ending today and excludes from/to.
// An empty from leaves the start open; an empty to ends the range today.
// Every flag empty returns the zero Range.
func ParseRange(from, to string, days int, now time.Time) (Range, error) {
	if days < 0 {
		return Range{}, fmt.Errorf("invalid --days %d: must be positive", days)
	}
	if days > 0 && (from != "" || to != "") {
		return Range{}, fmt.Errorf("cannot use --days with --from or --to")
	}

	if days > 0 {
		return Range{
			Start: StartOfDay(now).AddDate(0, 0, -(days - 1)),
			End:   EndOfDay(now),
		}, nil
	}
	if from == "" && to == "" {
		return Range{}, nil
	}

	var r Range
	if from != "" {
		start, err := ParseDate(from, now)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --from date: %w", err)
		}
		r.Start = start
	}

	r.End = EndOfDay(now)
	if to != "" {
		end, err := ParseDate(to, now)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --to date: %w", err)
		}
		r.End = EndOfDay(end)
	}

	if !r.Start.IsZero() && r.Start.After(r.End) {
		return Range{}, fmt.Errorf("--from date (%s) is after --to date (%s)",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return r, nil
}
