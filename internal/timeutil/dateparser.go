package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	yearOnlyRe      = regexp.MustCompile(`^\d{4}$`)
	isoPartialRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)
	euroPartialRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	tooManyPartsRe  = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
)

// ParseDate parses "today", "yesterday", YYYY-MM-DD or DD/MM/YYYY and returns
// the start of that day in now's location. ISO wins for ambiguous input.
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	loc := now.Location()

	switch strings.ToLower(input) {
	case "":
		return time.Time{}, fmt.Errorf("date cannot be empty (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2026-03-01 or 01/03/2026)")
	case "today":
		return StartOfDay(now), nil
	case "yesterday":
		return StartOfDay(now).AddDate(0, 0, -1), nil
	}

	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, dateParseError(input)
}

// dateParseError explains what is missing from a partial date
func dateParseError(input string) error {
	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use YYYY-MM-DD, e.g., %s-03-01)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use YYYY-MM-DD, e.g., %s-01)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use YYYY-MM-DD, e.g., 2026-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use DD/MM/YYYY, e.g., %s/2026)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return fmt.Errorf("invalid date '%s' (use today, yesterday, YYYY-MM-DD or DD/MM/YYYY)", input)
	}
}
