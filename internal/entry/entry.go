package entry

import (
	"strings"
	"time"
)

// Scale bounds for a mood rating
const (
	MinScale = 1
	MaxScale = 10
)

// MoodEntry represents a single mood journal entry
type MoodEntry struct {
	ID          string    `json:"id"`
	Scale       int       `json:"scale"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Insight     string    `json:"insight,omitempty"`
}

// HasInsight reports whether an insight has been attached to the entry.
func (e MoodEntry) HasInsight() bool {
	return strings.TrimSpace(e.Insight) != ""
}

// Patch is a partial MoodEntry used to update a stored entry.
// ID and Date are not patchable. Nil fields keep their stored value.
type Patch struct {
	Scale       *int
	Description *string
	Insight     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Scale == nil && p.Description == nil && p.Insight == nil
}

// WithInsight returns a patch that attaches the given insight.
func WithInsight(insight string) Patch {
	return Patch{Insight: &insight}
}

// Apply merges the patch into e and validates the result.
// An empty insight never replaces an existing one.
func (p Patch) Apply(e MoodEntry) (MoodEntry, error) {
	merged := e
	if p.Scale != nil {
		merged.Scale = *p.Scale
	}
	if p.Description != nil {
		merged.Description = strings.TrimSpace(*p.Description)
	}
	if p.Insight != nil {
		insight := strings.TrimSpace(*p.Insight)
		if insight != "" || !e.HasInsight() {
			merged.Insight = insight
		}
	}

	if err := Validate(merged.Scale, merged.Description); err != nil {
		return e, err
	}
	return merged, nil
}

// Label returns a human-readable mood label for the scale
func Label(scale int) string {
	switch {
	case scale <= 2:
		return "Very Bad"
	case scale <= 4:
		return "Bad"
	case scale <= 6:
		return "Neutral"
	case scale <= 8:
		return "Good"
	default:
		return "Very Good"
	}
}

// Color returns the hex color associated with the scale band
func Color(scale int) string {
	switch {
	case scale <= 2:
		return "#FF5252"
	case scale <= 4:
		return "#FFA726"
	case scale <= 6:
		return "#FFEB3B"
	case scale <= 8:
		return "#9CCC65"
	default:
		return "#4CAF50"
	}
}

// Labels lists every mood label from worst to best
var Labels = []string{"Very Bad", "Bad", "Neutral", "Good", "Very Good"}
