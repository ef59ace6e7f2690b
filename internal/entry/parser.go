package entry

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrValidation is matched by every ValidationError via errors.Is
var ErrValidation = errors.New("validation failed")

// ValidationError describes user input that cannot become an entry
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks the user-supplied fields of an entry.
func Validate(scale int, description string) error {
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Message: "description cannot be empty"}
	}
	if scale < MinScale || scale > MaxScale {
		return &ValidationError{
			Field:   "scale",
			Message: fmt.Sprintf("scale must be between %d and %d, got %d", MinScale, MaxScale, scale),
		}
	}
	return nil
}

// scalePattern matches "8" or "8/10"
var scalePattern = regexp.MustCompile(`^(\d+)(?:/10)?$`)

// ParseScale parses a mood rating in N or N/10 form.
// Valid inputs: "8" (returns 8), "10/10" (returns 10)
// Invalid inputs: "0", "11", "eight", "8/5"
func ParseScale(input string) (int, error) {
	matches := scalePattern.FindStringSubmatch(strings.TrimSpace(input))
	if matches == nil {
		return 0, &ValidationError{
			Field:   "scale",
			Message: fmt.Sprintf("expected a number from %d to %d, got %q", MinScale, MaxScale, input),
		}
	}

	scale, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, &ValidationError{Field: "scale", Message: err.Error()}
	}

	if scale < MinScale || scale > MaxScale {
		return 0, &ValidationError{
			Field:   "scale",
			Message: fmt.Sprintf("scale must be between %d and %d, got %d", MinScale, MaxScale, scale),
		}
	}

	return scale, nil
}
