package dialogue

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	datePattern     = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	meridiemPattern = regexp.MustCompile(`(?i)(\d)\s*([ap])m\b`)
)

// ValidationRejected reports that the input for a step did not pass its validator.
// It is turned into a corrective reply and never surfaces to callers as a failure.
type ValidationRejected struct {
	Step  int
	Input string
}

func (e *ValidationRejected) Error() string {
	return fmt.Sprintf("step %d rejected input %q", e.Step, e.Input)
}

// ValidateDate accepts M/D/YYYY shaped input. Calendar ranges are not checked.
func ValidateDate(input string) bool {
	return datePattern.MatchString(input)
}

// ValidateTimeSlot accepts any input containing a dash that is at least four characters long.
func ValidateTimeSlot(input string) bool {
	return strings.Contains(input, "-") && len(input) > 3
}

// NormalizeTimeSlot rewrites am/pm markers that follow a digit as " AM"/" PM".
func NormalizeTimeSlot(input string) string {
	return meridiemPattern.ReplaceAllStringFunc(input, func(m string) string {
		parts := meridiemPattern.FindStringSubmatch(m)
		return parts[1] + " " + strings.ToUpper(parts[2]) + "M"
	})
}

// ParseCapacity accepts any number greater than zero. Fractional values round up to a
// whole person. Values that do not fit the stored int32 range are refused.
func ParseCapacity(input string) (int, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	v = math.Ceil(v)
	if v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

// IsAffirmative is a substring test: "ok, never mind" counts as yes.
func IsAffirmative(input string) bool {
	lower := strings.ToLower(input)
	return strings.Contains(lower, "yes") || strings.Contains(lower, "sure") || strings.Contains(lower, "ok")
}
