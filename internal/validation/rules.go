package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,19}$`)
)

// MinPassportLength is the shortest passport number accepted.
const MinPassportLength = 6

// AgeRange is an inclusive bound. Infant ages are expressed in months.
type AgeRange struct {
	Min  int
	Max  int
	Unit string
}

var (
	AdultAge  = AgeRange{Min: 12, Max: 120, Unit: "years"}
	ChildAge  = AgeRange{Min: 2, Max: 11, Unit: "years"}
	InfantAge = AgeRange{Min: 0, Max: 23, Unit: "months"}
)

func (r AgeRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func IsPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

func IsPassport(s string) bool {
	return len(strings.TrimSpace(s)) >= MinPassportLength
}

const dateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD only.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
