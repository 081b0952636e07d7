package wizard

import (
	"strings"
	"time"

	"travelportal/internal/validation"
)

func checkDate(c *validation.Checker, field, value, missing, invalid string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		c.Check(false, field, missing)
		return time.Time{}, false
	}
	return c.Date(field, value, invalid)
}

// tripDays is the number of nights between two valid dates.
func tripDays(from, to string) (int, bool) {
	a, ok1 := validation.ParseDate(from)
	b, ok2 := validation.ParseDate(to)
	if !ok1 || !ok2 || !b.After(a) {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}
