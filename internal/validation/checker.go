package validation

import (
	"fmt"
	"strings"
	"time"
)

// Checker accumulates failures for one form pass. Every method records at most
// one message per field and returns the checker so rules read as a chain.
type Checker struct {
	errs ErrorSet
}

func NewChecker() *Checker {
	return &Checker{errs: ErrorSet{}}
}

func (c *Checker) Errors() ErrorSet { return c.errs }

func (c *Checker) Check(ok bool, field, msg string) *Checker {
	if !ok {
		c.errs.Add(field, msg)
	}
	return c
}

func (c *Checker) Required(field, value, msg string) *Checker {
	return c.Check(strings.TrimSpace(value) != "", field, msg)
}

func (c *Checker) Email(field, value string) *Checker {
	if strings.TrimSpace(value) == "" {
		return c.Check(false, field, "Email is required")
	}
	return c.Check(IsEmail(value), field, "Please enter a valid email address")
}

func (c *Checker) Phone(field, value string) *Checker {
	if strings.TrimSpace(value) == "" {
		return c.Check(false, field, "Phone number is required")
	}
	return c.Check(IsPhone(value), field, "Please enter a valid phone number")
}

func (c *Checker) Passport(field, value string) *Checker {
	if strings.TrimSpace(value) == "" {
		return c.Check(false, field, "Passport number is required")
	}
	return c.Check(IsPassport(value), field, fmt.Sprintf("Passport number must be at least %d characters", MinPassportLength))
}

func (c *Checker) IntAtLeast(field string, v, min int, msg string) *Checker {
	return c.Check(v >= min, field, msg)
}

func (c *Checker) IntBetween(field string, v, min, max int, msg string) *Checker {
	return c.Check(v >= min && v <= max, field, msg)
}

// Age requires a value inside r. A nil age counts as missing.
func (c *Checker) Age(field string, age *int, r AgeRange) *Checker {
	if age == nil {
		return c.Check(false, field, "Age is required")
	}
	return c.Check(r.Contains(*age), field, fmt.Sprintf("Age must be between %d and %d %s", r.Min, r.Max, r.Unit))
}

func (c *Checker) OneOf(field, value string, allowed []string, msg string) *Checker {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(value), a) {
			return c
		}
	}
	return c.Check(false, field, msg)
}

// Date checks YYYY-MM-DD and hands the parsed value back for cross-field rules.
func (c *Checker) Date(field, value, msg string) (time.Time, bool) {
	t, ok := ParseDate(value)
	c.Check(ok, field, msg)
	return t, ok
}
