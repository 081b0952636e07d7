package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("user@example.com"))
	for _, bad := range []string{"user@", "@example.com", "user example.com", "user@example", ""} {
		assert.Falsef(t, IsEmail(bad), "%q should be rejected", bad)
	}
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("+62 812 3456 7890"))
	assert.True(t, IsPhone("081234567"))
	assert.False(t, IsPhone("12ab"))
	assert.False(t, IsPhone(""))
}

func TestAgeRanges(t *testing.T) {
	assert.True(t, AdultAge.Contains(12))
	assert.True(t, AdultAge.Contains(120))
	assert.False(t, AdultAge.Contains(11))
	assert.True(t, ChildAge.Contains(2))
	assert.False(t, ChildAge.Contains(12))
	assert.True(t, InfantAge.Contains(0))
	assert.False(t, InfantAge.Contains(24))
}

func TestCheckerKeepsFirstMessagePerField(t *testing.T) {
	age := 130
	errs := NewChecker().
		Required("contact.name", " ", "Name is required").
		Email("contact.email", "user@").
		Passport("adultDetails.0.passportNumber", "A123").
		Age("adultDetails.0.age", &age, AdultAge).
		Age("childDetails.0.age", nil, ChildAge).
		Check(false, "contact.name", "overridden").
		Errors()

	assert.Equal(t, "Name is required", errs["contact.name"])
	assert.Equal(t, "Please enter a valid email address", errs["contact.email"])
	assert.Equal(t, "Passport number must be at least 6 characters", errs["adultDetails.0.passportNumber"])
	assert.Equal(t, "Age must be between 12 and 120 years", errs["adultDetails.0.age"])
	assert.Equal(t, "Age is required", errs["childDetails.0.age"])
	assert.Equal(t, "Age must be between 12 and 120 years", errs.First())
}

func TestCheckerDate(t *testing.T) {
	c := NewChecker()
	_, ok := c.Date("checkIn", "2026-13-01", "Check-in date is invalid")
	assert.False(t, ok)
	d, ok := c.Date("checkOut", "2026-11-20", "Check-out date is invalid")
	assert.True(t, ok)
	assert.Equal(t, 20, d.Day())
	assert.Equal(t, []string{"checkIn"}, c.Errors().Keys())
}
