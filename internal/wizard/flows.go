package wizard

import (
	"fmt"
	"strings"

	"travelportal/internal/domain/models"
	"travelportal/internal/validation"
)

// Options carries the catalog driven value sets the predicates check against.
// An empty set only requires a non-empty value.
type Options struct {
	PaymentMethods  []string
	Genders         []string
	Nationalities   []string
	DepartureCities []string
	ServiceCodes    []string
}

func DefaultOptions() Options {
	return Options{
		PaymentMethods: []string{"bank_transfer", "credit_card", "installment"},
		Genders:        []string{"male", "female"},
	}
}

// OptionsFromForm builds Options out of the form options served to clients.
func OptionsFromForm(f models.FormOptions, services []models.AdditionalService) Options {
	o := DefaultOptions()
	if len(f.PaymentMethods) > 0 {
		o.PaymentMethods = models.Values(f.PaymentMethods)
	}
	if len(f.Genders) > 0 {
		o.Genders = models.Values(f.Genders)
	}
	o.Nationalities = models.Values(f.Nationalities)
	o.DepartureCities = models.Values(f.DepartureCities)
	for _, s := range services {
		o.ServiceCodes = append(o.ServiceCodes, s.Code)
	}
	return o
}

func choose(c *validation.Checker, field, value string, allowed []string, missing, invalid string) {
	if strings.TrimSpace(value) == "" {
		c.Check(false, field, missing)
		return
	}
	if len(allowed) > 0 {
		c.OneOf(field, value, allowed, invalid)
	}
}

func checkCounts(c *validation.Checker, p *models.Party) {
	c.IntAtLeast("adults", p.Adults, 1, "At least one adult is required").
		IntAtLeast("children", p.Children, 0, "Children cannot be negative").
		IntAtLeast("infants", p.Infants, 0, "Infants cannot be negative").
		Check(p.Infants <= p.Adults, "infants", "Each infant must travel with an adult")
}

func checkContact(c *validation.Checker, ct models.Contact) {
	c.Required("contact.fullName", ct.FullName, "Full name is required").
		Email("contact.email", ct.Email).
		Phone("contact.phone", ct.Phone)
}

func checkServices(c *validation.Checker, services []string, known []string) {
	if len(known) == 0 {
		return
	}
	for _, s := range services {
		c.OneOf("services", s, known, fmt.Sprintf("Unknown additional service %q", s))
	}
}

// CheckTravelers validates every detail row against its category. Adults and
// children carry a passport; infant ages are in months.
func CheckTravelers(p *models.Party, opts Options) validation.ErrorSet {
	c := validation.NewChecker()
	rows := func(prefix string, list []models.Traveler, r validation.AgeRange, passport bool) {
		for i, t := range list {
			key := fmt.Sprintf("%s.%d.", prefix, i)
			c.Required(key+"name", t.Name, "Name is required")
			choose(c, key+"gender", t.Gender, opts.Genders, "Please select a gender", "Please select a gender")
			choose(c, key+"nationality", t.Nationality, opts.Nationalities, "Nationality is required", "Please select a nationality")
			if passport {
				c.Passport(key+"passportNumber", t.PassportNumber)
			}
			c.Age(key+"age", t.Age, r)
		}
	}
	rows("adultDetails", p.AdultDetails, validation.AdultAge, true)
	rows("childDetails", p.ChildDetails, validation.ChildAge, true)
	rows("infantDetails", p.InfantDetails, validation.InfantAge, false)
	return c.Errors()
}

func checkPayment(c *validation.Checker, method string, services []string, opts Options) {
	choose(c, "paymentMethod", method, opts.PaymentMethods, "Please select a payment method", "Please select a valid payment method")
	checkServices(c, services, opts.ServiceCodes)
}

// PackageFlow: travelers, contact, traveler details, payment, review.
func PackageFlow(opts Options) Flow[*models.PackageDraft] {
	return Flow[*models.PackageDraft]{
		Kind: models.KindPackage,
		Jump: JumpBackOnly,
		New:  models.NewPackageDraft,
		Steps: numbered(
			Step[*models.PackageDraft]{Title: "Travelers", Validate: func(d *models.PackageDraft) validation.ErrorSet {
				c := validation.NewChecker()
				checkCounts(c, &d.Party)
				c.IntAtLeast("rooms", d.Rooms, 1, "At least one room is required")
				return c.Errors()
			}},
			Step[*models.PackageDraft]{Title: "Contact", Validate: func(d *models.PackageDraft) validation.ErrorSet {
				c := validation.NewChecker()
				checkContact(c, d.Contact)
				return c.Errors()
			}},
			Step[*models.PackageDraft]{Title: "Traveler details", Validate: func(d *models.PackageDraft) validation.ErrorSet {
				return CheckTravelers(&d.Party, opts)
			}},
			Step[*models.PackageDraft]{Title: "Payment & services", Validate: func(d *models.PackageDraft) validation.ErrorSet {
				c := validation.NewChecker()
				checkPayment(c, d.PaymentMethod, d.Services, opts)
				return c.Errors()
			}},
			Step[*models.PackageDraft]{Title: "Review"},
		),
	}
}

// HotelFlow: stay, guests, contact, payment.
func HotelFlow(opts Options) Flow[*models.HotelDraft] {
	return Flow[*models.HotelDraft]{
		Kind: models.KindHotel,
		Jump: JumpCompleted,
		New:  models.NewHotelDraft,
		Steps: numbered(
			Step[*models.HotelDraft]{Title: "Stay", Validate: func(d *models.HotelDraft) validation.ErrorSet {
				c := validation.NewChecker()
				in, okIn := checkDate(c, "checkIn", d.CheckIn, "Check-in date is required", "Please enter a valid check-in date")
				out, okOut := checkDate(c, "checkOut", d.CheckOut, "Check-out date is required", "Please enter a valid check-out date")
				if okIn && okOut {
					c.Check(out.After(in), "checkOut", "Check-out must be after check-in")
				}
				c.IntAtLeast("rooms", d.Rooms, 1, "At least one room is required")
				checkCounts(c, &d.Party)
				return c.Errors()
			}},
			Step[*models.HotelDraft]{Title: "Guests", Validate: func(d *models.HotelDraft) validation.ErrorSet {
				return CheckTravelers(&d.Party, opts)
			}},
			Step[*models.HotelDraft]{Title: "Contact", Validate: func(d *models.HotelDraft) validation.ErrorSet {
				c := validation.NewChecker()
				checkContact(c, d.Contact)
				return c.Errors()
			}},
			Step[*models.HotelDraft]{Title: "Payment", Validate: func(d *models.HotelDraft) validation.ErrorSet {
				c := validation.NewChecker()
				checkPayment(c, d.PaymentMethod, d.Services, opts)
				return c.Errors()
			}},
		),
	}
}

// CustomFlow: trip, hotels, travelers, contact and notes.
func CustomFlow(opts Options) Flow[*models.CustomDraft] {
	return Flow[*models.CustomDraft]{
		Kind: models.KindCustom,
		Jump: JumpBackOnly,
		New:  models.NewCustomDraft,
		Steps: numbered(
			Step[*models.CustomDraft]{Title: "Trip", Validate: func(d *models.CustomDraft) validation.ErrorSet {
				c := validation.NewChecker()
				choose(c, "departureCity", d.DepartureCity, opts.DepartureCities, "Departure city is required", "Please select a departure city")
				dep, okDep := checkDate(c, "departureDate", d.DepartureDate, "Departure date is required", "Please enter a valid departure date")
				ret, okRet := checkDate(c, "returnDate", d.ReturnDate, "Return date is required", "Please enter a valid return date")
				if okDep && okRet {
					c.Check(ret.After(dep), "returnDate", "Return date must be after departure date")
				}
				return c.Errors()
			}},
			Step[*models.CustomDraft]{Title: "Hotels", Validate: func(d *models.CustomDraft) validation.ErrorSet {
				c := validation.NewChecker()
				c.Check(len(d.Hotels) > 0, "hotels", "Add at least one hotel stay")
				total := 0
				for i, h := range d.Hotels {
					key := fmt.Sprintf("hotels.%d.", i)
					c.Required(key+"city", h.City, "City is required").
						IntBetween(key+"stars", h.Stars, 1, 5, "Please choose a star rating between 1 and 5").
						IntAtLeast(key+"nights", h.Nights, 1, "Nights must be at least 1")
					total += h.Nights
				}
				if days, ok := tripDays(d.DepartureDate, d.ReturnDate); ok {
					c.Check(total <= days, "hotels", fmt.Sprintf("Total nights cannot exceed the %d-night trip", days))
				}
				return c.Errors()
			}},
			Step[*models.CustomDraft]{Title: "Travelers", Validate: func(d *models.CustomDraft) validation.ErrorSet {
				c := validation.NewChecker()
				checkCounts(c, &d.Party)
				errs := c.Errors()
				errs.Merge(CheckTravelers(&d.Party, opts))
				return errs
			}},
			Step[*models.CustomDraft]{Title: "Contact & notes", Validate: func(d *models.CustomDraft) validation.ErrorSet {
				c := validation.NewChecker()
				checkContact(c, d.Contact)
				c.Check(d.Budget >= 0, "budget", "Budget cannot be negative")
				checkServices(c, d.Services, opts.ServiceCodes)
				return c.Errors()
			}},
		),
	}
}
