package models

import (
	"encoding/json"
	"strings"
	"time"

	"travelportal/internal/validation"
)

// DraftKind discriminates the three booking wizards.
type DraftKind string

const (
	KindPackage DraftKind = "package"
	KindHotel   DraftKind = "hotel"
	KindCustom  DraftKind = "custom"
)

func ParseDraftKind(s string) (DraftKind, bool) {
	switch DraftKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindPackage:
		return KindPackage, true
	case KindHotel:
		return KindHotel, true
	case KindCustom:
		return KindCustom, true
	default:
		return "", false
	}
}

// Draft is implemented by the closed set of wizard records below.
type Draft interface {
	Kind() DraftKind
	TravelParty() *Party
	LeadContact() Contact
}

type Contact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// PackageDraft backs the Umrah package booking wizard.
type PackageDraft struct {
	Party
	Rooms         int      `json:"rooms"`
	Contact       Contact  `json:"contact"`
	PaymentMethod string   `json:"paymentMethod"`
	Services      []string `json:"services"`
	Notes         string   `json:"notes"`
}

func NewPackageDraft() *PackageDraft {
	d := &PackageDraft{Party: Party{Adults: 1}, Rooms: 1, Services: []string{}}
	d.Party.Sync()
	return d
}

func (d *PackageDraft) Kind() DraftKind      { return KindPackage }
func (d *PackageDraft) TravelParty() *Party  { return &d.Party }
func (d *PackageDraft) LeadContact() Contact { return d.Contact }

// HotelDraft backs the hotel booking dialog.
type HotelDraft struct {
	Party
	CheckIn         string   `json:"checkIn"`
	CheckOut        string   `json:"checkOut"`
	Rooms           int      `json:"rooms"`
	Contact         Contact  `json:"contact"`
	PaymentMethod   string   `json:"paymentMethod"`
	Services        []string `json:"services"`
	SpecialRequests string   `json:"specialRequests"`
}

func NewHotelDraft() *HotelDraft {
	d := &HotelDraft{Party: Party{Adults: 1}, Rooms: 1, Services: []string{}}
	d.Party.Sync()
	return d
}

func (d *HotelDraft) Kind() DraftKind      { return KindHotel }
func (d *HotelDraft) TravelParty() *Party  { return &d.Party }
func (d *HotelDraft) LeadContact() Contact { return d.Contact }

// Nights is the stay length, or 0 while either date is missing or invalid.
func (d *HotelDraft) Nights() int {
	in, ok1 := validation.ParseDate(d.CheckIn)
	out, ok2 := validation.ParseDate(d.CheckOut)
	if !ok1 || !ok2 || !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// HotelPreference is one city stay inside a custom Umrah request.
type HotelPreference struct {
	City   string `json:"city"`
	Hotel  string `json:"hotel"`
	Stars  int    `json:"stars"`
	Nights int    `json:"nights"`
}

// CustomDraft backs the custom Umrah itinerary request form.
type CustomDraft struct {
	Party
	DepartureCity string            `json:"departureCity"`
	DepartureDate string            `json:"departureDate"`
	ReturnDate    string            `json:"returnDate"`
	Hotels        []HotelPreference `json:"hotels"`
	Contact       Contact           `json:"contact"`
	Budget        int64             `json:"budget"`
	Services      []string          `json:"services"`
	Notes         string            `json:"notes"`
}

func NewCustomDraft() *CustomDraft {
	d := &CustomDraft{
		Party:    Party{Adults: 1},
		Hotels:   []HotelPreference{{City: "Makkah"}, {City: "Madinah"}},
		Services: []string{},
	}
	d.Party.Sync()
	return d
}

func (d *CustomDraft) Kind() DraftKind      { return KindCustom }
func (d *CustomDraft) TravelParty() *Party  { return &d.Party }
func (d *CustomDraft) LeadContact() Contact { return d.Contact }

// StepState is the wizard position of a draft.
type StepState struct {
	CurrentStep   int                 `json:"currentStep"`
	FurthestStep  int                 `json:"furthestStep"`
	ShowErrors    bool                `json:"showErrors"`
	Errors        validation.ErrorSet `json:"errors,omitempty"`
	OpenTravelers []string            `json:"openTravelers"`
}

// Target is the catalog item a draft books, supplied by the page that opened the wizard.
type Target struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// DraftRecord is what the draft store persists between requests.
type DraftRecord struct {
	ID        string          `json:"id"`
	Kind      DraftKind       `json:"kind"`
	UserID    int64           `json:"userId"`
	Target    Target          `json:"target"`
	State     StepState       `json:"state"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
