package models

import "fmt"

// TravelerCategory groups travelers by the age bracket that drives fare and validation.
type TravelerCategory string

const (
	CategoryAdult  TravelerCategory = "adult"
	CategoryChild  TravelerCategory = "child"
	CategoryInfant TravelerCategory = "infant"
)

// Traveler is one row of the traveler details step. Age is in years for adults and
// children and in months for infants; nil means not entered yet.
type Traveler struct {
	Name           string `json:"name"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
	PassportNumber string `json:"passportNumber"`
	Age            *int   `json:"age"`
}

// Party is the traveler block shared by every draft variant. The detail slices
// always have the same length as their count once Sync has run.
type Party struct {
	Adults        int        `json:"adults"`
	Children      int        `json:"children"`
	Infants       int        `json:"infants"`
	AdultDetails  []Traveler `json:"adultDetails"`
	ChildDetails  []Traveler `json:"childDetails"`
	InfantDetails []Traveler `json:"infantDetails"`
}

// ResizeTravelers returns a slice of exactly n rows. Rows below min(len(rows), n)
// are kept as entered, new rows are blank, extra rows are dropped.
func ResizeTravelers(rows []Traveler, n int) []Traveler {
	if n < 0 {
		n = 0
	}
	out := make([]Traveler, n)
	copy(out, rows)
	return out
}

// Sync clamps negative counts and resizes each detail slice to its count.
func (p *Party) Sync() {
	p.Adults = max(p.Adults, 0)
	p.Children = max(p.Children, 0)
	p.Infants = max(p.Infants, 0)
	p.AdultDetails = ResizeTravelers(p.AdultDetails, p.Adults)
	p.ChildDetails = ResizeTravelers(p.ChildDetails, p.Children)
	p.InfantDetails = ResizeTravelers(p.InfantDetails, p.Infants)
}

func (p Party) Total() int {
	return p.Adults + p.Children + p.Infants
}

// RowKeys lists the accordion keys for every traveler row, e.g. "adult-0".
func (p Party) RowKeys() []string {
	keys := make([]string, 0, p.Total())
	for i := 0; i < p.Adults; i++ {
		keys = append(keys, fmt.Sprintf("%s-%d", CategoryAdult, i))
	}
	for i := 0; i < p.Children; i++ {
		keys = append(keys, fmt.Sprintf("%s-%d", CategoryChild, i))
	}
	for i := 0; i < p.Infants; i++ {
		keys = append(keys, fmt.Sprintf("%s-%d", CategoryInfant, i))
	}
	return keys
}

// TravelerDetails is the canonical wire form of a party's rows.
type TravelerDetails struct {
	Adults   []Traveler `json:"adults"`
	Children []Traveler `json:"children"`
	Infants  []Traveler `json:"infants"`
}

func (p Party) Details() TravelerDetails {
	return TravelerDetails{
		Adults:   ResizeTravelers(p.AdultDetails, p.Adults),
		Children: ResizeTravelers(p.ChildDetails, p.Children),
		Infants:  ResizeTravelers(p.InfantDetails, p.Infants),
	}
}
