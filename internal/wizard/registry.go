package wizard

import (
	"encoding/json"
	"fmt"

	"travelportal/internal/domain/models"
	"travelportal/internal/validation"
)

// Driver is the kind-agnostic view of a Controller used by the HTTP layer and
// the draft store.
type Driver interface {
	Kind() models.DraftKind
	State() models.StepState
	DraftValue() models.Draft
	Steps() []StepInfo
	Policy() JumpPolicy
	CanProceed() bool
	Advance() error
	Retreat()
	JumpTo(step int) error
	SetCounts(adults, children, infants int)
	Apply(patch json.RawMessage) error
	ToggleTraveler(key string)
	Revalidate()
	ValidateAll() validation.ErrorSet
	Reset()
	MarshalDraft() (json.RawMessage, error)
}

var (
	_ Driver = (*Controller[*models.PackageDraft])(nil)
	_ Driver = (*Controller[*models.HotelDraft])(nil)
	_ Driver = (*Controller[*models.CustomDraft])(nil)
)

// Registry holds the three configured flows.
type Registry struct {
	Package Flow[*models.PackageDraft]
	Hotel   Flow[*models.HotelDraft]
	Custom  Flow[*models.CustomDraft]
}

func NewRegistry(opts Options) Registry {
	return Registry{
		Package: PackageFlow(opts),
		Hotel:   HotelFlow(opts),
		Custom:  CustomFlow(opts),
	}
}

// New starts an empty draft of the given kind.
func (r Registry) New(kind models.DraftKind) (Driver, error) {
	switch kind {
	case models.KindPackage:
		return NewController(r.Package), nil
	case models.KindHotel:
		return NewController(r.Hotel), nil
	case models.KindCustom:
		return NewController(r.Custom), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFlow, kind)
}

// Open restores a persisted draft.
func (r Registry) Open(kind models.DraftKind, state models.StepState, data json.RawMessage) (Driver, error) {
	switch kind {
	case models.KindPackage:
		return open(r.Package, state, data)
	case models.KindHotel:
		return open(r.Hotel, state, data)
	case models.KindCustom:
		return open(r.Custom, state, data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFlow, kind)
}

func open[D models.Draft](flow Flow[D], state models.StepState, data json.RawMessage) (Driver, error) {
	d := flow.New()
	if len(data) > 0 {
		if err := json.Unmarshal(data, d); err != nil {
			return nil, fmt.Errorf("wizard: decode %s draft: %w", flow.Kind, err)
		}
	}
	return Restore(flow, d, state), nil
}
