package wizard

import (
	"encoding/json"
	"fmt"
	"slices"

	"travelportal/internal/domain/models"
	"travelportal/internal/validation"
)

// Controller owns one draft and its position in a flow. It is not safe for
// concurrent use; callers load, mutate and persist it per request.
type Controller[D models.Draft] struct {
	flow  Flow[D]
	draft D
	state models.StepState
}

// NewController starts a fresh draft at step 1.
func NewController[D models.Draft](flow Flow[D]) *Controller[D] {
	return Restore(flow, flow.New(), models.StepState{})
}

// Restore rebuilds a controller from persisted state. The step is clamped into
// the flow and the traveler rows are resynchronized with their counts.
func Restore[D models.Draft](flow Flow[D], draft D, state models.StepState) *Controller[D] {
	c := &Controller[D]{flow: flow, draft: draft, state: state}
	c.state.CurrentStep = min(max(c.state.CurrentStep, 1), max(flow.Len(), 1))
	c.state.FurthestStep = min(max(c.state.FurthestStep, c.state.CurrentStep), max(flow.Len(), 1))
	party := draft.TravelParty()
	party.Sync()
	if c.state.OpenTravelers == nil {
		c.state.OpenTravelers = party.RowKeys()
	}
	if c.state.Errors == nil {
		c.state.Errors = validation.ErrorSet{}
	}
	return c
}

func (c *Controller[D]) Draft() D                 { return c.draft }
func (c *Controller[D]) DraftValue() models.Draft { return c.draft }
func (c *Controller[D]) State() models.StepState  { return c.state }
func (c *Controller[D]) Kind() models.DraftKind   { return c.flow.Kind }
func (c *Controller[D]) Steps() []StepInfo        { return c.flow.Info() }
func (c *Controller[D]) Policy() JumpPolicy       { return c.flow.Jump }

func (c *Controller[D]) CanProceed() bool {
	return c.flow.CanProceed(c.state.CurrentStep, c.draft)
}

// Advance moves one step forward when the current step passes. On failure the
// step is kept, errors become visible and a *StepError is returned.
func (c *Controller[D]) Advance() error {
	errs := c.flow.StepErrors(c.state.CurrentStep, c.draft)
	if !errs.Empty() {
		c.state.ShowErrors = true
		c.state.Errors = errs
		return &StepError{Step: c.state.CurrentStep, Errors: errs}
	}
	c.state.CurrentStep = min(c.state.CurrentStep+1, c.flow.Len())
	c.state.FurthestStep = max(c.state.FurthestStep, c.state.CurrentStep)
	c.clearErrors()
	return nil
}

// Retreat moves one step back without checking anything. Step 1 is the floor.
func (c *Controller[D]) Retreat() {
	c.state.CurrentStep = max(c.state.CurrentStep-1, 1)
	c.clearErrors()
}

func (c *Controller[D]) JumpTo(step int) error {
	if !c.flow.InRange(step) {
		return fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, step, c.flow.Len())
	}
	cur := c.state.CurrentStep
	switch {
	case step == cur:
		return nil
	case step < cur:
		c.state.CurrentStep = step
		c.clearErrors()
		return nil
	}

	if c.flow.Jump != JumpCompleted || step > c.state.FurthestStep {
		return fmt.Errorf("%w: step %d from step %d", ErrJumpNotAllowed, step, cur)
	}
	for s := cur; s < step; s++ {
		if errs := c.flow.StepErrors(s, c.draft); !errs.Empty() {
			return &StepError{Step: s, Errors: errs}
		}
	}
	c.state.CurrentStep = step
	c.clearErrors()
	return nil
}

// SetCounts changes the traveler counts, resizes the detail rows and reopens
// every traveler accordion row.
func (c *Controller[D]) SetCounts(adults, children, infants int) {
	p := c.draft.TravelParty()
	p.Adults, p.Children, p.Infants = adults, children, infants
	p.Sync()
	c.state.OpenTravelers = p.RowKeys()
	c.Revalidate()
}

// Apply merges a JSON patch of draft fields. Count changes go through the same
// resynchronization as SetCounts.
func (c *Controller[D]) Apply(patch json.RawMessage) error {
	if len(patch) == 0 {
		return nil
	}
	p := c.draft.TravelParty()
	before := [3]int{p.Adults, p.Children, p.Infants}
	if err := json.Unmarshal(patch, c.draft); err != nil {
		return fmt.Errorf("wizard: decode patch: %w", err)
	}
	p = c.draft.TravelParty()
	p.Sync()
	if before != [3]int{p.Adults, p.Children, p.Infants} {
		c.state.OpenTravelers = p.RowKeys()
	}
	c.Revalidate()
	return nil
}

// ToggleTraveler opens or closes one accordion row. Unknown keys are ignored.
func (c *Controller[D]) ToggleTraveler(key string) {
	if !slices.Contains(c.draft.TravelParty().RowKeys(), key) {
		return
	}
	if i := slices.Index(c.state.OpenTravelers, key); i >= 0 {
		c.state.OpenTravelers = slices.Delete(c.state.OpenTravelers, i, i+1)
		return
	}
	c.state.OpenTravelers = append(c.state.OpenTravelers, key)
}

// Revalidate recomputes the errors of the current step after a field change.
func (c *Controller[D]) Revalidate() {
	c.state.Errors = c.flow.StepErrors(c.state.CurrentStep, c.draft)
}

func (c *Controller[D]) ValidateAll() validation.ErrorSet {
	return c.flow.ValidateAll(c.draft)
}

// Reset discards every field and returns to step 1.
func (c *Controller[D]) Reset() {
	c.draft = c.flow.New()
	c.state = models.StepState{
		CurrentStep:   1,
		FurthestStep:  1,
		Errors:        validation.ErrorSet{},
		OpenTravelers: c.draft.TravelParty().RowKeys(),
	}
}

func (c *Controller[D]) MarshalDraft() (json.RawMessage, error) {
	return json.Marshal(c.draft)
}

func (c *Controller[D]) clearErrors() {
	c.state.ShowErrors = false
	c.state.Errors = validation.ErrorSet{}
}
