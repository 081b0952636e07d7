// Package wizard drives booking drafts through their numbered steps. Every flow
// shares one step machine; only the step list and the jump policy differ.
package wizard

import (
	"errors"
	"fmt"

	"travelportal/internal/domain/models"
	"travelportal/internal/validation"
)

var (
	ErrStepInvalid    = errors.New("wizard: step has invalid fields")
	ErrStepOutOfRange = errors.New("wizard: step out of range")
	ErrJumpNotAllowed = errors.New("wizard: jump not allowed")
	ErrUnknownFlow    = errors.New("wizard: unknown flow")
)

// StepError reports the fields that kept a step from passing.
type StepError struct {
	Step   int
	Errors validation.ErrorSet
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Errors.First())
}

func (e *StepError) Unwrap() error { return ErrStepInvalid }

// JumpPolicy decides which steps JumpTo may land on besides the current one.
type JumpPolicy int

const (
	// JumpBackOnly allows only steps before the current one.
	JumpBackOnly JumpPolicy = iota
	// JumpCompleted also allows forward jumps up to the furthest step reached,
	// provided every step being skipped still passes.
	JumpCompleted
)

func (p JumpPolicy) String() string {
	switch p {
	case JumpBackOnly:
		return "back-only"
	case JumpCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type Step[D models.Draft] struct {
	Number   int
	Title    string
	Validate func(D) validation.ErrorSet
}

// Flow is an ordered list of steps for one draft variant. Steps are numbered
// from 1 in slice order.
type Flow[D models.Draft] struct {
	Kind  models.DraftKind
	Steps []Step[D]
	Jump  JumpPolicy
	New   func() D
}

func (f Flow[D]) Len() int { return len(f.Steps) }

func (f Flow[D]) InRange(step int) bool {
	return step >= 1 && step <= len(f.Steps)
}

// StepErrors runs the predicates of one step. Out of range steps have no rules.
func (f Flow[D]) StepErrors(step int, d D) validation.ErrorSet {
	if !f.InRange(step) {
		return validation.ErrorSet{}
	}
	s := f.Steps[step-1]
	if s.Validate == nil {
		return validation.ErrorSet{}
	}
	errs := s.Validate(d)
	if errs == nil {
		return validation.ErrorSet{}
	}
	return errs
}

// CanProceed is true when the step has no failing field.
func (f Flow[D]) CanProceed(step int, d D) bool {
	return f.StepErrors(step, d).Empty()
}

// ValidateAll merges the failures of every step, used right before submission.
func (f Flow[D]) ValidateAll(d D) validation.ErrorSet {
	all := validation.ErrorSet{}
	for i := range f.Steps {
		all.Merge(f.StepErrors(i+1, d))
	}
	return all
}

// StepInfo is the client facing description of a step.
type StepInfo struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

func (f Flow[D]) Info() []StepInfo {
	out := make([]StepInfo, 0, len(f.Steps))
	for i, s := range f.Steps {
		out = append(out, StepInfo{Number: i + 1, Title: s.Title})
	}
	return out
}

func numbered[D models.Draft](steps ...Step[D]) []Step[D] {
	for i := range steps {
		steps[i].Number = i + 1
	}
	return steps
}
