package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/utils"
	"travelportal/internal/validation"
	"travelportal/internal/wizard"
)

// GenericSubmitMessage is shown whenever no better message can be extracted.
const GenericSubmitMessage = "Something went wrong. Please try again."

var (
	ErrSubmitInFlight = errors.New("submission already in progress")
	ErrNotFinalStep   = errors.New("draft is not on its review step")
	ErrUnknownDraft   = errors.New("unknown draft type")
)

// SubmitError is a rejection by the booking action, carrying the message to show.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }
func (e *SubmitError) Unwrap() error { return e.Err }

// BookingActions is the data-service contract: one form payload in, {data} or {error} out.
// A returned error means the call itself failed.
type BookingActions interface {
	CreatePackageBooking(ctx context.Context, form url.Values) (models.ActionResult, error)
	CreateHotelBooking(ctx context.Context, form url.Values) (models.ActionResult, error)
	CreateCustomUmrahRequest(ctx context.Context, form url.Values) (models.ActionResult, error)
}

// Navigator receives the redirect after a successful submission.
type Navigator interface {
	Redirect(target string)
}

// RedirectRecorder is a Navigator that remembers the last target.
type RedirectRecorder struct {
	Target string
	Calls  int
}

func (r *RedirectRecorder) Redirect(target string) {
	r.Target = target
	r.Calls++
}

// Outcome is what the caller renders after a submit attempt.
type Outcome struct {
	Redirect string              `json:"redirect,omitempty"`
	Data     any                 `json:"data,omitempty"`
	Message  string              `json:"message,omitempty"`
	Errors   validation.ErrorSet `json:"errors,omitempty"`
}

// ThankYouPath is the confirmation page for a submitted draft kind.
func ThankYouPath(kind models.DraftKind) string {
	return "/thank-you?type=" + url.QueryEscape(string(kind))
}

// Submitter re-validates a whole draft, sends it to the matching action and
// interprets the result.
type Submitter struct {
	Actions   BookingActions
	RequestID string
}

// Submit leaves the draft untouched on every failure. On success the draft is
// reset to its defaults and nav is called exactly once.
func (s Submitter) Submit(ctx context.Context, drv wizard.Driver, target models.Target, userID int64, nav Navigator) (Outcome, error) {
	if errs := drv.ValidateAll(); !errs.Empty() {
		utils.LogEvent(s.RequestID, "submission", "validate", fmt.Sprintf("kind=%s invalid_fields=%d", drv.Kind(), len(errs)))
		return Outcome{Message: errs.First(), Errors: errs}, domain.FieldErrors(errs)
	}

	form, err := BuildPayload(drv.DraftValue(), target, userID)
	if err != nil {
		utils.LogError(s.RequestID, "submission", "payload", err)
		return Outcome{Message: GenericSubmitMessage}, &SubmitError{Message: GenericSubmitMessage, Err: err}
	}

	res, err := s.invoke(ctx, drv.Kind(), form)
	if err != nil {
		utils.LogError(s.RequestID, "submission", "invoke", err)
		return Outcome{Message: GenericSubmitMessage}, &SubmitError{Message: GenericSubmitMessage, Err: err}
	}
	if res.Error != nil {
		msg := ExtractMessage(res.Error)
		utils.LogEvent(s.RequestID, "submission", "rejected", fmt.Sprintf("kind=%s message=%q", drv.Kind(), msg))
		return Outcome{Message: msg}, &SubmitError{Message: msg}
	}

	drv.Reset()
	redirect := ThankYouPath(drv.Kind())
	if nav != nil {
		nav.Redirect(redirect)
	}
	utils.LogEvent(s.RequestID, "submission", "accepted", "kind="+string(drv.Kind()))
	return Outcome{Redirect: redirect, Data: res.Data}, nil
}

func (s Submitter) invoke(ctx context.Context, kind models.DraftKind, form url.Values) (models.ActionResult, error) {
	if s.Actions == nil {
		return models.ActionResult{}, errors.New("booking actions not configured")
	}
	switch kind {
	case models.KindPackage:
		return s.Actions.CreatePackageBooking(ctx, form)
	case models.KindHotel:
		return s.Actions.CreateHotelBooking(ctx, form)
	case models.KindCustom:
		return s.Actions.CreateCustomUmrahRequest(ctx, form)
	}
	return models.ActionResult{}, fmt.Errorf("%w: %s", ErrUnknownDraft, kind)
}

// ExtractMessage picks the first message, then the first field error in key
// order, then the generic fallback.
func ExtractMessage(e *models.ActionError) string {
	if e == nil {
		return GenericSubmitMessage
	}
	for _, m := range e.Message {
		if m != "" {
			return m
		}
	}
	if len(e.Fields) > 0 {
		if msg := validation.ErrorSet(e.Fields).First(); msg != "" {
			return msg
		}
	}
	return GenericSubmitMessage
}

// BuildPayload encodes a draft as a flat form. Scalars are plain fields; every
// structured value (travelerDetails, hotels, services) is one JSON-encoded field.
func BuildPayload(d models.Draft, target models.Target, userID int64) (url.Values, error) {
	form := url.Values{}
	form.Set("kind", string(d.Kind()))
	if userID > 0 {
		form.Set("userId", strconv.FormatInt(userID, 10))
	}

	party := d.TravelParty()
	form.Set("adults", strconv.Itoa(party.Adults))
	form.Set("children", strconv.Itoa(party.Children))
	form.Set("infants", strconv.Itoa(party.Infants))
	if err := setJSON(form, "travelerDetails", party.Details()); err != nil {
		return nil, err
	}

	ct := d.LeadContact()
	form.Set("contactName", ct.FullName)
	form.Set("email", ct.Email)
	form.Set("phone", ct.Phone)

	switch v := d.(type) {
	case *models.PackageDraft:
		form.Set("packageId", strconv.FormatInt(target.ID, 10))
		form.Set("packageName", target.Name)
		form.Set("rooms", strconv.Itoa(v.Rooms))
		form.Set("paymentMethod", v.PaymentMethod)
		form.Set("notes", v.Notes)
		return form, setJSON(form, "services", nonNil(v.Services))
	case *models.HotelDraft:
		form.Set("hotelId", strconv.FormatInt(target.ID, 10))
		form.Set("hotelName", target.Name)
		form.Set("checkIn", v.CheckIn)
		form.Set("checkOut", v.CheckOut)
		form.Set("nights", strconv.Itoa(v.Nights()))
		form.Set("rooms", strconv.Itoa(v.Rooms))
		form.Set("paymentMethod", v.PaymentMethod)
		form.Set("specialRequests", v.SpecialRequests)
		return form, setJSON(form, "services", nonNil(v.Services))
	case *models.CustomDraft:
		form.Set("departureCity", v.DepartureCity)
		form.Set("departureDate", v.DepartureDate)
		form.Set("returnDate", v.ReturnDate)
		form.Set("budget", strconv.FormatInt(v.Budget, 10))
		form.Set("notes", v.Notes)
		hotels := v.Hotels
		if hotels == nil {
			hotels = []models.HotelPreference{}
		}
		if err := setJSON(form, "hotels", hotels); err != nil {
			return nil, err
		}
		return form, setJSON(form, "services", nonNil(v.Services))
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownDraft, d)
}

func setJSON(form url.Values, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	form.Set(key, string(b))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
