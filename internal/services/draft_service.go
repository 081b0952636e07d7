package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/utils"
	"travelportal/internal/wizard"

	"github.com/google/uuid"
)

const (
	inFlightMessage = "Your booking is already being submitted"
	notFinalMessage = "Please complete every step before submitting"
)

// DraftStore persists drafts between requests and guards submissions.
type DraftStore interface {
	Save(ctx context.Context, rec models.DraftRecord) error
	Get(ctx context.Context, id string) (models.DraftRecord, error)
	Delete(ctx context.Context, id string) error
	AcquireSubmitLock(ctx context.Context, id string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, id string) error
}

// DraftView is the client representation of a stored draft.
type DraftView struct {
	ID         string            `json:"id"`
	Kind       models.DraftKind  `json:"kind"`
	Target     models.Target     `json:"target"`
	Steps      []wizard.StepInfo `json:"steps"`
	JumpPolicy string            `json:"jumpPolicy"`
	State      models.StepState  `json:"state"`
	CanProceed bool              `json:"canProceed"`
	Draft      json.RawMessage   `json:"draft"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Counts is the traveler-count part of a draft patch.
type Counts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// DraftPatch changes fields of a draft. Fields is merged first, then Counts,
// then Toggle flips one accordion row.
type DraftPatch struct {
	Fields json.RawMessage `json:"fields"`
	Counts *Counts         `json:"counts"`
	Toggle string          `json:"toggle"`
}

// DraftService runs the wizard against drafts kept in a DraftStore.
type DraftService struct {
	Store     DraftStore
	Registry  wizard.Registry
	Submitter Submitter
	LockTTL   time.Duration
	Now       func() time.Time
	NewID     func() string
	RequestID string
}

func (s DraftService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s DraftService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s DraftService) lockTTL() time.Duration {
	if s.LockTTL > 0 {
		return s.LockTTL
	}
	return 30 * time.Second
}

func (s DraftService) Create(ctx context.Context, kind models.DraftKind, userID int64, target models.Target) (DraftView, error) {
	drv, err := s.Registry.New(kind)
	if err != nil {
		return DraftView{}, domain.ValidationError{Field: "flow", Msg: "Unknown booking flow", Err: err}
	}
	now := s.now()
	rec := models.DraftRecord{ID: s.newID(), Kind: kind, UserID: userID, Target: target, CreatedAt: now}
	if err := s.persist(ctx, &rec, drv); err != nil {
		return DraftView{}, err
	}
	utils.LogEvent(s.RequestID, "draft", "create", fmt.Sprintf("draft_id=%s kind=%s", rec.ID, kind))
	return view(rec, drv), nil
}

// Get returns a draft owned by userID. Drafts started anonymously are open to anyone holding the ID.
func (s DraftService) Get(ctx context.Context, id string, userID int64) (DraftView, error) {
	rec, drv, err := s.load(ctx, id, userID)
	if err != nil {
		return DraftView{}, err
	}
	return view(rec, drv), nil
}

func (s DraftService) Patch(ctx context.Context, id string, userID int64, p DraftPatch) (DraftView, error) {
	return s.mutate(ctx, id, userID, func(drv wizard.Driver) error {
		if err := drv.Apply(p.Fields); err != nil {
			return domain.ValidationError{Field: "fields", Msg: "Invalid draft fields", Err: err}
		}
		if p.Counts != nil {
			drv.SetCounts(p.Counts.Adults, p.Counts.Children, p.Counts.Infants)
		}
		if p.Toggle != "" {
			drv.ToggleTraveler(p.Toggle)
		}
		return nil
	})
}

// Next advances the draft. A blocked step is still saved so the errors stay visible.
func (s DraftService) Next(ctx context.Context, id string, userID int64) (DraftView, error) {
	return s.mutate(ctx, id, userID, func(drv wizard.Driver) error {
		if err := drv.Advance(); err != nil {
			return keepState{err}
		}
		return nil
	})
}

func (s DraftService) Prev(ctx context.Context, id string, userID int64) (DraftView, error) {
	return s.mutate(ctx, id, userID, func(drv wizard.Driver) error {
		drv.Retreat()
		return nil
	})
}

func (s DraftService) Jump(ctx context.Context, id string, userID int64, step int) (DraftView, error) {
	return s.mutate(ctx, id, userID, func(drv wizard.Driver) error {
		return drv.JumpTo(step)
	})
}

// Submit sends the draft through the Submitter while holding the per-draft
// submit lock. A concurrent second submit fails with ErrSubmitInFlight. The
// draft is read under the lock, so a submit that waited behind a finished one
// sees the reset draft and is rejected with ErrNotFinalStep.
func (s DraftService) Submit(ctx context.Context, id string, userID int64, nav Navigator) (DraftView, Outcome, error) {
	ok, err := s.Store.AcquireSubmitLock(ctx, id, s.lockTTL())
	if err != nil {
		return DraftView{}, Outcome{}, err
	}
	if !ok {
		return DraftView{}, Outcome{Message: inFlightMessage},
			domain.ConflictError{Resource: "draft", Msg: inFlightMessage, Err: ErrSubmitInFlight}
	}
	defer func() {
		if err := s.Store.ReleaseSubmitLock(context.WithoutCancel(ctx), id); err != nil {
			utils.LogError(s.RequestID, "draft", "release_lock", err)
		}
	}()

	rec, drv, err := s.load(ctx, id, userID)
	if err != nil {
		return DraftView{}, Outcome{}, err
	}
	if last := len(drv.Steps()); drv.State().CurrentStep != last {
		utils.LogEvent(s.RequestID, "draft", "submit", fmt.Sprintf("id=%s rejected step=%d of %d", id, drv.State().CurrentStep, last))
		return view(rec, drv), Outcome{Message: notFinalMessage},
			domain.ValidationError{Field: "step", Msg: notFinalMessage, Err: ErrNotFinalStep}
	}

	sub := s.Submitter
	if sub.RequestID == "" {
		sub.RequestID = s.RequestID
	}
	out, subErr := sub.Submit(ctx, drv, rec.Target, userID, nav)
	if subErr != nil {
		return view(rec, drv), out, subErr
	}
	if err := s.persist(ctx, &rec, drv); err != nil {
		return view(rec, drv), out, err
	}
	return view(rec, drv), out, nil
}

func (s DraftService) Discard(ctx context.Context, id string, userID int64) error {
	if _, _, err := s.load(ctx, id, userID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, id)
}

// keepState marks a mutation error after which the draft must still be saved.
type keepState struct{ error }

func (k keepState) Unwrap() error { return k.error }

func (s DraftService) mutate(ctx context.Context, id string, userID int64, fn func(wizard.Driver) error) (DraftView, error) {
	rec, drv, err := s.load(ctx, id, userID)
	if err != nil {
		return DraftView{}, err
	}
	if err := fn(drv); err != nil {
		var ks keepState
		if !errors.As(err, &ks) {
			return view(rec, drv), err
		}
		if perr := s.persist(ctx, &rec, drv); perr != nil {
			return DraftView{}, perr
		}
		return view(rec, drv), ks.error
	}
	if err := s.persist(ctx, &rec, drv); err != nil {
		return DraftView{}, err
	}
	return view(rec, drv), nil
}

func (s DraftService) load(ctx context.Context, id string, userID int64) (models.DraftRecord, wizard.Driver, error) {
	rec, err := s.Store.Get(ctx, id)
	if err != nil {
		return rec, nil, err
	}
	if rec.UserID != 0 && rec.UserID != userID {
		return rec, nil, domain.NotFoundError{Resource: "draft"}
	}
	drv, err := s.Registry.Open(rec.Kind, rec.State, rec.Data)
	if err != nil {
		return rec, nil, domain.InternalError{Msg: "draft tidak bisa dibaca", Err: err}
	}
	return rec, drv, nil
}

func (s DraftService) persist(ctx context.Context, rec *models.DraftRecord, drv wizard.Driver) error {
	data, err := drv.MarshalDraft()
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	rec.Data = data
	rec.State = drv.State()
	rec.UpdatedAt = s.now()
	return s.Store.Save(ctx, *rec)
}

func view(rec models.DraftRecord, drv wizard.Driver) DraftView {
	data, _ := drv.MarshalDraft()
	return DraftView{
		ID:         rec.ID,
		Kind:       rec.Kind,
		Target:     rec.Target,
		Steps:      drv.Steps(),
		JumpPolicy: drv.Policy().String(),
		State:      drv.State(),
		CanProceed: drv.CanProceed(),
		Draft:      data,
		UpdatedAt:  rec.UpdatedAt,
	}
}
