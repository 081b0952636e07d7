package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/repositories"
	"travelportal/internal/wizard"
)

func newDraftService(t *testing.T, actions BookingActions) (DraftService, repositories.DraftRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := repositories.DraftRepository{Client: client, TTL: time.Hour}
	seq := 0
	svc := DraftService{
		Store:     store,
		Registry:  wizard.NewRegistry(wizard.DefaultOptions()),
		Submitter: Submitter{Actions: actions},
		NewID: func() string {
			seq++
			return fmt.Sprintf("draft-%d", seq)
		},
	}
	return svc, store
}

func TestDraftServiceCreateAndStep(t *testing.T) {
	svc, _ := newDraftService(t, &fakeActions{})
	ctx := context.Background()

	v, err := svc.Create(ctx, models.KindPackage, 7, models.Target{ID: 3, Name: "Umrah Plus"})
	require.NoError(t, err)
	assert.Equal(t, "draft-1", v.ID)
	assert.Equal(t, 1, v.State.CurrentStep)
	assert.Len(t, v.Steps, 5)
	assert.Equal(t, "back-only", v.JumpPolicy)

	v, err = svc.Next(ctx, v.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, v.State.CurrentStep)

	// contact step is empty: blocked, but the visible errors are persisted
	_, err = svc.Next(ctx, v.ID, 7)
	assert.True(t, errors.Is(err, wizard.ErrStepInvalid))
	v, err = svc.Get(ctx, v.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, v.State.CurrentStep)
	assert.True(t, v.State.ShowErrors)
	assert.Contains(t, v.State.Errors, "contact.email")

	v, err = svc.Prev(ctx, v.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, v.State.CurrentStep)
}

func TestDraftServicePatchCountsResizesTravelers(t *testing.T) {
	svc, _ := newDraftService(t, &fakeActions{})
	ctx := context.Background()
	v, err := svc.Create(ctx, models.KindPackage, 0, models.Target{ID: 3})
	require.NoError(t, err)

	v, err = svc.Patch(ctx, v.ID, 0, DraftPatch{
		Fields: json.RawMessage(`{"adultDetails":[{"name":"Ahmad"}]}`),
		Counts: &Counts{Adults: 3, Children: 1},
	})
	require.NoError(t, err)
	var d models.PackageDraft
	require.NoError(t, json.Unmarshal(v.Draft, &d))
	require.Len(t, d.AdultDetails, 3)
	assert.Equal(t, "Ahmad", d.AdultDetails[0].Name)
	assert.Len(t, d.ChildDetails, 1)
	assert.ElementsMatch(t, []string{"adult-0", "adult-1", "adult-2", "child-0"}, v.State.OpenTravelers)

	v, err = svc.Patch(ctx, v.ID, 0, DraftPatch{Toggle: "adult-1"})
	require.NoError(t, err)
	assert.NotContains(t, v.State.OpenTravelers, "adult-1")
}

func TestDraftServiceRejectsOtherUsers(t *testing.T) {
	svc, _ := newDraftService(t, &fakeActions{})
	ctx := context.Background()
	v, err := svc.Create(ctx, models.KindHotel, 7, models.Target{ID: 5})
	require.NoError(t, err)

	_, err = svc.Get(ctx, v.ID, 8)
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(svc.Discard(ctx, v.ID, 8)))
	require.NoError(t, svc.Discard(ctx, v.ID, 7))
	_, err = svc.Get(ctx, v.ID, 7)
	assert.True(t, domain.IsNotFound(err))
}

func TestDraftServiceJumpPolicy(t *testing.T) {
	svc, _ := newDraftService(t, &fakeActions{})
	ctx := context.Background()
	v, err := svc.Create(ctx, models.KindPackage, 0, models.Target{ID: 3})
	require.NoError(t, err)

	_, err = svc.Jump(ctx, v.ID, 0, 3)
	assert.True(t, errors.Is(err, wizard.ErrJumpNotAllowed))
	_, err = svc.Jump(ctx, v.ID, 0, 9)
	assert.True(t, errors.Is(err, wizard.ErrStepOutOfRange))
}

func TestDraftServiceSubmitLock(t *testing.T) {
	actions := &fakeActions{res: models.Success(map[string]any{"id": 1})}
	svc, store := newDraftService(t, actions)
	ctx := context.Background()

	v, err := svc.Create(ctx, models.KindPackage, 7, models.Target{ID: 3})
	require.NoError(t, err)
	data, _ := json.Marshal(completePackage())
	require.NoError(t, store.Save(ctx, models.DraftRecord{
		ID: v.ID, Kind: models.KindPackage, UserID: 7, Target: models.Target{ID: 3},
		State: models.StepState{CurrentStep: 5, FurthestStep: 5}, Data: data,
	}))

	held, err := store.AcquireSubmitLock(ctx, v.ID, time.Minute)
	require.NoError(t, err)
	require.True(t, held)
	_, _, err = svc.Submit(ctx, v.ID, 7, nil)
	assert.True(t, domain.IsConflict(err))
	assert.True(t, errors.Is(err, ErrSubmitInFlight))
	assert.Zero(t, actions.calls)
	require.NoError(t, store.ReleaseSubmitLock(ctx, v.ID))

	nav := &RedirectRecorder{}
	v, out, err := svc.Submit(ctx, v.ID, 7, nav)
	require.NoError(t, err)
	assert.Equal(t, 1, actions.calls)
	assert.Equal(t, "/thank-you?type=package", out.Redirect)
	assert.Equal(t, 1, nav.Calls)
	assert.Equal(t, 1, v.State.CurrentStep)

	// the lock is released once the submission returns
	ok, err := store.AcquireSubmitLock(ctx, v.ID, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDraftServiceUnknownKind(t *testing.T) {
	svc, _ := newDraftService(t, &fakeActions{})
	_, err := svc.Create(context.Background(), models.DraftKind("cruise"), 0, models.Target{})
	assert.True(t, domain.IsValidation(err))
}

// gatedActions holds the package booking call open until release is closed.
type gatedActions struct {
	entered chan struct{}
	release chan struct{}
	calls   int
}

func (g *gatedActions) CreatePackageBooking(context.Context, url.Values) (models.ActionResult, error) {
	g.calls++
	close(g.entered)
	<-g.release
	return models.Success(map[string]any{"id": 1}), nil
}

func (g *gatedActions) CreateHotelBooking(context.Context, url.Values) (models.ActionResult, error) {
	return models.ActionResult{}, errors.New("unexpected hotel booking")
}

func (g *gatedActions) CreateCustomUmrahRequest(context.Context, url.Values) (models.ActionResult, error) {
	return models.ActionResult{}, errors.New("unexpected custom request")
}

func saveReviewDraft(t *testing.T, store repositories.DraftRepository, id string, step int) {
	t.Helper()
	data, err := json.Marshal(completePackage())
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), models.DraftRecord{
		ID: id, Kind: models.KindPackage, UserID: 7, Target: models.Target{ID: 3},
		State: models.StepState{CurrentStep: step, FurthestStep: 5}, Data: data,
	}))
}

func TestDraftServiceOverlappingSubmitsBookOnce(t *testing.T) {
	actions := &gatedActions{entered: make(chan struct{}), release: make(chan struct{})}
	svc, store := newDraftService(t, actions)
	ctx := context.Background()
	saveReviewDraft(t, store, "draft-race", 5)

	firstErr := make(chan error, 1)
	go func() {
		_, _, err := svc.Submit(ctx, "draft-race", 7, &RedirectRecorder{})
		firstErr <- err
	}()
	<-actions.entered

	// the first submit is still inside the booking action
	_, _, err := svc.Submit(ctx, "draft-race", 7, &RedirectRecorder{})
	assert.True(t, errors.Is(err, ErrSubmitInFlight), "got %v", err)

	close(actions.release)
	require.NoError(t, <-firstErr)

	// a retry after the first finished reads the reset draft
	v, _, err := svc.Submit(ctx, "draft-race", 7, &RedirectRecorder{})
	assert.True(t, errors.Is(err, ErrNotFinalStep), "got %v", err)
	assert.Equal(t, 1, v.State.CurrentStep)
	assert.Equal(t, 1, actions.calls)
}

func TestDraftServiceSubmitRequiresReviewStep(t *testing.T) {
	actions := &fakeActions{res: models.Success(map[string]any{"id": 1})}
	svc, store := newDraftService(t, actions)
	saveReviewDraft(t, store, "draft-early", 3)

	_, _, err := svc.Submit(context.Background(), "draft-early", 7, nil)
	assert.True(t, domain.IsValidation(err))
	assert.True(t, errors.Is(err, ErrNotFinalStep))
	assert.Zero(t, actions.calls)

	ok, err := store.AcquireSubmitLock(context.Background(), "draft-early", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "a rejected submit releases its lock")
}
