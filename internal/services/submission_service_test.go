package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/wizard"
)

type fakeActions struct {
	res   models.ActionResult
	err   error
	calls int
	kind  string
	form  url.Values
}

func (f *fakeActions) record(kind string, form url.Values) (models.ActionResult, error) {
	f.calls++
	f.kind = kind
	f.form = form
	return f.res, f.err
}

func (f *fakeActions) CreatePackageBooking(_ context.Context, form url.Values) (models.ActionResult, error) {
	return f.record("package", form)
}

func (f *fakeActions) CreateHotelBooking(_ context.Context, form url.Values) (models.ActionResult, error) {
	return f.record("hotel", form)
}

func (f *fakeActions) CreateCustomUmrahRequest(_ context.Context, form url.Values) (models.ActionResult, error) {
	return f.record("custom", form)
}

func intPtr(v int) *int { return &v }

func completePackage() *models.PackageDraft {
	d := models.NewPackageDraft()
	d.Adults, d.Children, d.Infants = 2, 1, 0
	d.Party.Sync()
	d.AdultDetails[0] = models.Traveler{Name: "Ahmad", Gender: "male", Nationality: "ID", PassportNumber: "A1234567", Age: intPtr(40)}
	d.AdultDetails[1] = models.Traveler{Name: "Siti", Gender: "female", Nationality: "ID", PassportNumber: "B7654321", Age: intPtr(38)}
	d.ChildDetails[0] = models.Traveler{Name: "Rafi", Gender: "male", Nationality: "ID", PassportNumber: "C1122334", Age: intPtr(8)}
	d.Contact = models.Contact{FullName: "Ahmad Fauzi", Email: "ahmad@example.com", Phone: "+62 812 3456 7890"}
	d.PaymentMethod = "bank_transfer"
	d.Services = []string{"visa"}
	return d
}

func packageDriver(step int) *wizard.Controller[*models.PackageDraft] {
	return wizard.Restore(wizard.PackageFlow(wizard.DefaultOptions()), completePackage(),
		models.StepState{CurrentStep: step, FurthestStep: step})
}

func TestSubmitSurfacesActionErrorAndKeepsDraft(t *testing.T) {
	actions := &fakeActions{res: models.Failure("Duplicate booking")}
	drv := packageDriver(5)
	before, err := drv.MarshalDraft()
	require.NoError(t, err)
	nav := &RedirectRecorder{}

	out, err := Submitter{Actions: actions}.Submit(context.Background(), drv, models.Target{ID: 3, Name: "Umrah Plus"}, 7, nav)

	var se *SubmitError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Duplicate booking", se.Message)
	assert.Equal(t, "Duplicate booking", out.Message)
	assert.Equal(t, 1, actions.calls)
	assert.Equal(t, 5, drv.State().CurrentStep)
	after, _ := drv.MarshalDraft()
	assert.JSONEq(t, string(before), string(after))
	assert.Zero(t, nav.Calls)
}

func TestSubmitSuccessResetsDraftAndNavigatesOnce(t *testing.T) {
	actions := &fakeActions{res: models.Success(map[string]any{"id": 1})}
	drv := packageDriver(5)
	nav := &RedirectRecorder{}

	out, err := Submitter{Actions: actions}.Submit(context.Background(), drv, models.Target{ID: 3}, 0, nav)
	require.NoError(t, err)

	assert.Equal(t, 1, nav.Calls)
	assert.Equal(t, "/thank-you?type=package", nav.Target)
	assert.Equal(t, nav.Target, out.Redirect)

	defaults, _ := json.Marshal(models.NewPackageDraft())
	got, _ := drv.MarshalDraft()
	assert.JSONEq(t, string(defaults), string(got))
	assert.Equal(t, 1, drv.State().CurrentStep)
	assert.False(t, drv.State().ShowErrors)
}

func TestSubmitInvalidDraftMakesNoCall(t *testing.T) {
	actions := &fakeActions{}
	drv := packageDriver(5)
	drv.Draft().Contact.Email = "not-an-email"

	out, err := Submitter{Actions: actions}.Submit(context.Background(), drv, models.Target{ID: 3}, 0, nil)

	fields, ok := domain.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "contact.email")
	assert.Equal(t, out.Errors.First(), out.Message)
	assert.Zero(t, actions.calls)
}

func TestSubmitTransportFailureUsesGenericMessage(t *testing.T) {
	actions := &fakeActions{err: errors.New("connection reset")}
	drv := packageDriver(5)

	out, err := Submitter{Actions: actions}.Submit(context.Background(), drv, models.Target{ID: 3}, 0, nil)
	require.Error(t, err)
	assert.Equal(t, GenericSubmitMessage, out.Message)
	assert.Equal(t, 5, drv.State().CurrentStep)
}

func TestExtractMessageOrder(t *testing.T) {
	assert.Equal(t, "first", ExtractMessage(&models.ActionError{Message: []string{"", "first", "second"}}))
	assert.Equal(t, "Email taken", ExtractMessage(&models.ActionError{Fields: map[string]string{"phone": "Phone taken", "email": "Email taken"}}))
	assert.Equal(t, GenericSubmitMessage, ExtractMessage(&models.ActionError{}))
	assert.Equal(t, GenericSubmitMessage, ExtractMessage(nil))
}

func TestBuildPayloadEncodesStructuredFieldsAsJSON(t *testing.T) {
	form, err := BuildPayload(completePackage(), models.Target{ID: 3, Name: "Umrah Plus"}, 7)
	require.NoError(t, err)

	assert.Equal(t, "3", form.Get("packageId"))
	assert.Equal(t, "7", form.Get("userId"))
	assert.Equal(t, "2", form.Get("adults"))
	assert.Equal(t, `["visa"]`, form.Get("services"))

	var details models.TravelerDetails
	require.NoError(t, json.Unmarshal([]byte(form.Get("travelerDetails")), &details))
	assert.Len(t, details.Adults, 2)
	assert.Equal(t, "Rafi", details.Children[0].Name)

	for key := range form {
		assert.NotContains(t, key, "[", "bracket keys are never produced")
	}
}

func TestBuildPayloadCustomHotels(t *testing.T) {
	d := models.NewCustomDraft()
	d.Hotels[0].Stars, d.Hotels[0].Nights = 5, 4
	form, err := BuildPayload(d, models.Target{}, 0)
	require.NoError(t, err)

	var hotels []models.HotelPreference
	require.NoError(t, json.Unmarshal([]byte(form.Get("hotels")), &hotels))
	require.Len(t, hotels, 2)
	assert.Equal(t, "Makkah", hotels[0].City)
	assert.Equal(t, 5, hotels[0].Stars)
	assert.Empty(t, form.Get("userId"))
}
