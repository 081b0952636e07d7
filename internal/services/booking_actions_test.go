package services

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
)

type memCatalog struct {
	packages map[int64]models.Package
	hotels   map[int64]models.Hotel
	services []models.AdditionalService
}

func (m memCatalog) ListPackages(context.Context) ([]models.Package, error) {
	var out []models.Package
	for _, p := range m.packages {
		out = append(out, p)
	}
	return out, nil
}

func (m memCatalog) GetPackage(_ context.Context, id int64) (models.Package, error) {
	p, ok := m.packages[id]
	if !ok {
		return p, domain.NotFoundError{Resource: "package"}
	}
	return p, nil
}

func (m memCatalog) ListHotels(context.Context, string) ([]models.Hotel, error) { return nil, nil }

func (m memCatalog) GetHotel(_ context.Context, id int64) (models.Hotel, error) {
	h, ok := m.hotels[id]
	if !ok {
		return h, domain.NotFoundError{Resource: "hotel"}
	}
	return h, nil
}

func (m memCatalog) ListServices(context.Context) ([]models.AdditionalService, error) {
	return m.services, nil
}

func (m memCatalog) FormOptions(context.Context) (models.FormOptions, error) {
	return models.FormOptions{}, nil
}

type memBookings struct {
	packages []models.PackageBooking
	hotels   []models.HotelBooking
	custom   []models.CustomUmrahRequest
}

func (m *memBookings) CreatePackageBooking(_ context.Context, b models.PackageBooking) (models.PackageBooking, error) {
	b.ID = int64(len(m.packages) + 1)
	m.packages = append(m.packages, b)
	return b, nil
}

func (m *memBookings) HasPackageBooking(_ context.Context, packageID int64, email string) (bool, error) {
	for _, b := range m.packages {
		if b.PackageID == packageID && b.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookings) GetPackageBooking(_ context.Context, id int64) (models.PackageBooking, error) {
	if id < 1 || int(id) > len(m.packages) {
		return models.PackageBooking{}, domain.NotFoundError{Resource: "booking"}
	}
	return m.packages[id-1], nil
}

func (m *memBookings) CreateHotelBooking(_ context.Context, b models.HotelBooking) (models.HotelBooking, error) {
	b.ID = int64(len(m.hotels) + 1)
	m.hotels = append(m.hotels, b)
	return b, nil
}

func (m *memBookings) HasHotelBooking(_ context.Context, hotelID int64, email, checkIn string) (bool, error) {
	for _, b := range m.hotels {
		if b.HotelID == hotelID && b.Email == email && b.CheckIn == checkIn {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookings) GetHotelBooking(_ context.Context, id int64) (models.HotelBooking, error) {
	if id < 1 || int(id) > len(m.hotels) {
		return models.HotelBooking{}, domain.NotFoundError{Resource: "booking"}
	}
	return m.hotels[id-1], nil
}

func (m *memBookings) CreateCustomRequest(_ context.Context, q models.CustomUmrahRequest) (models.CustomUmrahRequest, error) {
	q.ID = int64(len(m.custom) + 1)
	m.custom = append(m.custom, q)
	return q, nil
}

func (m *memBookings) GetCustomRequest(_ context.Context, id int64) (models.CustomUmrahRequest, error) {
	if id < 1 || int(id) > len(m.custom) {
		return models.CustomUmrahRequest{}, domain.NotFoundError{Resource: "request"}
	}
	return m.custom[id-1], nil
}

func testCatalog() memCatalog {
	return memCatalog{
		packages: map[int64]models.Package{3: {ID: 3, Name: "Umrah Plus", Price: 30_000_000, Seats: 10}},
		hotels:   map[int64]models.Hotel{5: {ID: 5, Name: "Hilton Makkah", City: "Makkah", PricePerNight: 2_000_000}},
		services: []models.AdditionalService{{Code: "visa", Price: 1_500_000}, {Code: "transfer", Price: 500_000}},
	}
}

func newActions() (RepositoryActions, *memBookings) {
	b := &memBookings{}
	fixed := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	return RepositoryActions{Bookings: b, Catalog: testCatalog(), Now: func() time.Time { return fixed }}, b
}

func TestCreatePackageBookingFromSubmittedForm(t *testing.T) {
	actions, store := newActions()
	form, err := BuildPayload(completePackage(), models.Target{ID: 3, Name: "Umrah Plus"}, 7)
	require.NoError(t, err)

	res, err := actions.CreatePackageBooking(context.Background(), form)
	require.NoError(t, err)
	require.True(t, res.OK(), "%+v", res.Error)

	b := res.Data.(models.PackageBooking)
	assert.True(t, strings.HasPrefix(b.Reference, "PKG-261014-"))
	assert.Equal(t, int64(7), b.UserID)
	assert.Len(t, b.Travelers.Adults, 2)
	fare := int64(30_000_000*2) + 30_000_000*75/100
	assert.Equal(t, fare+1_500_000*3, b.TotalAmount)
	assert.Len(t, store.packages, 1)

	dup, err := actions.CreatePackageBooking(context.Background(), form)
	require.NoError(t, err)
	require.False(t, dup.OK())
	assert.Equal(t, "Duplicate booking", ExtractMessage(dup.Error))
}

func TestCreatePackageBookingRejections(t *testing.T) {
	actions, _ := newActions()
	ctx := context.Background()

	res, err := actions.CreatePackageBooking(ctx, url.Values{"adults": {"1"}, "contactName": {"A"}, "email": {"a@b.co"}, "phone": {"0812345678"}, "packageId": {"99"}})
	require.NoError(t, err)
	assert.Equal(t, "Package not found", ExtractMessage(res.Error))

	res, _ = actions.CreatePackageBooking(ctx, url.Values{"adults": {"0"}})
	assert.Equal(t, "At least one adult is required", ExtractMessage(res.Error))

	res, _ = actions.CreatePackageBooking(ctx, url.Values{"adults": {"11"}, "contactName": {"A"}, "email": {"a@b.co"}, "phone": {"0812345678"}, "packageId": {"3"}})
	assert.Equal(t, "Only 10 seats left on this package", ExtractMessage(res.Error))

	res, _ = actions.CreatePackageBooking(ctx, url.Values{"adults": {"1"}, "contactName": {"A"}, "email": {"a@b.co"}, "phone": {"0812345678"}, "packageId": {"3"}, "services": {`["spa"]`}})
	assert.Equal(t, `Unknown additional service "spa"`, ExtractMessage(res.Error))

	res, _ = actions.CreatePackageBooking(ctx, url.Values{"travelerDetails": {"{broken"}})
	assert.Equal(t, "Invalid booking payload", ExtractMessage(res.Error))
}

func TestCreateHotelBookingPricesStay(t *testing.T) {
	actions, _ := newActions()
	d := models.NewHotelDraft()
	d.CheckIn, d.CheckOut, d.Rooms = "2026-11-01", "2026-11-04", 2
	d.Contact = models.Contact{FullName: "Guest", Email: "guest@example.com", Phone: "0812345678"}
	d.PaymentMethod = "credit_card"
	form, err := BuildPayload(d, models.Target{ID: 5}, 0)
	require.NoError(t, err)

	res, err := actions.CreateHotelBooking(context.Background(), form)
	require.NoError(t, err)
	require.True(t, res.OK())
	b := res.Data.(models.HotelBooking)
	assert.Equal(t, int64(2_000_000*3*2), b.TotalAmount)
	assert.Equal(t, "Hilton Makkah", b.HotelName)

	form.Set("checkOut", "2026-10-30")
	form.Set("email", "other@example.com")
	res, _ = actions.CreateHotelBooking(context.Background(), form)
	assert.Equal(t, "Check-out must be after check-in", ExtractMessage(res.Error))
}

func TestCreateCustomRequestNeedsHotels(t *testing.T) {
	actions, store := newActions()
	d := models.NewCustomDraft()
	d.Contact = models.Contact{FullName: "Fatimah", Email: "f@example.com", Phone: "0812345678"}
	d.Budget = 50_000_000
	form, err := BuildPayload(d, models.Target{}, 0)
	require.NoError(t, err)

	res, err := actions.CreateCustomUmrahRequest(context.Background(), form)
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Len(t, store.custom[0].Hotels, 2)
	assert.Equal(t, int64(50_000_000), store.custom[0].Budget)

	form.Set("hotels", "[]")
	res, _ = actions.CreateCustomUmrahRequest(context.Background(), form)
	assert.Equal(t, "Add at least one hotel stay", ExtractMessage(res.Error))
}
