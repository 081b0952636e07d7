package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/utils"

	"github.com/google/uuid"
)

// BookingStore is the persistence needed by the booking actions.
type BookingStore interface {
	CreatePackageBooking(ctx context.Context, b models.PackageBooking) (models.PackageBooking, error)
	HasPackageBooking(ctx context.Context, packageID int64, email string) (bool, error)
	GetPackageBooking(ctx context.Context, id int64) (models.PackageBooking, error)
	CreateHotelBooking(ctx context.Context, b models.HotelBooking) (models.HotelBooking, error)
	HasHotelBooking(ctx context.Context, hotelID int64, email, checkIn string) (bool, error)
	GetHotelBooking(ctx context.Context, id int64) (models.HotelBooking, error)
	CreateCustomRequest(ctx context.Context, q models.CustomUmrahRequest) (models.CustomUmrahRequest, error)
	GetCustomRequest(ctx context.Context, id int64) (models.CustomUmrahRequest, error)
}

// CatalogStore is the read side of packages, hotels and form data.
type CatalogStore interface {
	ListPackages(ctx context.Context) ([]models.Package, error)
	GetPackage(ctx context.Context, id int64) (models.Package, error)
	ListHotels(ctx context.Context, city string) ([]models.Hotel, error)
	GetHotel(ctx context.Context, id int64) (models.Hotel, error)
	ListServices(ctx context.Context) ([]models.AdditionalService, error)
	FormOptions(ctx context.Context) (models.FormOptions, error)
}

// RepositoryActions implements BookingActions on top of MySQL. Business
// rejections come back as {error}; only infrastructure failures are errors.
type RepositoryActions struct {
	Bookings  BookingStore
	Catalog   CatalogStore
	Now       func() time.Time
	RequestID string
}

var _ BookingActions = RepositoryActions{}

func (a RepositoryActions) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewReference builds a booking reference such as PKG-261014-3F9A1C.
func NewReference(prefix string, now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("060102"), strings.ToUpper(id[:6]))
}

type partyForm struct {
	userID                    int64
	adults, children, infants int
	travelers                 models.TravelerDetails
	services                  []string
	contactName, email, phone string
}

func parseParty(form url.Values) (partyForm, error) {
	p := partyForm{
		contactName: strings.TrimSpace(form.Get("contactName")),
		email:       strings.ToLower(strings.TrimSpace(form.Get("email"))),
		phone:       strings.TrimSpace(form.Get("phone")),
	}
	p.userID, _ = strconv.ParseInt(form.Get("userId"), 10, 64)
	p.adults, _ = strconv.Atoi(form.Get("adults"))
	p.children, _ = strconv.Atoi(form.Get("children"))
	p.infants, _ = strconv.Atoi(form.Get("infants"))
	if raw := form.Get("travelerDetails"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.travelers); err != nil {
			return p, fmt.Errorf("travelerDetails: %w", err)
		}
	}
	if raw := form.Get("services"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.services); err != nil {
			return p, fmt.Errorf("services: %w", err)
		}
	}
	return p, nil
}

func (p partyForm) missing() string {
	switch {
	case p.adults < 1:
		return "At least one adult is required"
	case p.contactName == "" || p.email == "" || p.phone == "":
		return "Contact details are required"
	}
	return ""
}

// servicesTotal prices the selected add-ons once per traveler.
func (a RepositoryActions) servicesTotal(ctx context.Context, codes []string, travelers int) (int64, error) {
	if len(codes) == 0 {
		return 0, nil
	}
	list, err := a.Catalog.ListServices(ctx)
	if err != nil {
		return 0, err
	}
	price := map[string]int64{}
	for _, s := range list {
		price[s.Code] = s.Price
	}
	var total int64
	for _, c := range codes {
		p, ok := price[c]
		if !ok {
			return 0, domain.ValidationError{Field: "services", Msg: fmt.Sprintf("Unknown additional service %q", c)}
		}
		total += p * int64(travelers)
	}
	return total, nil
}

// rejectOr turns validation and not-found errors into an {error} result.
func rejectOr(err error) (models.ActionResult, error) {
	if fe, ok := domain.AsFieldErrors(err); ok {
		return models.FieldFailure(fe), nil
	}
	var ve domain.ValidationError
	if errors.As(err, &ve) {
		if ve.Msg != "" {
			return models.Failure(ve.Msg), nil
		}
		return models.Failure(ve.Error()), nil
	}
	if domain.IsNotFound(err) {
		msg := err.Error()
		return models.Failure(strings.ToUpper(msg[:1]) + msg[1:]), nil
	}
	return models.ActionResult{}, err
}

func (a RepositoryActions) CreatePackageBooking(ctx context.Context, form url.Values) (models.ActionResult, error) {
	p, err := parseParty(form)
	if err != nil {
		return models.Failure("Invalid booking payload"), nil
	}
	if msg := p.missing(); msg != "" {
		return models.Failure(msg), nil
	}
	packageID, _ := strconv.ParseInt(form.Get("packageId"), 10, 64)
	pkg, err := a.Catalog.GetPackage(ctx, packageID)
	if err != nil {
		return rejectOr(err)
	}
	total := p.adults + p.children + p.infants
	if pkg.Seats > 0 && total > pkg.Seats {
		return models.Failure(fmt.Sprintf("Only %d seats left on this package", pkg.Seats)), nil
	}
	dup, err := a.Bookings.HasPackageBooking(ctx, pkg.ID, p.email)
	if err != nil {
		return models.ActionResult{}, err
	}
	if dup {
		return models.Failure("Duplicate booking"), nil
	}
	extras, err := a.servicesTotal(ctx, p.services, total)
	if err != nil {
		return rejectOr(err)
	}
	rooms, _ := strconv.Atoi(form.Get("rooms"))

	b, err := a.Bookings.CreatePackageBooking(ctx, models.PackageBooking{
		Reference:     NewReference("PKG", a.now()),
		UserID:        p.userID,
		PackageID:     pkg.ID,
		PackageName:   pkg.Name,
		ContactName:   p.contactName,
		Email:         p.email,
		Phone:         p.phone,
		Adults:        p.adults,
		Children:      p.children,
		Infants:       p.infants,
		Rooms:         max(rooms, 1),
		Travelers:     p.travelers,
		PaymentMethod: form.Get("paymentMethod"),
		Services:      nonNil(p.services),
		Notes:         form.Get("notes"),
		TotalAmount:   utils.ComputePartyFare(pkg.Price, p.adults, p.children, p.infants) + extras,
		Status:        models.BookingPending,
		CreatedAt:     a.now(),
	})
	if err != nil {
		return models.ActionResult{}, err
	}
	utils.LogEvent(a.RequestID, "booking", "create_package", fmt.Sprintf("booking_id=%d ref=%s", b.ID, b.Reference))
	return models.Success(b), nil
}

func (a RepositoryActions) CreateHotelBooking(ctx context.Context, form url.Values) (models.ActionResult, error) {
	p, err := parseParty(form)
	if err != nil {
		return models.Failure("Invalid booking payload"), nil
	}
	if msg := p.missing(); msg != "" {
		return models.Failure(msg), nil
	}
	hotelID, _ := strconv.ParseInt(form.Get("hotelId"), 10, 64)
	hotel, err := a.Catalog.GetHotel(ctx, hotelID)
	if err != nil {
		return rejectOr(err)
	}
	checkIn, checkOut := form.Get("checkIn"), form.Get("checkOut")
	stay := models.HotelDraft{CheckIn: checkIn, CheckOut: checkOut}
	nights := stay.Nights()
	if nights <= 0 {
		return models.FieldFailure(map[string]string{"checkOut": "Check-out must be after check-in"}), nil
	}
	dup, err := a.Bookings.HasHotelBooking(ctx, hotel.ID, p.email, checkIn)
	if err != nil {
		return models.ActionResult{}, err
	}
	if dup {
		return models.Failure("Duplicate booking"), nil
	}
	extras, err := a.servicesTotal(ctx, p.services, p.adults+p.children+p.infants)
	if err != nil {
		return rejectOr(err)
	}
	rooms, _ := strconv.Atoi(form.Get("rooms"))
	rooms = max(rooms, 1)

	b, err := a.Bookings.CreateHotelBooking(ctx, models.HotelBooking{
		Reference:       NewReference("HTL", a.now()),
		UserID:          p.userID,
		HotelID:         hotel.ID,
		HotelName:       hotel.Name,
		ContactName:     p.contactName,
		Email:           p.email,
		Phone:           p.phone,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Rooms:           rooms,
		Adults:          p.adults,
		Children:        p.children,
		Infants:         p.infants,
		Travelers:       p.travelers,
		PaymentMethod:   form.Get("paymentMethod"),
		Services:        nonNil(p.services),
		SpecialRequests: form.Get("specialRequests"),
		TotalAmount:     utils.ComputeStayFare(hotel.PricePerNight, nights, rooms) + extras,
		Status:          models.BookingPending,
		CreatedAt:       a.now(),
	})
	if err != nil {
		return models.ActionResult{}, err
	}
	utils.LogEvent(a.RequestID, "booking", "create_hotel", fmt.Sprintf("booking_id=%d ref=%s", b.ID, b.Reference))
	return models.Success(b), nil
}

func (a RepositoryActions) CreateCustomUmrahRequest(ctx context.Context, form url.Values) (models.ActionResult, error) {
	p, err := parseParty(form)
	if err != nil {
		return models.Failure("Invalid request payload"), nil
	}
	if msg := p.missing(); msg != "" {
		return models.Failure(msg), nil
	}
	var hotels []models.HotelPreference
	if raw := form.Get("hotels"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &hotels); err != nil {
			return models.Failure("Invalid request payload"), nil
		}
	}
	if len(hotels) == 0 {
		return models.FieldFailure(map[string]string{"hotels": "Add at least one hotel stay"}), nil
	}
	budget, _ := strconv.ParseInt(form.Get("budget"), 10, 64)

	q, err := a.Bookings.CreateCustomRequest(ctx, models.CustomUmrahRequest{
		Reference:     NewReference("CUS", a.now()),
		UserID:        p.userID,
		ContactName:   p.contactName,
		Email:         p.email,
		Phone:         p.phone,
		DepartureCity: form.Get("departureCity"),
		DepartureDate: form.Get("departureDate"),
		ReturnDate:    form.Get("returnDate"),
		Hotels:        hotels,
		Adults:        p.adults,
		Children:      p.children,
		Infants:       p.infants,
		Travelers:     p.travelers,
		Services:      nonNil(p.services),
		Budget:        budget,
		Notes:         form.Get("notes"),
		Status:        models.BookingPending,
		CreatedAt:     a.now(),
	})
	if err != nil {
		return models.ActionResult{}, err
	}
	utils.LogEvent(a.RequestID, "booking", "create_custom", fmt.Sprintf("request_id=%d ref=%s", q.ID, q.Reference))
	return models.Success(q), nil
}
