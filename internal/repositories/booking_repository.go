package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "travelportal/internal/db"
	"travelportal/internal/domain/models"
)

// BookingRepository menyimpan booking paket, booking hotel dan permintaan umrah custom.
type BookingRepository struct {
	DB *sql.DB
}

func nullUser(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}

func (r BookingRepository) CreatePackageBooking(ctx context.Context, b models.PackageBooking) (models.PackageBooking, error) {
	travelers, err := intdb.JSONColumn(b.Travelers)
	if err != nil {
		return b, fmt.Errorf("encode travelers: %w", err)
	}
	services, err := intdb.JSONColumn(b.Services)
	if err != nil {
		return b, fmt.Errorf("encode services: %w", err)
	}
	res, err := dbOr(r.DB).ExecContext(ctx, `INSERT INTO package_bookings
		(reference, user_id, package_id, package_name, contact_name, email, phone, adults, children, infants,
		 rooms, traveler_details, payment_method, services, notes, total_amount, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Reference, nullUser(b.UserID), b.PackageID, b.PackageName, b.ContactName, b.Email, b.Phone,
		b.Adults, b.Children, b.Infants, b.Rooms, travelers, b.PaymentMethod, services,
		intdb.NullIfEmpty(b.Notes), b.TotalAmount, b.Status)
	if err != nil {
		return b, fmt.Errorf("insert package booking: %w", err)
	}
	b.ID, err = res.LastInsertId()
	return b, err
}

// HasPackageBooking reports an open booking for the same package and email.
func (r BookingRepository) HasPackageBooking(ctx context.Context, packageID int64, email string) (bool, error) {
	var n int
	err := dbOr(r.DB).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM package_bookings WHERE package_id=? AND email=? AND status<>'cancelled'`,
		packageID, strings.ToLower(strings.TrimSpace(email))).Scan(&n)
	return n > 0, err
}

func (r BookingRepository) GetPackageBooking(ctx context.Context, id int64) (models.PackageBooking, error) {
	var b models.PackageBooking
	var userID sql.NullInt64
	var travelers, services sql.NullString
	err := dbOr(r.DB).QueryRowContext(ctx, `SELECT id, reference, user_id, package_id, package_name,
		contact_name, email, phone, adults, children, infants, rooms, traveler_details, payment_method,
		services, COALESCE(notes, ''), total_amount, status, created_at
		FROM package_bookings WHERE id=? LIMIT 1`, id).Scan(
		&b.ID, &b.Reference, &userID, &b.PackageID, &b.PackageName, &b.ContactName, &b.Email, &b.Phone,
		&b.Adults, &b.Children, &b.Infants, &b.Rooms, &travelers, &b.PaymentMethod, &services,
		&b.Notes, &b.TotalAmount, &b.Status, &b.CreatedAt)
	if err != nil {
		return b, notFound("package booking", err)
	}
	b.UserID = userID.Int64
	if err := intdb.ScanJSON(travelers, &b.Travelers); err != nil {
		return b, fmt.Errorf("decode travelers: %w", err)
	}
	if err := intdb.ScanJSON(services, &b.Services); err != nil {
		return b, fmt.Errorf("decode services: %w", err)
	}
	return b, nil
}

func (r BookingRepository) CreateHotelBooking(ctx context.Context, b models.HotelBooking) (models.HotelBooking, error) {
	travelers, err := intdb.JSONColumn(b.Travelers)
	if err != nil {
		return b, fmt.Errorf("encode travelers: %w", err)
	}
	services, err := intdb.JSONColumn(b.Services)
	if err != nil {
		return b, fmt.Errorf("encode services: %w", err)
	}
	res, err := dbOr(r.DB).ExecContext(ctx, `INSERT INTO hotel_bookings
		(reference, user_id, hotel_id, hotel_name, contact_name, email, phone, check_in, check_out, rooms,
		 adults, children, infants, traveler_details, payment_method, services, special_requests, total_amount, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Reference, nullUser(b.UserID), b.HotelID, b.HotelName, b.ContactName, b.Email, b.Phone,
		b.CheckIn, b.CheckOut, b.Rooms, b.Adults, b.Children, b.Infants, travelers, b.PaymentMethod,
		services, intdb.NullIfEmpty(b.SpecialRequests), b.TotalAmount, b.Status)
	if err != nil {
		return b, fmt.Errorf("insert hotel booking: %w", err)
	}
	b.ID, err = res.LastInsertId()
	return b, err
}

// HasHotelBooking reports an open booking for the same hotel, email and check-in date.
func (r BookingRepository) HasHotelBooking(ctx context.Context, hotelID int64, email, checkIn string) (bool, error) {
	var n int
	err := dbOr(r.DB).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM hotel_bookings WHERE hotel_id=? AND email=? AND check_in=? AND status<>'cancelled'`,
		hotelID, strings.ToLower(strings.TrimSpace(email)), checkIn).Scan(&n)
	return n > 0, err
}

func (r BookingRepository) GetHotelBooking(ctx context.Context, id int64) (models.HotelBooking, error) {
	var b models.HotelBooking
	var userID sql.NullInt64
	var travelers, services sql.NullString
	err := dbOr(r.DB).QueryRowContext(ctx, `SELECT id, reference, user_id, hotel_id, hotel_name,
		contact_name, email, phone, DATE_FORMAT(check_in, '%Y-%m-%d'), DATE_FORMAT(check_out, '%Y-%m-%d'),
		rooms, adults, children, infants, traveler_details, payment_method, services,
		COALESCE(special_requests, ''), total_amount, status, created_at
		FROM hotel_bookings WHERE id=? LIMIT 1`, id).Scan(
		&b.ID, &b.Reference, &userID, &b.HotelID, &b.HotelName, &b.ContactName, &b.Email, &b.Phone,
		&b.CheckIn, &b.CheckOut, &b.Rooms, &b.Adults, &b.Children, &b.Infants, &travelers,
		&b.PaymentMethod, &services, &b.SpecialRequests, &b.TotalAmount, &b.Status, &b.CreatedAt)
	if err != nil {
		return b, notFound("hotel booking", err)
	}
	b.UserID = userID.Int64
	if err := intdb.ScanJSON(travelers, &b.Travelers); err != nil {
		return b, fmt.Errorf("decode travelers: %w", err)
	}
	if err := intdb.ScanJSON(services, &b.Services); err != nil {
		return b, fmt.Errorf("decode services: %w", err)
	}
	return b, nil
}

func (r BookingRepository) CreateCustomRequest(ctx context.Context, q models.CustomUmrahRequest) (models.CustomUmrahRequest, error) {
	hotels, err := intdb.JSONColumn(q.Hotels)
	if err != nil {
		return q, fmt.Errorf("encode hotels: %w", err)
	}
	travelers, err := intdb.JSONColumn(q.Travelers)
	if err != nil {
		return q, fmt.Errorf("encode travelers: %w", err)
	}
	services, err := intdb.JSONColumn(q.Services)
	if err != nil {
		return q, fmt.Errorf("encode services: %w", err)
	}
	res, err := dbOr(r.DB).ExecContext(ctx, `INSERT INTO custom_umrah_requests
		(reference, user_id, contact_name, email, phone, departure_city, departure_date, return_date, hotels,
		 adults, children, infants, traveler_details, services, budget, notes, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.Reference, nullUser(q.UserID), q.ContactName, q.Email, q.Phone, q.DepartureCity, q.DepartureDate,
		q.ReturnDate, hotels, q.Adults, q.Children, q.Infants, travelers, services, q.Budget,
		intdb.NullIfEmpty(q.Notes), q.Status)
	if err != nil {
		return q, fmt.Errorf("insert custom request: %w", err)
	}
	q.ID, err = res.LastInsertId()
	return q, err
}

func (r BookingRepository) GetCustomRequest(ctx context.Context, id int64) (models.CustomUmrahRequest, error) {
	var q models.CustomUmrahRequest
	var userID sql.NullInt64
	var hotels, travelers, services sql.NullString
	err := dbOr(r.DB).QueryRowContext(ctx, `SELECT id, reference, user_id, contact_name, email, phone,
		departure_city, DATE_FORMAT(departure_date, '%Y-%m-%d'), DATE_FORMAT(return_date, '%Y-%m-%d'),
		hotels, adults, children, infants, traveler_details, services, budget, COALESCE(notes, ''),
		status, created_at
		FROM custom_umrah_requests WHERE id=? LIMIT 1`, id).Scan(
		&q.ID, &q.Reference, &userID, &q.ContactName, &q.Email, &q.Phone, &q.DepartureCity,
		&q.DepartureDate, &q.ReturnDate, &hotels, &q.Adults, &q.Children, &q.Infants, &travelers,
		&services, &q.Budget, &q.Notes, &q.Status, &q.CreatedAt)
	if err != nil {
		return q, notFound("custom request", err)
	}
	q.UserID = userID.Int64
	for _, col := range []struct {
		raw sql.NullString
		dst any
	}{{hotels, &q.Hotels}, {travelers, &q.Travelers}, {services, &q.Services}} {
		if err := intdb.ScanJSON(col.raw, col.dst); err != nil {
			return q, fmt.Errorf("decode custom request: %w", err)
		}
	}
	return q, nil
}
