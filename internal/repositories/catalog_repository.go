package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"travelportal/internal/domain/models"
)

// CatalogRepository membaca paket, hotel, layanan tambahan dan opsi form.
type CatalogRepository struct {
	DB *sql.DB
}

const packageColumns = `id, name, category, duration_days,
	COALESCE(DATE_FORMAT(departure_date, '%Y-%m-%d'), ''), COALESCE(departure_city, ''),
	COALESCE(airline, ''), COALESCE(makkah_hotel, ''), COALESCE(madinah_hotel, ''),
	price, seats, COALESCE(description, ''), COALESCE(image_url, ''), status`

func scanPackage(row interface{ Scan(...any) error }) (models.Package, error) {
	var p models.Package
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.DurationDays, &p.DepartureDate, &p.DepartureCity,
		&p.Airline, &p.MakkahHotel, &p.MadinahHotel, &p.Price, &p.Seats, &p.Description, &p.ImageURL, &p.Status)
	return p, err
}

// ListPackages returns active packages, soonest departure first.
func (r CatalogRepository) ListPackages(ctx context.Context) ([]models.Package, error) {
	rows, err := dbOr(r.DB).QueryContext(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE status='active' ORDER BY departure_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()
	out := []models.Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r CatalogRepository) GetPackage(ctx context.Context, id int64) (models.Package, error) {
	p, err := scanPackage(dbOr(r.DB).QueryRowContext(ctx, `SELECT `+packageColumns+` FROM packages WHERE id=? LIMIT 1`, id))
	return p, notFound("package", err)
}

func (r CatalogRepository) CreatePackage(ctx context.Context, p models.Package) (models.Package, error) {
	if p.Status == "" {
		p.Status = "active"
	}
	res, err := dbOr(r.DB).ExecContext(ctx, `INSERT INTO packages
		(name, category, duration_days, departure_date, departure_city, airline, makkah_hotel, madinah_hotel,
		 price, seats, description, image_url, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Category, p.DurationDays, nullDate(p.DepartureDate), p.DepartureCity, p.Airline,
		p.MakkahHotel, p.MadinahHotel, p.Price, p.Seats, p.Description, p.ImageURL, p.Status)
	if err != nil {
		return p, fmt.Errorf("insert package: %w", err)
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

const hotelColumns = `id, name, city, stars, price_per_night, COALESCE(address, ''),
	COALESCE(distance_to_haram, ''), COALESCE(description, ''), COALESCE(image_url, '')`

func scanHotel(row interface{ Scan(...any) error }) (models.Hotel, error) {
	var h models.Hotel
	err := row.Scan(&h.ID, &h.Name, &h.City, &h.Stars, &h.PricePerNight, &h.Address, &h.DistanceHaram, &h.Description, &h.ImageURL)
	return h, err
}

// ListHotels filters by city when city is not empty.
func (r CatalogRepository) ListHotels(ctx context.Context, city string) ([]models.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels`
	args := []any{}
	if c := strings.TrimSpace(city); c != "" {
		query += ` WHERE city=?`
		args = append(args, c)
	}
	query += ` ORDER BY stars DESC, name`
	rows, err := dbOr(r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()
	out := []models.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r CatalogRepository) GetHotel(ctx context.Context, id int64) (models.Hotel, error) {
	h, err := scanHotel(dbOr(r.DB).QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id=? LIMIT 1`, id))
	return h, notFound("hotel", err)
}

func (r CatalogRepository) ListServices(ctx context.Context) ([]models.AdditionalService, error) {
	rows, err := dbOr(r.DB).QueryContext(ctx,
		`SELECT id, code, name, price, COALESCE(description, '') FROM additional_services ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	out := []models.AdditionalService{}
	for rows.Next() {
		var s models.AdditionalService
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Price, &s.Description); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FormOptions groups form_options rows by category.
func (r CatalogRepository) FormOptions(ctx context.Context) (models.FormOptions, error) {
	out := models.FormOptions{
		Nationalities:   []models.Option{},
		PaymentMethods:  []models.Option{},
		DepartureCities: []models.Option{},
		Genders:         []models.Option{},
	}
	rows, err := dbOr(r.DB).QueryContext(ctx,
		`SELECT category, value, label FROM form_options ORDER BY category, sort_order, label`)
	if err != nil {
		return out, fmt.Errorf("list form options: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var o models.Option
		if err := rows.Scan(&cat, &o.Value, &o.Label); err != nil {
			return out, fmt.Errorf("scan form option: %w", err)
		}
		switch cat {
		case models.OptionNationality:
			out.Nationalities = append(out.Nationalities, o)
		case models.OptionPaymentMethod:
			out.PaymentMethods = append(out.PaymentMethods, o)
		case models.OptionDepartureCity:
			out.DepartureCities = append(out.DepartureCities, o)
		case models.OptionGender:
			out.Genders = append(out.Genders, o)
		}
	}
	return out, rows.Err()
}

func nullDate(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
