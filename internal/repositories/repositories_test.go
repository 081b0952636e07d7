package repositories

import (
	"context"
	"testing"
	"time"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestUserCreateDuplicateIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Siti", "siti@example.com", "0812345678", "hash", domain.RoleCustomer).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err = UserRepository{DB: db}.Create(context.Background(),
		models.User{Name: "Siti", Email: " Siti@Example.com ", Phone: "0812345678"}, "hash")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserFindByEmailReturnsHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM users WHERE email=").
		WithArgs("siti@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "role", "avatar_url", "created_at", "password_hash"}).
			AddRow(7, "Siti", "siti@example.com", "", "customer", "", now, "$2a$hash"))
	mock.ExpectQuery("SELECT .* FROM users WHERE email=").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := UserRepository{DB: db}
	u, hash, err := repo.FindByEmail(context.Background(), "SITI@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.ID != 7 || hash != "$2a$hash" {
		t.Fatalf("unexpected user %+v hash %q", u, hash)
	}
	if _, _, err := repo.FindByEmail(context.Background(), "nobody@example.com"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFormOptionsGroupedByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT category, value, label FROM form_options").
		WillReturnRows(sqlmock.NewRows([]string{"category", "value", "label"}).
			AddRow("departure_city", "CGK", "Jakarta").
			AddRow("gender", "female", "Female").
			AddRow("nationality", "ID", "Indonesia").
			AddRow("payment_method", "bank_transfer", "Bank Transfer").
			AddRow("unknown", "x", "X"))

	opts, err := CatalogRepository{DB: db}.FormOptions(context.Background())
	if err != nil {
		t.Fatalf("form options: %v", err)
	}
	if len(opts.DepartureCities) != 1 || opts.DepartureCities[0].Label != "Jakarta" {
		t.Fatalf("departure cities: %+v", opts.DepartureCities)
	}
	if len(opts.Genders) != 1 || len(opts.Nationalities) != 1 || len(opts.PaymentMethods) != 1 {
		t.Fatalf("unexpected grouping: %+v", opts)
	}
}

func TestGetPackageNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM packages WHERE id=").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := (CatalogRepository{DB: db}).GetPackage(context.Background(), 99); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreatePackageBookingEncodesJSONColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	age := 30
	b := models.PackageBooking{
		Reference: "PKG-1", PackageID: 3, PackageName: "Umrah Plus", ContactName: "Ahmad",
		Email: "ahmad@example.com", Phone: "0812", Adults: 1, Rooms: 1,
		Travelers:     models.TravelerDetails{Adults: []models.Traveler{{Name: "Ahmad", Age: &age}}},
		PaymentMethod: "bank_transfer", TotalAmount: 35000000, Status: models.BookingPending,
	}
	mock.ExpectExec("INSERT INTO package_bookings").
		WithArgs("PKG-1", nil, int64(3), "Umrah Plus", "Ahmad", "ahmad@example.com", "0812",
			1, 0, 0, 1,
			`{"adults":[{"name":"Ahmad","gender":"","nationality":"","passportNumber":"","age":30}],"children":null,"infants":null}`,
			"bank_transfer", "[]", nil, int64(35000000), "pending").
		WillReturnResult(sqlmock.NewResult(12, 1))

	out, err := BookingRepository{DB: db}.CreatePackageBooking(context.Background(), b)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.ID != 12 {
		t.Fatalf("id=%d", out.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasHotelBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM hotel_bookings").
		WithArgs(int64(5), "guest@example.com", "2026-11-01").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	dup, err := BookingRepository{DB: db}.HasHotelBooking(context.Background(), 5, "Guest@example.com", "2026-11-01")
	if err != nil || !dup {
		t.Fatalf("dup=%v err=%v", dup, err)
	}
}

func TestMigrateRunsEveryStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	for range len(Schema) + len(Seed) {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentUpdateStatusMissingBookingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE hotel_bookings SET status").
		WithArgs(models.BookingConfirmed, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = PaymentRepository{DB: db}.UpdateStatus(context.Background(), models.KindHotel, 4, models.BookingConfirmed)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := (PaymentRepository{DB: db}).UpdateStatus(context.Background(), "cruise", 4, models.BookingConfirmed); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentUpsertValidation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO payment_validations").
		WithArgs(models.KindPackage, int64(1), "bank_transfer", int64(30000000), nil, "lunas", int64(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = PaymentRepository{DB: db}.UpsertValidation(context.Background(), models.PaymentValidation{
		BookingKind: models.KindPackage, BookingID: 1, Method: "bank_transfer", Amount: 30000000, Notes: "lunas", ValidatedBy: 2,
	})
	if err != nil {
		t.Fatalf("UpsertValidation returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
