package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
)

func TestDocsServiceConfirmation(t *testing.T) {
	store := &memBookings{}
	age := 40
	store.CreatePackageBooking(context.Background(), models.PackageBooking{
		Reference: "PKG-261014-ABC123", UserID: 7, PackageName: "Umrah Plus",
		ContactName: "Ahmad", Email: "ahmad@example.com", Adults: 1, Rooms: 1,
		Travelers:   models.TravelerDetails{Adults: []models.Traveler{{Name: "Ahmad", PassportNumber: "A1234567", Age: &age}}},
		TotalAmount: 30000000, Status: models.BookingPending, CreatedAt: time.Now(),
	})
	svc := DocsService{Bookings: store}

	pdf, filename, err := svc.Confirmation(context.Background(), models.KindPackage, 1, domain.RequestContext{UserID: 7})
	if err != nil {
		t.Fatalf("Confirmation returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "CONFIRMATION_PACKAGE_PKG-261014-ABC123.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}

	if _, _, err := svc.Confirmation(context.Background(), models.KindPackage, 1, domain.RequestContext{UserID: 8}); !domain.IsNotFound(err) {
		t.Fatalf("other user should get not found, got %v", err)
	}
	if _, _, err := svc.Confirmation(context.Background(), models.KindPackage, 1, domain.RequestContext{UserID: 1, Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("admin should see every booking: %v", err)
	}
}

func TestDocsServiceLoaderHook(t *testing.T) {
	loader := func(_ context.Context, kind models.DraftKind, id int64) (models.Confirmation, error) {
		return models.Confirmation{
			Kind:      kind,
			Reference: "CUS-261014-XYZ999",
			Title:     "Custom Umrah Request",
			Lines:     [][2]string{{"Berangkat dari", "Jakarta"}},
			CreatedAt: time.Now(),
		}, nil
	}

	pdf, filename, err := DocsService{Loader: loader}.Confirmation(context.Background(), models.KindCustom, 3, domain.RequestContext{})
	if err != nil {
		t.Fatalf("Confirmation returned error: %v", err)
	}
	if len(pdf) == 0 || !strings.HasPrefix(filename, "CONFIRMATION_CUSTOM_") {
		t.Fatalf("unexpected output %d bytes %q", len(pdf), filename)
	}
}

func TestDocsServiceUnknownKind(t *testing.T) {
	_, _, err := DocsService{Bookings: &memBookings{}}.Confirmation(context.Background(), "cruise", 1, domain.RequestContext{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
