package services

import (
	"context"
	"fmt"
	"strings"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/utils"
	"travelportal/internal/validation"
	"travelportal/internal/wizard"
)

// PackageWriter is the admin side of the catalog.
type PackageWriter interface {
	CreatePackage(ctx context.Context, p models.Package) (models.Package, error)
}

type CatalogService struct {
	Store     CatalogStore
	Writer    PackageWriter
	RequestID string
}

func (s CatalogService) Packages(ctx context.Context) ([]models.Package, error) {
	return s.Store.ListPackages(ctx)
}

func (s CatalogService) Package(ctx context.Context, id int64) (models.Package, error) {
	if id <= 0 {
		return models.Package{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	return s.Store.GetPackage(ctx, id)
}

func (s CatalogService) Hotels(ctx context.Context, city string) ([]models.Hotel, error) {
	return s.Store.ListHotels(ctx, strings.TrimSpace(city))
}

func (s CatalogService) Hotel(ctx context.Context, id int64) (models.Hotel, error) {
	if id <= 0 {
		return models.Hotel{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	return s.Store.GetHotel(ctx, id)
}

func (s CatalogService) FormOptions(ctx context.Context) (models.FormOptions, error) {
	return s.Store.FormOptions(ctx)
}

func (s CatalogService) AdditionalServices(ctx context.Context) ([]models.AdditionalService, error) {
	return s.Store.ListServices(ctx)
}

// WizardOptions loads the allowed select values used by the step validators.
func (s CatalogService) WizardOptions(ctx context.Context) (wizard.Options, error) {
	form, err := s.Store.FormOptions(ctx)
	if err != nil {
		return wizard.Options{}, fmt.Errorf("load form options: %w", err)
	}
	svc, err := s.Store.ListServices(ctx)
	if err != nil {
		return wizard.Options{}, fmt.Errorf("load services: %w", err)
	}
	return wizard.OptionsFromForm(form, svc), nil
}

func (s CatalogService) CreatePackage(ctx context.Context, p models.Package) (models.Package, error) {
	p.Name = utils.NormalizeSpace(p.Name)
	c := validation.NewChecker().
		Required("name", p.Name, "Name is required").
		Check(p.Price > 0, "price", "Price must be greater than zero").
		Check(p.Seats >= 0, "seats", "Seats cannot be negative").
		Check(p.DurationDays > 0, "durationDays", "Duration must be at least one day")
	if p.DepartureDate != "" {
		c.Date("departureDate", p.DepartureDate, "Departure date must be YYYY-MM-DD")
	}
	if errs := c.Errors(); !errs.Empty() {
		return models.Package{}, domain.FieldErrors(errs)
	}
	if p.Status == "" {
		p.Status = "active"
	}
	out, err := s.Writer.CreatePackage(ctx, p)
	if err != nil {
		return models.Package{}, err
	}
	utils.LogEvent(s.RequestID, "catalog", "create_package", fmt.Sprintf("package_id=%d", out.ID))
	return out, nil
}
