package services

import (
	"context"
	"fmt"
	"strings"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/utils"
	"travelportal/internal/validation"
)

type PaymentStore interface {
	UpsertValidation(ctx context.Context, v models.PaymentValidation) error
	GetValidation(ctx context.Context, kind models.DraftKind, bookingID int64) (models.PaymentValidation, error)
	UpdateStatus(ctx context.Context, kind models.DraftKind, bookingID int64, status string) error
}

// PaymentService menangani validasi pembayaran oleh admin dan pembatalan booking.
type PaymentService struct {
	Payments  PaymentStore
	Bookings  BookingStore
	RequestID string
}

// ValidatePayment menyimpan payment_validations lalu menandai booking confirmed.
// Booking yang sudah dibatalkan atau sudah lunas ditolak sebagai conflict.
func (s PaymentService) ValidatePayment(ctx context.Context, kind models.DraftKind, id int64, in models.PaymentInput, admin domain.RequestContext) (models.PaymentValidation, error) {
	if id <= 0 {
		return models.PaymentValidation{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	b, err := loadBooking(ctx, s.Bookings, kind, id)
	if err != nil {
		return models.PaymentValidation{}, err
	}
	switch b.Status {
	case models.BookingCancelled:
		return models.PaymentValidation{}, domain.ConflictError{Resource: "booking", Msg: "Booking sudah dibatalkan"}
	case models.BookingConfirmed:
		return models.PaymentValidation{}, domain.ConflictError{Resource: "booking", Msg: "Pembayaran sudah divalidasi"}
	}

	in.Method = strings.TrimSpace(in.Method)
	c := validation.NewChecker()
	c.Required("paymentMethod", in.Method, "Metode pembayaran wajib diisi").
		Check(in.Amount > 0, "amount", "Jumlah pembayaran wajib diisi")
	if b.TotalAmount > 0 && in.Amount > 0 {
		c.Check(in.Amount >= b.TotalAmount, "amount", "Jumlah pembayaran kurang dari "+utils.FormatRupiah(b.TotalAmount))
	}
	if errs := c.Errors(); !errs.Empty() {
		return models.PaymentValidation{}, domain.FieldErrors(errs)
	}

	v := models.PaymentValidation{
		BookingKind: kind,
		BookingID:   id,
		Method:      in.Method,
		Amount:      in.Amount,
		ProofURL:    strings.TrimSpace(in.ProofURL),
		Notes:       strings.TrimSpace(in.Notes),
		ValidatedBy: int64(admin.UserID),
	}
	if err := s.Payments.UpsertValidation(ctx, v); err != nil {
		utils.LogError(s.RequestID, "payment", "validate", err)
		return v, domain.InternalError{Msg: "gagal menyimpan validasi pembayaran", Err: err}
	}
	if err := s.Payments.UpdateStatus(ctx, kind, id, models.BookingConfirmed); err != nil {
		utils.LogError(s.RequestID, "payment", "update_status", err)
		return v, err
	}
	utils.LogEvent(s.RequestID, "payment", "validate", fmt.Sprintf("kind=%s id=%d ref=%s amount=%d", kind, id, b.Reference, in.Amount))
	return s.Payments.GetValidation(ctx, kind, id)
}

// Cancel membatalkan booking yang belum lunas.
func (s PaymentService) Cancel(ctx context.Context, kind models.DraftKind, id int64) error {
	b, err := loadBooking(ctx, s.Bookings, kind, id)
	if err != nil {
		return err
	}
	switch b.Status {
	case models.BookingCancelled:
		return nil
	case models.BookingConfirmed:
		return domain.ConflictError{Resource: "booking", Msg: "Booking yang sudah lunas tidak bisa dibatalkan"}
	}
	if err := s.Payments.UpdateStatus(ctx, kind, id, models.BookingCancelled); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "payment", "cancel", fmt.Sprintf("kind=%s id=%d ref=%s", kind, id, b.Reference))
	return nil
}

func (s PaymentService) Validation(ctx context.Context, kind models.DraftKind, id int64) (models.PaymentValidation, error) {
	return s.Payments.GetValidation(ctx, kind, id)
}
