package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "travelportal/internal/db"
	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func bookingTable(kind models.DraftKind) (string, error) {
	switch kind {
	case models.KindPackage:
		return "package_bookings", nil
	case models.KindHotel:
		return "hotel_bookings", nil
	case models.KindCustom:
		return "custom_umrah_requests", nil
	}
	return "", domain.ValidationError{Field: "kind", Msg: "jenis booking tidak dikenal"}
}

// UpsertValidation menyimpan validasi pembayaran; satu baris per booking.
func (r PaymentRepository) UpsertValidation(ctx context.Context, v models.PaymentValidation) error {
	_, err := dbOr(r.DB).ExecContext(ctx, `INSERT INTO payment_validations
		(booking_kind, booking_id, payment_method, amount, proof_url, notes, validated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE payment_method=VALUES(payment_method), amount=VALUES(amount),
		proof_url=VALUES(proof_url), notes=VALUES(notes), validated_by=VALUES(validated_by),
		validated_at=CURRENT_TIMESTAMP`,
		v.BookingKind, v.BookingID, v.Method, v.Amount,
		intdb.NullIfEmpty(v.ProofURL), intdb.NullIfEmpty(v.Notes), v.ValidatedBy)
	if err != nil {
		return fmt.Errorf("upsert payment validation: %w", err)
	}
	return nil
}

func (r PaymentRepository) GetValidation(ctx context.Context, kind models.DraftKind, bookingID int64) (models.PaymentValidation, error) {
	var v models.PaymentValidation
	err := dbOr(r.DB).QueryRowContext(ctx, `SELECT id, booking_kind, booking_id, payment_method, amount,
		COALESCE(proof_url, ''), COALESCE(notes, ''), validated_by, validated_at
		FROM payment_validations WHERE booking_kind=? AND booking_id=? LIMIT 1`, kind, bookingID).Scan(
		&v.ID, &v.BookingKind, &v.BookingID, &v.Method, &v.Amount, &v.ProofURL, &v.Notes, &v.ValidatedBy, &v.ValidatedAt)
	if err != nil {
		return v, notFound("payment validation", err)
	}
	return v, nil
}

// UpdateStatus mengubah status booking; booking yang tidak ada menjadi NotFound.
func (r PaymentRepository) UpdateStatus(ctx context.Context, kind models.DraftKind, bookingID int64, status string) error {
	table, err := bookingTable(kind)
	if err != nil {
		return err
	}
	res, err := dbOr(r.DB).ExecContext(ctx, `UPDATE `+table+` SET status=? WHERE id=?`, status, bookingID)
	if err != nil {
		return fmt.Errorf("update %s status: %w", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}
