package models

import "time"

// PaymentValidation records an admin confirming the payment of one booking.
type PaymentValidation struct {
	ID          int64     `json:"id"`
	BookingKind DraftKind `json:"bookingKind"`
	BookingID   int64     `json:"bookingId"`
	Method      string    `json:"paymentMethod"`
	Amount      int64     `json:"amount"`
	ProofURL    string    `json:"proofUrl,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	ValidatedBy int64     `json:"validatedBy"`
	ValidatedAt time.Time `json:"validatedAt"`
}

// PaymentInput is the admin form for validating a payment.
type PaymentInput struct {
	Method   string `json:"paymentMethod"`
	Amount   int64  `json:"amount"`
	ProofURL string `json:"proofUrl"`
	Notes    string `json:"notes"`
}
