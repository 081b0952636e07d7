package handlers

import (
	"net/http"

	"travelportal/internal/domain/models"
	"travelportal/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func bookingRef(c *gin.Context) (models.DraftKind, int64, bool) {
	kind, ok := models.ParseDraftKind(c.Param("kind"))
	if !ok {
		respondError(c, http.StatusNotFound, "unknown_kind", "jenis booking tidak dikenal", nil)
		return "", 0, false
	}
	id, ok := paramID(c, "id")
	return kind, id, ok
}

// POST /api/admin/bookings/:kind/:id/payment
func (h *Handler) ValidatePayment(c *gin.Context) {
	kind, id, ok := bookingRef(c)
	if !ok {
		return
	}
	var in models.PaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}
	v, err := h.payments(c).ValidatePayment(c.Request.Context(), kind, id, in, middleware.CurrentRequest(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, v)
}

// GET /api/admin/bookings/:kind/:id/payment
func (h *Handler) GetPayment(c *gin.Context) {
	kind, id, ok := bookingRef(c)
	if !ok {
		return
	}
	v, err := h.payments(c).Validation(c.Request.Context(), kind, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, v)
}

// POST /api/admin/bookings/:kind/:id/cancel
func (h *Handler) CancelBooking(c *gin.Context) {
	kind, id, ok := bookingRef(c)
	if !ok {
		return
	}
	if err := h.payments(c).Cancel(c.Request.Context(), kind, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{"status": models.BookingCancelled})
}
