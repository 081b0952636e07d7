package handlers

import (
	"net/http"

	"travelportal/internal/domain/models"
	"travelportal/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:kind/:id/confirmation returns the booking confirmation (inline).
func (h *Handler) BookingConfirmationPDF(c *gin.Context) {
	kind, ok := models.ParseDraftKind(c.Param("kind"))
	if !ok {
		respondError(c, http.StatusNotFound, "unknown_kind", "jenis booking tidak dikenal", nil)
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	pdfBytes, filename, err := h.docs(c).Confirmation(c.Request.Context(), kind, id, middleware.CurrentRequest(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
