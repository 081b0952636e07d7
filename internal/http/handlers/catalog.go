package handlers

import (
	"net/http"

	"travelportal/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/packages
func (h *Handler) ListPackages(c *gin.Context) {
	list, err := h.catalog(c).Packages(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, list)
}

// GET /api/packages/:id
func (h *Handler) GetPackage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog(c).Package(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, p)
}

// POST /api/packages (admin)
func (h *Handler) CreatePackage(c *gin.Context) {
	var req models.Package
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := h.catalog(c).CreatePackage(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, p)
}

// GET /api/hotels?city=Makkah
func (h *Handler) ListHotels(c *gin.Context) {
	list, err := h.catalog(c).Hotels(c.Request.Context(), c.Query("city"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, list)
}

// GET /api/hotels/:id
func (h *Handler) GetHotel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	hotel, err := h.catalog(c).Hotel(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, hotel)
}

// GET /api/form-options
func (h *Handler) FormOptions(c *gin.Context) {
	opts, err := h.catalog(c).FormOptions(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, opts)
}

// GET /api/additional-services
func (h *Handler) AdditionalServices(c *gin.Context) {
	list, err := h.catalog(c).AdditionalServices(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, list)
}
