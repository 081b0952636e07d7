package handlers

import (
	"database/sql"

	"travelportal/internal/http/middleware"
	"travelportal/internal/services"
	"travelportal/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler carries the services behind the HTTP surface. Each request works on
// copies stamped with its request ID.
type Handler struct {
	DB       *sql.DB
	Auth     services.AuthService
	Catalog  services.CatalogService
	Drafts   services.DraftService
	Avatars  services.AvatarService
	Docs     services.DocsService
	Payments services.PaymentService
	Uploader storage.Uploader
	Folders  storage.Folders
}

func (h *Handler) auth(c *gin.Context) services.AuthService {
	s := h.Auth
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handler) catalog(c *gin.Context) services.CatalogService {
	s := h.Catalog
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handler) drafts(c *gin.Context) services.DraftService {
	s := h.Drafts
	rid := middleware.GetRequestID(c)
	s.RequestID = rid
	s.Submitter.RequestID = rid
	if ra, ok := s.Submitter.Actions.(services.RepositoryActions); ok {
		ra.RequestID = rid
		s.Submitter.Actions = ra
	}
	return s
}

func (h *Handler) avatars(c *gin.Context) services.AvatarService {
	s := h.Avatars
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handler) docs(c *gin.Context) services.DocsService {
	s := h.Docs
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handler) payments(c *gin.Context) services.PaymentService {
	s := h.Payments
	s.RequestID = middleware.GetRequestID(c)
	return s
}
