package handlers

import (
	"net/http"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type phoneLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.auth(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, res)
}

// POST /api/auth/login-phone
func (h *Handler) LoginPhone(c *gin.Context) {
	var req phoneLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.auth(c).LoginWithPhone(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, res)
}

// POST /api/auth/signup
func (h *Handler) Signup(c *gin.Context) {
	var req models.SignupInput
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.auth(c).Signup(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, res)
}

// POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := middleware.CurrentSession(c).Logout(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{"message": "logout berhasil"})
}

// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	u, err := middleware.CurrentSession(c).User(c.Request.Context())
	if err == nil && u == nil {
		err = domain.UnauthorizedError{Msg: "Missing token"}
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{"user": u})
}
