package handlers

import (
	"errors"
	"net/http"

	"travelportal/internal/domain"
	"travelportal/internal/http/middleware"
	"travelportal/internal/services"
	"travelportal/internal/storage"
	"travelportal/internal/utils"
	"travelportal/internal/wizard"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the {error} half of every response envelope.
type ErrorBody struct {
	Message []string          `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, fields map[string]string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      ErrorBody{Message: []string{message}, Code: code, Fields: fields},
		"request_id": middleware.GetRequestID(c),
	})
}

// respondErrorWithData keeps the {data} part so the client can re-render state.
func respondErrorWithData(c *gin.Context, status int, code, message string, fields map[string]string, data any) {
	c.JSON(status, gin.H{
		"data":       data,
		"error":      ErrorBody{Message: []string{message}, Code: code, Fields: fields},
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	var (
		stepErr   *wizard.StepError
		submitErr *services.SubmitError
		ve        domain.ValidationError
	)
	switch {
	case errors.As(err, &stepErr):
		respondError(c, http.StatusUnprocessableEntity, "step_invalid", stepErr.Errors.First(), stepErr.Errors)
	case errors.Is(err, wizard.ErrJumpNotAllowed), errors.Is(err, wizard.ErrStepOutOfRange):
		respondError(c, http.StatusUnprocessableEntity, "jump_not_allowed", err.Error(), nil)
	case errors.As(err, &submitErr):
		respondError(c, http.StatusUnprocessableEntity, "submit_rejected", submitErr.Message, nil)
	case isFieldErrors(err):
		fields, _ := domain.AsFieldErrors(err)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), fields)
	case errors.As(err, &ve):
		msg := ve.Msg
		if msg == "" {
			msg = ve.Error()
		}
		var fields map[string]string
		if ve.Field != "" {
			fields = map[string]string{ve.Field: msg}
		}
		respondError(c, http.StatusBadRequest, "validation_error", msg, fields)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		var ce domain.ConflictError
		errors.As(err, &ce)
		respondError(c, http.StatusConflict, "conflict", utils.FirstNonEmpty(ce.Msg, err.Error()), nil)
	case errors.Is(err, storage.ErrUpload):
		utils.LogError(middleware.GetRequestID(c), "http", "upload", err)
		respondError(c, http.StatusBadGateway, "upload_failed", "Upload failed, please try again", nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", "internal", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}

func isFieldErrors(err error) bool {
	_, ok := domain.AsFieldErrors(err)
	return ok
}
