package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"travelportal/internal/domain"
	"travelportal/internal/services"
	"travelportal/internal/storage"
	"travelportal/internal/validation"
	"travelportal/internal/wizard"
)

func TestRespondDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"step", &wizard.StepError{Step: 2, Errors: validation.ErrorSet{"contact.email": "Email is required"}}, http.StatusUnprocessableEntity, "step_invalid", "Email is required"},
		{"jump", fmt.Errorf("%w: step 4 from step 2", wizard.ErrJumpNotAllowed), http.StatusUnprocessableEntity, "jump_not_allowed", ""},
		{"submit", &services.SubmitError{Message: "Duplicate booking"}, http.StatusUnprocessableEntity, "submit_rejected", "Duplicate booking"},
		{"fields", domain.FieldErrors{"email": "Email is required"}, http.StatusBadRequest, "validation_error", ""},
		{"validation", domain.ValidationError{Field: "id", Msg: "id tidak valid"}, http.StatusBadRequest, "validation_error", "id tidak valid"},
		{"unauthorized", domain.UnauthorizedError{Msg: "Missing token"}, http.StatusUnauthorized, "unauthorized", ""},
		{"not found", domain.NotFoundError{Resource: "draft"}, http.StatusNotFound, "not_found", ""},
		{"conflict", domain.ConflictError{Resource: "draft", Msg: "Submission already in progress"}, http.StatusConflict, "conflict", "Submission already in progress"},
		{"upload", fmt.Errorf("%w: 503", storage.ErrUpload), http.StatusBadGateway, "upload_failed", "Upload failed, please try again"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal_error", "terjadi kesalahan"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			RespondDomainError(c, tc.err)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			var body struct {
				Error ErrorBody `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tc.code {
				t.Fatalf("code = %q, want %q", body.Error.Code, tc.code)
			}
			if len(body.Error.Message) != 1 {
				t.Fatalf("message should hold one entry, got %v", body.Error.Message)
			}
			if tc.msg != "" && body.Error.Message[0] != tc.msg {
				t.Fatalf("message = %q, want %q", body.Error.Message[0], tc.msg)
			}
		})
	}
}
