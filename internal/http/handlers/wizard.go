package handlers

import (
	"errors"
	"net/http"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/http/middleware"
	"travelportal/internal/services"
	"travelportal/internal/wizard"

	"github.com/gin-gonic/gin"
)

type createDraftRequest struct {
	Target models.Target `json:"target"`
}

type jumpRequest struct {
	Step int `json:"step"`
}

func flowKind(c *gin.Context) (models.DraftKind, bool) {
	kind, ok := models.ParseDraftKind(c.Param("flow"))
	if !ok {
		respondError(c, http.StatusNotFound, "unknown_flow", "wizard tidak dikenal: "+c.Param("flow"), nil)
	}
	return kind, ok
}

// respondDraft answers with the draft view, keeping it in the body on a blocked step.
func respondDraft(c *gin.Context, status int, v services.DraftView, err error) {
	if err == nil {
		RespondData(c, status, v)
		return
	}
	var se *wizard.StepError
	if errors.As(err, &se) && v.ID != "" {
		respondErrorWithData(c, http.StatusUnprocessableEntity, "step_invalid", se.Errors.First(), se.Errors, v)
		return
	}
	RespondDomainError(c, err)
}

// POST /api/wizard/:flow/drafts
func (h *Handler) CreateDraft(c *gin.Context) {
	kind, ok := flowKind(c)
	if !ok {
		return
	}
	var req createDraftRequest
	if c.Request.ContentLength > 0 && !BindJSONOrError(c, &req) {
		return
	}
	v, err := h.drafts(c).Create(c.Request.Context(), kind, middleware.CurrentUserID(c), req.Target)
	respondDraft(c, http.StatusCreated, v, err)
}

// GET /api/wizard/:flow/drafts/:id
func (h *Handler) GetDraft(c *gin.Context) {
	kind, ok := flowKind(c)
	if !ok {
		return
	}
	v, err := h.drafts(c).Get(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err == nil && v.Kind != kind {
		err = domain.NotFoundError{Resource: "draft"}
	}
	respondDraft(c, http.StatusOK, v, err)
}

// PATCH /api/wizard/:flow/drafts/:id
func (h *Handler) PatchDraft(c *gin.Context) {
	if _, ok := flowKind(c); !ok {
		return
	}
	var req services.DraftPatch
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := h.drafts(c).Patch(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), req)
	respondDraft(c, http.StatusOK, v, err)
}

// POST /api/wizard/:flow/drafts/:id/next
func (h *Handler) NextStep(c *gin.Context) {
	if _, ok := flowKind(c); !ok {
		return
	}
	v, err := h.drafts(c).Next(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	respondDraft(c, http.StatusOK, v, err)
}

// POST /api/wizard/:flow/drafts/:id/prev
func (h *Handler) PrevStep(c *gin.Context) {
	if _, ok := flowKind(c); !ok {
		return
	}
	v, err := h.drafts(c).Prev(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	respondDraft(c, http.StatusOK, v, err)
}

// POST /api/wizard/:flow/drafts/:id/jump
func (h *Handler) JumpStep(c *gin.Context) {
	if _, ok := flowKind(c); !ok {
		return
	}
	var req jumpRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := h.drafts(c).Jump(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), req.Step)
	respondDraft(c, http.StatusOK, v, err)
}

// POST /api/wizard/:flow/drafts/:id/submit
func (h *Handler) SubmitDraft(c *gin.Context) {
	if _, ok := flowKind(c); !ok {
		return
	}
	nav := &services.RedirectRecorder{}
	v, out, err := h.drafts(c).Submit(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), nav)
	if err != nil {
		var se *services.SubmitError
		if errors.As(err, &se) && v.ID != "" {
			respondErrorWithData(c, http.StatusUnprocessableEntity, "submit_rejected", se.Message, nil, v)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.Header("X-Redirect", nav.Target)
	RespondData(c, http.StatusOK, gin.H{
		"redirect": nav.Target,
		"result":   out.Data,
		"draft":    v,
	})
}

// DELETE /api/wizard/:flow/drafts/:id
func (h *Handler) DiscardDraft(c *gin.Context) {
	if _, ok := flowKind(c); !ok {
		return
	}
	if err := h.drafts(c).Discard(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
