package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type FailureReasonHandler struct {
	repo      interfaces.FailureReasonRepository
	validator *validator.Validate
}

func NewFailureReasonHandler(repo interfaces.FailureReasonRepository) *FailureReasonHandler {
	return &FailureReasonHandler{
		repo:      repo,
		validator: validator.New(),
	}
}

// List returns reasons ordered by category, then name.
// @Tags FailureReasons
// @Summary List failure reasons
// @Produce json
// @Success 200 {array} models.FailureReason
// @Router /api/v1/failure-reasons [get]
func (h *FailureReasonHandler) List(w http.ResponseWriter, r *http.Request) {
	reasons, err := h.repo.List(r.Context())
	if err != nil {
		writeRepoError(w, err, "failure reasons")
		return
	}
	if reasons == nil {
		reasons = []models.FailureReason{}
	}
	writeJSON(w, http.StatusOK, reasons)
}

func (h *FailureReasonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFailureReasonRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	reason := &models.FailureReason{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
	}
	if err := h.repo.Create(r.Context(), reason); err != nil {
		writeRepoError(w, err, "failure reason")
		return
	}
	writeJSON(w, http.StatusCreated, reason)
}

// Delete detaches the reason from existing submissions.
func (h *FailureReasonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "failure reason")
		return
	}
	writeJSONMessage(w, http.StatusOK, "failure reason deleted")
}
