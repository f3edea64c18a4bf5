package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
	"smsguide/internal/services"
)

// LinkReplacementHandler manages rewrite rules. Every write invalidates the
// replacer's rule cache so listings pick up changes immediately.
type LinkReplacementHandler struct {
	repo      interfaces.LinkReplacementRepository
	replacer  *services.LinkReplacer
	validator *validator.Validate
}

func NewLinkReplacementHandler(repo interfaces.LinkReplacementRepository, replacer *services.LinkReplacer) *LinkReplacementHandler {
	return &LinkReplacementHandler{
		repo:      repo,
		replacer:  replacer,
		validator: validator.New(),
	}
}

// @Tags LinkReplacements
// @Summary List link replacement rules
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.LinkReplacement
// @Router /api/v1/admin/link-replacements [get]
func (h *LinkReplacementHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.repo.List(r.Context(), false)
	if err != nil {
		writeRepoError(w, err, "link replacements")
		return
	}
	if rules == nil {
		rules = []models.LinkReplacement{}
	}
	writeJSON(w, http.StatusOK, rules)
}

func (h *LinkReplacementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.LinkReplacementRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	rule := ruleFromRequest(&req)
	if err := h.repo.Create(r.Context(), rule); err != nil {
		writeRepoError(w, err, "link replacement")
		return
	}
	h.replacer.Invalidate()
	writeJSON(w, http.StatusCreated, rule)
}

func (h *LinkReplacementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}

	var req models.LinkReplacementRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	rule := ruleFromRequest(&req)
	if err := h.repo.Update(r.Context(), id, rule); err != nil {
		writeRepoError(w, err, "link replacement")
		return
	}
	h.replacer.Invalidate()
	rule.ID = id
	writeJSON(w, http.StatusOK, rule)
}

func (h *LinkReplacementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "link replacement")
		return
	}
	h.replacer.Invalidate()
	writeJSONMessage(w, http.StatusOK, "link replacement deleted")
}

func ruleFromRequest(req *models.LinkReplacementRequest) *models.LinkReplacement {
	rule := &models.LinkReplacement{
		OriginalURL:    strings.TrimSpace(req.OriginalURL),
		ReplacementURL: strings.TrimSpace(req.ReplacementURL),
		MatchType:      models.MatchType(req.MatchType),
		IsActive:       true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	return rule
}
