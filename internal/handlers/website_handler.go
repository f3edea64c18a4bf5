package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type WebsiteHandler struct {
	repo      interfaces.WebsiteRepository
	validator *validator.Validate
}

func NewWebsiteHandler(repo interfaces.WebsiteRepository) *WebsiteHandler {
	return &WebsiteHandler{
		repo:      repo,
		validator: validator.New(),
	}
}

// ListPublic returns active websites, plus personal ones when
// include_personal is true.
// @Tags Websites
// @Summary List websites
// @Produce json
// @Param include_personal query bool false "Include personal websites"
// @Success 200 {array} models.Website
// @Router /api/v1/websites [get]
func (h *WebsiteHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	statuses := []models.WebsiteStatus{models.WebsiteStatusActive}
	if v := r.URL.Query().Get("include_personal"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "include_personal must be a boolean")
			return
		}
		if include {
			statuses = append(statuses, models.WebsiteStatusPersonal)
		}
	}
	h.list(w, r, statuses...)
}

// ListAll returns websites in every status.
func (h *WebsiteHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r)
}

func (h *WebsiteHandler) list(w http.ResponseWriter, r *http.Request, statuses ...models.WebsiteStatus) {
	websites, err := h.repo.List(r.Context(), statuses...)
	if err != nil {
		writeRepoError(w, err, "websites")
		return
	}
	if websites == nil {
		websites = []models.Website{}
	}
	writeJSON(w, http.StatusOK, websites)
}

// @Tags Websites
// @Summary Create a website
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param website body models.CreateWebsiteRequest true "Website"
// @Success 201 {object} models.Website
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/admin/websites [post]
func (h *WebsiteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWebsiteRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	website := &models.Website{Name: req.Name, URL: req.URL, Status: models.WebsiteStatusActive}
	if req.Status != "" {
		website.Status = models.WebsiteStatus(req.Status)
	}
	if err := h.repo.Create(r.Context(), website); err != nil {
		writeRepoError(w, err, "website")
		return
	}
	writeJSON(w, http.StatusCreated, website)
}

func (h *WebsiteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}
	website, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "website")
		return
	}
	writeJSON(w, http.StatusOK, website)
}

func (h *WebsiteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}

	var req models.UpdateWebsiteRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	if req.Name == nil && req.URL == nil && req.Status == nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "no fields to update")
		return
	}

	if err := h.repo.Update(r.Context(), id, &req); err != nil {
		writeRepoError(w, err, "website")
		return
	}
	website, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "website")
		return
	}
	writeJSON(w, http.StatusOK, website)
}

// Delete refuses while submissions still reference the website.
// @Tags Websites
// @Summary Delete a website
// @Security BearerAuth
// @Param id path string true "Website ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/admin/websites/{id} [delete]
func (h *WebsiteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "website")
		return
	}
	writeJSONMessage(w, http.StatusOK, "website deleted")
}
