package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type CountryHandler struct {
	repo      interfaces.CountryRepository
	validator *validator.Validate
}

func NewCountryHandler(repo interfaces.CountryRepository) *CountryHandler {
	return &CountryHandler{
		repo:      repo,
		validator: validator.New(),
	}
}

// @Tags Countries
// @Summary List countries
// @Produce json
// @Success 200 {array} models.Country
// @Router /api/v1/countries [get]
func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	countries, err := h.repo.List(r.Context())
	if err != nil {
		writeRepoError(w, err, "countries")
		return
	}
	if countries == nil {
		countries = []models.Country{}
	}
	writeJSON(w, http.StatusOK, countries)
}

func (h *CountryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCountryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	country := &models.Country{
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.ToLower(strings.TrimSpace(req.Code)),
		PhoneCode: strings.TrimSpace(req.PhoneCode),
	}
	if err := h.repo.Create(r.Context(), country); err != nil {
		writeRepoError(w, err, "country")
		return
	}
	writeJSON(w, http.StatusCreated, country)
}

func (h *CountryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}

	var req models.UpdateCountryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	if req.Name == nil && req.Code == nil && req.PhoneCode == nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "no fields to update")
		return
	}
	if req.Code != nil {
		code := strings.ToLower(strings.TrimSpace(*req.Code))
		req.Code = &code
	}

	if err := h.repo.Update(r.Context(), id, &req); err != nil {
		writeRepoError(w, err, "country")
		return
	}
	country, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "country")
		return
	}
	writeJSON(w, http.StatusOK, country)
}

func (h *CountryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "country")
		return
	}
	writeJSONMessage(w, http.StatusOK, "country deleted")
}
