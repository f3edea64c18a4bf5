package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"smsguide/internal/models"
	"smsguide/internal/ratelimit"
	"smsguide/internal/services"
)

// RateLimiter gates submission writes per client address.
type RateLimiter interface {
	Check(ctx context.Context, ip string) (ratelimit.Decision, error)
	FailOpen() bool
}

type SubmissionHandler struct {
	svc       *services.SubmissionService
	limiter   RateLimiter
	validator *validator.Validate
}

func NewSubmissionHandler(svc *services.SubmissionService, limiter RateLimiter) *SubmissionHandler {
	return &SubmissionHandler{
		svc:       svc,
		limiter:   limiter,
		validator: validator.New(),
	}
}

// ListLegacy returns the newest submissions with their joined dimensions.
// @Tags Submissions
// @Summary List recent submissions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/submissions [get]
func (h *SubmissionHandler) ListLegacy(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Recent(r.Context())
	if err != nil {
		writeRepoError(w, err, "submissions")
		return
	}
	if data == nil {
		data = []*models.Submission{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// List returns a filtered page of submissions, failures first.
// @Tags Submissions
// @Summary List submissions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param result query string false "success, failure or all"
// @Param search query string false "Case-insensitive search"
// @Param website query string false "Website name"
// @Param country query string false "Country name"
// @Param project query string false "Project name"
// @Success 200 {object} models.SubmissionPage
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/submissions [get]
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := parsePaginationParams(r, services.DefaultPageSize, services.MaxPageSize)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_pagination", "invalid pagination: "+err.Error())
		return
	}

	q := r.URL.Query()
	filter := models.SubmissionFilter{
		Result:  strings.TrimSpace(q.Get("result")),
		Search:  strings.TrimSpace(q.Get("search")),
		Website: strings.TrimSpace(q.Get("website")),
		Country: strings.TrimSpace(q.Get("country")),
		Project: strings.TrimSpace(q.Get("project")),
	}
	switch filter.Result {
	case "", "all", string(models.ResultSuccess), string(models.ResultFailure):
	default:
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "result must be success, failure or all")
		return
	}

	page, err := h.svc.List(r.Context(), p.page, p.pageSize, filter)
	if err != nil {
		writeRepoError(w, err, "submissions")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// @Tags Submissions
// @Summary Get a submission
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/submissions/{id} [get]
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}
	sub, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "submission")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// Create records a report after the per-address rate limit check.
// @Tags Submissions
// @Summary Create a submission
// @Accept json
// @Produce json
// @Param submission body models.CreateSubmissionRequest true "Submission"
// @Success 201 {object} services.CreateResult
// @Failure 400 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/submissions [post]
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubmissionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	ip := clientIP(r)
	if !h.checkLimit(w, r, ip) {
		return
	}

	res, err := h.svc.Create(r.Context(), &req, ip)
	if err != nil {
		if errors.Is(err, services.ErrInvalidResult) {
			writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		logrus.WithError(err).WithField("ip", ip).Error("failed to save submission")
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to save submission")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *SubmissionHandler) checkLimit(w http.ResponseWriter, r *http.Request, ip string) bool {
	d, err := h.limiter.Check(r.Context(), ip)
	if err != nil {
		entry := logrus.WithError(err).WithFields(logrus.Fields{"ip": ip, "failOpen": h.limiter.FailOpen()})
		if h.limiter.FailOpen() {
			entry.Warn("rate limit check failed, allowing submission")
			return true
		}
		entry.Error("rate limit check failed, rejecting submission")
		writeJSONErrorResponse(w, http.StatusServiceUnavailable, "rate_limit_unavailable", "submissions are temporarily unavailable")
		return false
	}
	if !d.Allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
		writeJSONErrorResponse(w, http.StatusTooManyRequests, "rate_limited", "too many submissions, please try again later")
		return false
	}
	return true
}

// @Tags Submissions
// @Summary Delete a submission
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/submissions/{id} [delete]
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "submission")
		return
	}
	writeJSONMessage(w, http.StatusOK, "submission deleted")
}

// Risk classifies a website, country and project combination. The data
// field is null when the combination has no reports.
// @Tags Submissions
// @Summary Risk assessment
// @Produce json
// @Param website_id query string true "Website ID"
// @Param country_id query string true "Country ID"
// @Param project_id query string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/risk [get]
func (h *SubmissionHandler) Risk(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	websiteID, countryID, projectID := q.Get("website_id"), q.Get("country_id"), q.Get("project_id")
	if !parseUUIDParam(w, websiteID, "website_id") ||
		!parseUUIDParam(w, countryID, "country_id") ||
		!parseUUIDParam(w, projectID, "project_id") {
		return
	}

	ra, err := h.svc.Risk(r.Context(), websiteID, countryID, projectID)
	if err != nil {
		writeRepoError(w, err, "risk assessment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": ra})
}
