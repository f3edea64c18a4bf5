package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"smsguide/internal/adcache"
	"smsguide/internal/config"
	"smsguide/internal/models"
	"smsguide/internal/services"
)

const (
	maxAnnouncementLimit = 20
	maxImageSize         = 5 << 20
)

type AnnouncementHandler struct {
	svc           *services.AnnouncementService
	cache         *adcache.Cache
	s3Client      *s3.Client
	bucket        string
	publicBaseURL string
	validator     *validator.Validate
}

func NewAnnouncementHandler(svc *services.AnnouncementService, cache *adcache.Cache, s3Config *config.S3Config) *AnnouncementHandler {
	h := &AnnouncementHandler{
		svc:       svc,
		cache:     cache,
		validator: validator.New(),
	}
	if s3Config.Enabled() {
		h.s3Client = s3Config.Client
		h.bucket = s3Config.Bucket
		h.publicBaseURL = s3Config.PublicBaseURL
	}
	return h
}

// ListActive serves the visible announcements for a slot from the cache.
// @Tags Announcements
// @Summary List visible announcements
// @Produce json
// @Param position query string false "banner, sidebar, popup or notice"
// @Param limit query int false "Maximum announcements" default(3)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/announcements [get]
func (h *AnnouncementHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	position := r.URL.Query().Get("position")
	if position != "" && !validPosition(position) {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "position must be banner, sidebar, popup or notice")
		return
	}

	limit := adcache.DefaultMaxAds
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
			return
		}
		if n > maxAnnouncementLimit {
			n = maxAnnouncementLimit
		}
		limit = n
	}

	res, err := h.cache.Load(r.Context(), adcache.Options{Position: position, MaxAds: limit}, false)
	if err != nil {
		writeRepoError(w, err, "announcements")
		return
	}
	ads := res.Ads
	if ads == nil {
		ads = []*models.Announcement{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":        ads,
		"last_update": res.LastUpdate,
		"from_cache":  res.FromCache,
	})
}

func validPosition(p string) bool {
	for _, pos := range models.AnnouncementPositions {
		if string(pos) == p {
			return true
		}
	}
	return false
}

// @Tags Announcements
// @Summary Record an announcement view
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/announcements/{id}/view [post]
func (h *AnnouncementHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, ok := parseInt64Param(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}
	if err := h.svc.RecordView(r.Context(), id); err != nil {
		writeRepoError(w, err, "announcement")
		return
	}
	writeJSONMessage(w, http.StatusOK, "view recorded")
}

// @Tags Announcements
// @Summary Record an announcement click
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/announcements/{id}/click [post]
func (h *AnnouncementHandler) RecordClick(w http.ResponseWriter, r *http.Request) {
	id, ok := parseInt64Param(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}
	if err := h.svc.RecordClick(r.Context(), id); err != nil {
		writeRepoError(w, err, "announcement")
		return
	}
	writeJSONMessage(w, http.StatusOK, "click recorded")
}

// List returns every announcement, paginated.
// @Tags Announcements
// @Summary List all announcements
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/announcements [get]
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_pagination", "invalid pagination: "+err.Error())
		return
	}

	all, err := h.svc.List(r.Context())
	if err != nil {
		writeRepoError(w, err, "announcements")
		return
	}

	page := []*models.Announcement{}
	if p.offset < len(all) {
		end := p.offset + p.limit
		if end > len(all) {
			end = len(all)
		}
		page = all[p.offset:end]
	}
	writePaginatedResponse(w, http.StatusOK, page, p.page, p.pageSize, len(all))
}

func (h *AnnouncementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseInt64Param(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}
	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "announcement")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// @Tags Announcements
// @Summary Announcement statistics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AnnouncementStats
// @Router /api/v1/admin/announcements/stats [get]
func (h *AnnouncementHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeRepoError(w, err, "announcement stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// @Tags Announcements
// @Summary Create an announcement
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param announcement body models.AnnouncementRequest true "Announcement"
// @Success 201 {object} models.Announcement
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/admin/announcements [post]
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AnnouncementRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	a, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		h.writeWriteError(w, err)
		return
	}
	h.invalidate("create")
	writeJSON(w, http.StatusCreated, a)
}

func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseInt64Param(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	var req models.AnnouncementRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if _, err := h.svc.Update(r.Context(), id, &req); err != nil {
		h.writeWriteError(w, err)
		return
	}
	h.invalidate("update")

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "announcement")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseInt64Param(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "announcement")
		return
	}
	h.invalidate("delete")
	writeJSONMessage(w, http.StatusOK, "announcement deleted")
}

func (h *AnnouncementHandler) writeWriteError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrInvalidDateRange) {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	writeRepoError(w, err, "announcement")
}

func (h *AnnouncementHandler) invalidate(op string) {
	n := h.cache.ClearAll()
	logrus.WithFields(logrus.Fields{"op": op, "entries": n}).Debug("announcement written, cache invalidated")
}

// UploadImage stores one announcement image in S3 and returns its public URL.
// @Tags Announcements
// @Summary Upload an announcement image
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/admin/announcements/upload [post]
func (h *AnnouncementHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.s3Client == nil {
		writeJSONErrorResponse(w, http.StatusServiceUnavailable, "uploads_disabled", "image uploads are not configured")
		return
	}

	const maxMemory = 32 << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "failed to parse form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "image must be 5MB or smaller")
		return
	}
	contentType := imageContentType(header)
	if contentType == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "file must be a jpeg, png, gif or webp image")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "failed to read file")
		return
	}
	if len(data) > maxImageSize {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "image must be 5MB or smaller")
		return
	}

	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := path.Join("announcements", id+ext)
	if err := h.put(r.Context(), key, contentType, data); err != nil {
		logrus.WithError(err).WithField("key", key).Error("failed to upload announcement image")
		writeJSONErrorResponse(w, http.StatusBadGateway, "upload_failed", "failed to upload image")
		return
	}

	resp := map[string]any{
		"key": key,
		"url": h.publicBaseURL + "/" + key,
	}

	// The mobile variant is best-effort; the original is already stored.
	small, ok, err := mobileVariant(data, contentType)
	switch {
	case err != nil:
		logrus.WithError(err).WithField("key", key).Warn("mobile image variant skipped")
	case ok:
		mobileKey := path.Join("announcements", id+"-mobile"+ext)
		if err := h.put(r.Context(), mobileKey, contentType, small); err != nil {
			logrus.WithError(err).WithField("key", mobileKey).Warn("failed to upload mobile image variant")
		} else {
			resp["mobile_key"] = mobileKey
			resp["mobile_url"] = h.publicBaseURL + "/" + mobileKey
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *AnnouncementHandler) put(ctx context.Context, key, contentType string, data []byte) error {
	uploader := manager.NewUploader(h.s3Client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func imageContentType(header *multipart.FileHeader) string {
	switch ct := header.Header.Get("Content-Type"); ct {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return ct
	}
	return ""
}
