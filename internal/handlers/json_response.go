package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"smsguide/internal/interfaces"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func writeJSONMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"message": message})
}

func writeJSONErrorResponse(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code, "message": message})
}

// writeRepoError maps repository errors onto status codes. Anything unknown
// is logged and reported as a 500 without leaking the cause.
func writeRepoError(w http.ResponseWriter, err error, resource string) {
	var blocked *interfaces.DeletionBlockedError
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", resource+" not found")
	case errors.Is(err, interfaces.ErrDuplicate):
		writeJSONErrorResponse(w, http.StatusConflict, "conflict", resource+" already exists")
	case errors.As(err, &blocked):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":      "deletion_blocked",
			"message":    blocked.Error(),
			"references": blocked.References,
		})
	default:
		logrus.WithError(err).WithField("resource", resource).Error("repository call failed")
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to process "+resource)
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return false
	}
	if err := v.Struct(dst); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return false
	}
	return true
}

func parseUUIDParam(w http.ResponseWriter, value, name string) bool {
	if _, err := uuid.Parse(value); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", name+" must be a valid UUID")
		return false
	}
	return true
}

func parseInt64Param(w http.ResponseWriter, value, name string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

type paginationParams struct {
	page     int
	pageSize int
	limit    int
	offset   int
}

// parsePaginationParams reads page and page_size. Missing values use the
// defaults; page_size above maxPageSize is clamped.
func parsePaginationParams(r *http.Request, defaultPageSize, maxPageSize int) (paginationParams, error) {
	p := paginationParams{page: 1, pageSize: defaultPageSize}

	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, fmt.Errorf("page must be a positive integer")
		}
		p.page = n
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, fmt.Errorf("page_size must be a positive integer")
		}
		p.pageSize = n
	}
	if p.pageSize > maxPageSize {
		p.pageSize = maxPageSize
	}

	p.limit = p.pageSize
	p.offset = (p.page - 1) * p.pageSize
	return p, nil
}

func writePaginatedResponse(w http.ResponseWriter, status int, data any, page, pageSize, total int) {
	writeJSON(w, status, map[string]any{
		"data":      data,
		"page":      page,
		"page_size": pageSize,
		"total":     total,
		"has_more":  (page-1)*pageSize+pageSize < total,
	})
}

// clientIP returns the caller address. When proxy headers are trusted, RealIP
// middleware has already folded X-Forwarded-For and X-Real-IP into RemoteAddr.
func clientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if addr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
