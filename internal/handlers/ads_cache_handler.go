package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"smsguide/internal/adcache"
)

type AdsCacheHandler struct {
	cache *adcache.Cache
}

func NewAdsCacheHandler(cache *adcache.Cache) *AdsCacheHandler {
	return &AdsCacheHandler{cache: cache}
}

type preloadRequest struct {
	Positions []string `json:"positions"`
}

// Info reports cache statistics, plus the entry for one slot when position
// or limit is given.
// @Tags AdsCache
// @Summary Ads cache statistics
// @Security BearerAuth
// @Produce json
// @Param position query string false "Slot position"
// @Param limit query int false "Slot size" default(3)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/ads-cache [get]
func (h *AdsCacheHandler) Info(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"ttl_seconds": int(h.cache.TTL().Seconds()),
		"stats":       h.cache.Stats(),
	}

	q := r.URL.Query()
	if q.Has("position") || q.Has("limit") {
		opts := adcache.Options{Position: q.Get("position")}
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
				return
			}
			opts.MaxAds = n
		}
		resp["key"] = opts.Key()
		resp["entry"] = h.cache.Info(opts.Key())
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Tags AdsCache
// @Summary Clear the ads cache
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/ads-cache [delete]
func (h *AdsCacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	n := h.cache.ClearAll()
	writeJSON(w, http.StatusOK, map[string]any{"message": "ads cache cleared", "entries_cleared": n})
}

// Preload warms every slot size for the given positions. An empty body
// warms the default positions.
// @Tags AdsCache
// @Summary Preload the ads cache
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/ads-cache/preload [post]
func (h *AdsCacheHandler) Preload(w http.ResponseWriter, r *http.Request) {
	var req preloadRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid request body")
			return
		}
	}
	for _, p := range req.Positions {
		if p != "" && !validPosition(p) {
			writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "unknown position "+p)
			return
		}
	}

	results := h.cache.Preload(r.Context(), req.Positions)
	writeJSON(w, http.StatusOK, map[string]any{"data": results})
}
