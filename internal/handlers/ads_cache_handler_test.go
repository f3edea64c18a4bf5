package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"smsguide/internal/adcache"
	"smsguide/internal/services"
)

func TestAdsCachePreloadInfoAndClear(t *testing.T) {
	repo := &mockAnnouncementRepo{active: activeAds(4)}
	cache := adcache.New(services.NewAnnouncementService(repo).ActiveAnnouncements)
	h := NewAdsCacheHandler(cache)

	req := httptest.NewRequest(http.MethodPost, "/admin/ads-cache/preload", bytes.NewBufferString(`{"positions":["banner"]}`))
	w := httptest.NewRecorder()
	h.Preload(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if data, _ := decodeBody(t, w)["data"].([]any); len(data) != 1 {
		t.Fatalf("expected one preload result, got %v", data)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/ads-cache?position=banner&limit=5", nil)
	w = httptest.NewRecorder()
	h.Info(w, req)
	resp := decodeBody(t, w)
	if resp["key"] != "announcements-banner-5" {
		t.Fatalf("unexpected key %v", resp["key"])
	}
	entry, _ := resp["entry"].(map[string]any)
	if entry["has_cached"] != true || entry["size"] != float64(len(adcache.PreloadLimits)) {
		t.Fatalf("expected warmed entry, got %v", entry)
	}
	stats, _ := resp["stats"].(map[string]any)
	if stats["total_cached"] != float64(len(adcache.PreloadLimits)) {
		t.Fatalf("expected %d cached keys, got %v", len(adcache.PreloadLimits), stats)
	}

	req = httptest.NewRequest(http.MethodDelete, "/admin/ads-cache", nil)
	w = httptest.NewRecorder()
	h.Clear(w, req)
	if resp := decodeBody(t, w); resp["entries_cleared"] != float64(len(adcache.PreloadLimits)) {
		t.Fatalf("unexpected clear response %v", resp)
	}
	if cache.Stats().TotalCached != 0 {
		t.Fatalf("expected empty cache after clear")
	}
}

func TestAdsCachePreloadRejectsUnknownPosition(t *testing.T) {
	h := NewAdsCacheHandler(adcache.New(services.NewAnnouncementService(&mockAnnouncementRepo{}).ActiveAnnouncements))

	req := httptest.NewRequest(http.MethodPost, "/admin/ads-cache/preload", bytes.NewBufferString(`{"positions":["footer"]}`))
	w := httptest.NewRecorder()
	h.Preload(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
