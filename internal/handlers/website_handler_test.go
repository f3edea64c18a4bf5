package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

func TestListWebsitesStatusFilter(t *testing.T) {
	cases := []struct {
		query string
		want  []models.WebsiteStatus
	}{
		{"", []models.WebsiteStatus{models.WebsiteStatusActive}},
		{"?include_personal=true", []models.WebsiteStatus{models.WebsiteStatusActive, models.WebsiteStatusPersonal}},
		{"?include_personal=false", []models.WebsiteStatus{models.WebsiteStatusActive}},
	}
	for _, tc := range cases {
		repo := &mockWebsiteRepo{}
		h := NewWebsiteHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/websites"+tc.query, nil)
		w := httptest.NewRecorder()
		h.ListPublic(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%q: expected 200 got %d", tc.query, w.Code)
		}
		if w.Body.String() != "[]\n" {
			t.Fatalf("%q: expected empty array, got %q", tc.query, w.Body.String())
		}
		if len(repo.statuses) != len(tc.want) {
			t.Fatalf("%q: expected statuses %v got %v", tc.query, tc.want, repo.statuses)
		}
		for i := range tc.want {
			if repo.statuses[i] != tc.want[i] {
				t.Fatalf("%q: expected statuses %v got %v", tc.query, tc.want, repo.statuses)
			}
		}
	}
}

func TestListAllWebsitesHasNoStatusFilter(t *testing.T) {
	repo := &mockWebsiteRepo{statuses: []models.WebsiteStatus{"stale"}}
	h := NewWebsiteHandler(repo)

	w := httptest.NewRecorder()
	h.ListAll(w, httptest.NewRequest(http.MethodGet, "/admin/websites", nil))

	if w.Code != http.StatusOK || len(repo.statuses) != 0 {
		t.Fatalf("expected unfiltered listing, got %d %v", w.Code, repo.statuses)
	}
}

func TestDeleteWebsiteBlockedByReferences(t *testing.T) {
	repo := &mockWebsiteRepo{deleteErr: &interfaces.DeletionBlockedError{
		Resource:   "website",
		References: map[string]int64{"submissions": 3},
	}}
	h := NewWebsiteHandler(repo)
	r := chi.NewRouter()
	r.Delete("/websites/{id}", h.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/websites/5a0c8f3e-2f51-4a39-9a4c-2b1f0e8d6c11", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["error"] != "deletion_blocked" {
		t.Fatalf("expected deletion_blocked, got %v", resp)
	}
	refs, _ := resp["references"].(map[string]any)
	if refs["submissions"] != float64(3) {
		t.Fatalf("expected reference counts, got %v", resp["references"])
	}
}

func TestWebsiteHandlerRejectsBadInput(t *testing.T) {
	h := NewWebsiteHandler(&mockWebsiteRepo{})
	r := chi.NewRouter()
	r.Post("/websites", h.Create)
	r.Put("/websites/{id}", h.Update)

	cases := []struct {
		name, method, target, body string
	}{
		{"malformed json", http.MethodPost, "/websites", "{"},
		{"missing url", http.MethodPost, "/websites", `{"name":"Relay"}`},
		{"bad status", http.MethodPost, "/websites", `{"name":"Relay","url":"https://relay.example","status":"gone"}`},
		{"bad id", http.MethodPut, "/websites/abc", `{"name":"x"}`},
		{"empty update", http.MethodPut, "/websites/5a0c8f3e-2f51-4a39-9a4c-2b1f0e8d6c11", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, bytes.NewBufferString(tc.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
			}
			if resp := decodeBody(t, w); resp["error"] == nil {
				t.Fatalf("expected error field, got %v", resp)
			}
		})
	}
}

func TestCreateWebsiteInternalErrorIsJSON(t *testing.T) {
	h := NewWebsiteHandler(&mockWebsiteRepo{})

	req := httptest.NewRequest(http.MethodPost, "/websites", bytes.NewBufferString(`{"name":"Relay","url":"https://relay.example"}`))
	w := httptest.NewRecorder()
	h.Create(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", w.Code)
	}
	if resp := decodeBody(t, w); resp["error"] != "internal_error" {
		t.Fatalf("expected internal_error, got %v", resp)
	}
}
