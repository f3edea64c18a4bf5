package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"smsguide/internal/config"
	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type healthResp struct {
	Status string `json:"status"`
	DB     struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	} `json:"db"`
}

func TestRootReturnsJSON(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := SetupRoutes(db, &config.Config{JWTSecret: "dev"}, &config.S3Config{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["message"] == "" {
		t.Fatalf("expected message, got %v", body)
	}
}

func TestHealthDBOK(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectPing()

	r := SetupRoutes(db, &config.Config{JWTSecret: "dev"}, &config.S3Config{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp healthResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.DB.Status != "ok" {
		t.Fatalf("expected db ok, got %+v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestHealthDBDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectPing().WillReturnError(sql.ErrConnDone)

	r := SetupRoutes(db, &config.Config{JWTSecret: "dev"}, &config.S3Config{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d (%s)", w.Code, w.Body.String())
	}
	var resp healthResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.DB.Status != "down" {
		t.Fatalf("expected db down, got %+v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPreflightAllowsAnyOrigin(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := SetupRoutes(db, &config.Config{JWTSecret: "dev"}, &config.S3Config{})
	req := httptest.NewRequest(http.MethodOptions, "/api/submissions", nil)
	req.Header.Set("Origin", "https://guide.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := SetupRoutes(db, &config.Config{JWTSecret: "dev"}, &config.S3Config{})

	for _, target := range []string{"/api/v1/admin/websites", "/api/v1/admin/ads-cache", "/api/v1/admin/link-replacements"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", target, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected login disabled without a password, got %d", w.Code)
	}
}

// deniedStore reports every address as over the limit.
type deniedStore struct{}

var _ interfaces.IPLogRepository = deniedStore{}

func (deniedStore) Get(ctx context.Context, ip string) (*models.IPLog, error) {
	return nil, sql.ErrConnDone
}
func (deniedStore) Insert(ctx context.Context, l *models.IPLog) (bool, error) { return false, nil }
func (deniedStore) CompareAndSwap(ctx context.Context, prev, next *models.IPLog) (bool, error) {
	return false, nil
}

func TestLegacySubmissionUsesInjectedStore(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := SetupRoutes(db, &config.Config{JWTSecret: "dev"}, &config.S3Config{}, WithIPLogStore(deniedStore{}))

	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(`{"result":"failure"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the limiter store fails, got %d (%s)", w.Code, w.Body.String())
	}
}

// fullStore reports every address as already at the cap and records which
// address the limiter asked about.
type fullStore struct {
	seen []string
}

func (s *fullStore) Get(ctx context.Context, ip string) (*models.IPLog, error) {
	s.seen = append(s.seen, ip)
	return &models.IPLog{IPAddress: ip, RequestCount: 10, LastRequestAt: time.Now()}, nil
}
func (s *fullStore) Insert(ctx context.Context, l *models.IPLog) (bool, error) { return false, nil }
func (s *fullStore) CompareAndSwap(ctx context.Context, prev, next *models.IPLog) (bool, error) {
	return false, nil
}

func TestRateLimitKeyHonoursProxyTrust(t *testing.T) {
	tests := []struct {
		name  string
		trust bool
		want  string
	}{
		{"headers ignored by default", false, "192.0.2.1"},
		{"headers trusted behind proxy", true, "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			defer db.Close()

			store := &fullStore{}
			cfg := &config.Config{JWTSecret: "dev", TrustProxyHeaders: tt.trust}
			r := SetupRoutes(db, cfg, &config.S3Config{}, WithIPLogStore(store))

			req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(`{"result":"failure"}`))
			req.RemoteAddr = "192.0.2.1:1234"
			req.Header.Set("X-Forwarded-For", "203.0.113.9")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusTooManyRequests {
				t.Fatalf("expected 429, got %d (%s)", w.Code, w.Body.String())
			}
			if len(store.seen) != 1 || store.seen[0] != tt.want {
				t.Fatalf("limiter keyed on %v, want %q", store.seen, tt.want)
			}
		})
	}
}
