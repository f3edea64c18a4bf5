package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smsguide/internal/services"
)

func TestAdminLogin(t *testing.T) {
	enabled, err := services.NewAdminAuth("s3cret", "dev", time.Hour)
	if err != nil {
		t.Fatalf("NewAdminAuth: %v", err)
	}
	disabled, err := services.NewAdminAuth("", "dev", time.Hour)
	if err != nil {
		t.Fatalf("NewAdminAuth: %v", err)
	}

	cases := []struct {
		name      string
		auth      *services.AdminAuth
		body      string
		wantCode  int
		wantError string
	}{
		{"disabled", disabled, `{"password":"anything"}`, http.StatusServiceUnavailable, "admin_disabled"},
		{"wrong password", enabled, `{"password":"guess"}`, http.StatusUnauthorized, "invalid_credentials"},
		{"missing password", enabled, `{}`, http.StatusBadRequest, "validation_error"},
		{"success", enabled, `{"password":"s3cret"}`, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(tc.auth)
			req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(tc.body))
			w := httptest.NewRecorder()
			h.Login(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("expected %d got %d (%s)", tc.wantCode, w.Code, w.Body.String())
			}
			resp := decodeBody(t, w)
			if tc.wantError != "" {
				if resp["error"] != tc.wantError {
					t.Fatalf("expected %s, got %v", tc.wantError, resp)
				}
				return
			}
			if token, _ := resp["access_token"].(string); token == "" {
				t.Fatalf("expected access_token, got %v", resp)
			}
			if resp["expires_in"] != float64(3600) {
				t.Fatalf("expected expires_in 3600, got %v", resp["expires_in"])
			}
		})
	}
}
