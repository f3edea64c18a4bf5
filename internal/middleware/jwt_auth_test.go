package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func sign(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func serve(authHeader string) *httptest.ResponseRecorder {
	h := AdminAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Value(CtxRole) != adminRole {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAdminAuth(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	valid := sign(t, jwt.MapClaims{"sub": "admin", "role": "admin", "exp": exp}, testSecret)
	wrongRole := sign(t, jwt.MapClaims{"sub": "u1", "role": "user", "exp": exp}, testSecret)
	wrongKey := sign(t, jwt.MapClaims{"sub": "admin", "role": "admin", "exp": exp}, []byte("other"))
	expired := sign(t, jwt.MapClaims{"sub": "admin", "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret)
	noExp := sign(t, jwt.MapClaims{"sub": "admin", "role": "admin"}, testSecret)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusNoContent},
		{"lowercase scheme", "bearer " + valid, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"basic scheme", "Basic abc", http.StatusUnauthorized},
		{"wrong role", "Bearer " + wrongRole, http.StatusForbidden},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"no expiry", "Bearer " + noExp, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(tc.header)
			if w.Code != tc.want {
				t.Fatalf("expected %d got %d (%s)", tc.want, w.Code, w.Body.String())
			}
			if tc.want != http.StatusNoContent && w.Header().Get("Content-Type") != "application/json" {
				t.Fatalf("expected json error body")
			}
		})
	}
}
