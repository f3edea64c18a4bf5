package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAdminLoginIssuesAdminToken(t *testing.T) {
	auth, err := NewAdminAuth("s3cret", "jwt-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewAdminAuth: %v", err)
	}

	resp, err := auth.Login("s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.ExpiresIn != 3600 {
		t.Fatalf("expected 3600s expiry, got %d", resp.ExpiresIn)
	}

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("jwt-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		t.Fatalf("expected valid token, got %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["role"] != AdminRole {
		t.Fatalf("expected admin role, got %v", claims["role"])
	}
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	auth, err := NewAdminAuth("s3cret", "jwt-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewAdminAuth: %v", err)
	}
	if _, err := auth.Login("guess"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAdminLoginDisabledWithoutPassword(t *testing.T) {
	auth, err := NewAdminAuth("", "", 0)
	if err != nil {
		t.Fatalf("NewAdminAuth: %v", err)
	}
	if auth.Enabled() {
		t.Fatalf("expected login to be disabled")
	}
	if len(auth.Secret()) != 32 {
		t.Fatalf("expected generated secret, got %d bytes", len(auth.Secret()))
	}
	if _, err := auth.Login(""); !errors.Is(err, ErrAdminDisabled) {
		t.Fatalf("expected ErrAdminDisabled, got %v", err)
	}
}
