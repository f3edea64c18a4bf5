package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"smsguide/internal/models"
)

const (
	AdminRole       = "admin"
	DefaultAdminTTL = 2 * time.Hour
)

var (
	ErrAdminDisabled      = errors.New("admin login is not configured")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AdminAuth is a shared-password gate for the admin API. A correct password
// is exchanged for a short-lived HS256 token carrying role=admin.
type AdminAuth struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAdminAuth hashes password once. An empty password disables login. An
// empty secret is replaced by a random one, which invalidates tokens on
// restart.
func NewAdminAuth(password, secret string, ttl time.Duration) (*AdminAuth, error) {
	if ttl <= 0 {
		ttl = DefaultAdminTTL
	}
	a := &AdminAuth{ttl: ttl, now: time.Now}

	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		a.secret = buf
		logrus.Warn("JWT_SECRET not set, admin tokens will not survive a restart")
	} else {
		a.secret = []byte(secret)
	}

	if password == "" {
		logrus.Warn("ADMIN_PASSWORD not set, admin login disabled")
		return a, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	a.hash = hash
	return a, nil
}

func (a *AdminAuth) Enabled() bool { return len(a.hash) > 0 }

func (a *AdminAuth) Secret() []byte { return a.secret }

func (a *AdminAuth) Login(password string) (*models.AdminLoginResponse, error) {
	if !a.Enabled() {
		return nil, ErrAdminDisabled
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := a.now()
	exp := now.Add(a.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  AdminRole,
		"role": AdminRole,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign admin token: %w", err)
	}

	return &models.AdminLoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(a.ttl.Seconds()),
		ExpiresAt:   exp.UTC(),
	}, nil
}
