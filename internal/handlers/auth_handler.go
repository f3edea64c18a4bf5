package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"smsguide/internal/models"
	"smsguide/internal/services"
)

type AuthHandler struct {
	auth *services.AdminAuth
	v    *validator.Validate
}

func NewAuthHandler(auth *services.AdminAuth) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		v:    validator.New(),
	}
}

// Login exchanges the admin password for a bearer token.
// @Tags Admin
// @Summary Admin login
// @Accept json
// @Produce json
// @Param credentials body models.AdminLoginRequest true "Admin password"
// @Success 200 {object} models.AdminLoginResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Enabled() {
		writeJSONErrorResponse(w, http.StatusServiceUnavailable, "admin_disabled", "admin login is not configured")
		return
	}

	var req models.AdminLoginRequest
	if !decodeAndValidate(w, r, h.v, &req) {
		return
	}

	resp, err := h.auth.Login(req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		logrus.WithField("ip", clientIP(r)).Warn("failed admin login")
		writeJSONErrorResponse(w, http.StatusUnauthorized, "invalid_credentials", "invalid password")
		return
	case err != nil:
		logrus.WithError(err).Error("admin login failed")
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
