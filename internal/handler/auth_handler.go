package handler

import (
	"net/http"

	"shopfront/internal/middleware"
	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	users  service.UserService
	logger zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users service.UserService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		logger: logger.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	resp, err := h.users.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AdminLogin handles POST /api/auth/admin/login.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	resp, err := h.users.AdminLogin(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFrom(r)
	if token != "" {
		if err := h.users.Logout(r.Context(), token); err != nil {
			writeError(w, err, h.logger)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.UserFrom(r.Context()))
}

// ChangePassword handles POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req model.ChangePasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user := middleware.UserFrom(r.Context())
	if err := h.users.ChangePassword(r.Context(), user.ID, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

// RequestPasswordReset handles POST /api/auth/reset-password.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.users.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err, h.logger)
		return
	}
	// Always 200 regardless of whether the email exists.
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset requested"})
}

// ConfirmPasswordReset handles POST /api/auth/reset-password/confirm.
func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req model.ConfirmPasswordResetRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.users.ConfirmPasswordReset(r.Context(), &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password reset"})
}

// ListAddresses handles GET /api/auth/addresses.
func (h *AuthHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	addresses, err := h.users.ListAddresses(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if addresses == nil {
		addresses = []model.UserAddress{}
	}
	writeJSON(w, http.StatusOK, addresses)
}

// CreateAddress handles POST /api/auth/addresses.
func (h *AuthHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req model.AddressRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user := middleware.UserFrom(r.Context())
	addr, err := h.users.CreateAddress(r.Context(), user.ID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, addr)
}

// UpdateAddress handles PUT /api/auth/addresses/{id}.
func (h *AuthHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var req model.AddressRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user := middleware.UserFrom(r.Context())
	addr, err := h.users.UpdateAddress(r.Context(), user.ID, r.PathValue("id"), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

// DeleteAddress handles DELETE /api/auth/addresses/{id}.
func (h *AuthHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := h.users.DeleteAddress(r.Context(), user.ID, r.PathValue("id")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
