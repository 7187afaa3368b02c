package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/services"
)

type AuthHandler struct {
	auth   *services.AuthService
	resets *services.PasswordResetService
	logger *zap.Logger
}

func NewAuthHandler(auth *services.AuthService, resets *services.PasswordResetService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, resets: resets, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: user, Message: "User registered successfully"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: resp, Message: "Login successful"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, _ := PrincipalFrom(r.Context())

	user, err := h.auth.Me(r.Context(), caller)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), claimsFrom(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ForgotPasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp, err := h.resets.ForgotPassword(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	body := envelope{Success: true, Message: resp.Message}
	if resp.Token != "" {
		body.Data = resp
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *AuthHandler) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	if _, err := h.resets.VerifyToken(r.Context(), chi.URLParam(r, "token")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Token is valid")
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ResetPasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.resets.ResetPassword(r.Context(), req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password has been reset successfully")
}
