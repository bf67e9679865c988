package handler

import (
	"net"
	"net/http"
	"strings"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/internal/service"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	result, err := h.authSvc.Login(r.Context(), input, clientIP(r))
	if err != nil {
		RespondError(w, r, err)
		return
	}

	Respond(w, http.StatusOK, result)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, err := h.authSvc.Me(r.Context(), auth.SubjectIDFromContext(r.Context()))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, admin)
}

// Refresh handles POST /api/auth/refresh. The refresh-token middleware has
// already verified the token kind.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, err := h.authSvc.Refresh(r.Context(), auth.SubjectIDFromContext(r.Context()))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"token": token})
}

// ChangePassword handles POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var input service.ChangePasswordInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.authSvc.ChangePassword(r.Context(), auth.SubjectIDFromContext(r.Context()), input); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// clientIP returns the caller address for login attempt bookkeeping.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
