package handler

import (
	"net/http"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/service"
)

// UserAuthHandler handles end-user authentication and profile endpoints.
type UserAuthHandler struct {
	userAuthSvc *service.UserAuthService
}

// NewUserAuthHandler creates a new UserAuthHandler.
func NewUserAuthHandler(userAuthSvc *service.UserAuthService) *UserAuthHandler {
	return &UserAuthHandler{userAuthSvc: userAuthSvc}
}

// Signup handles POST /api/user-auth/signup.
func (h *UserAuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	result, err := h.userAuthSvc.Signup(r.Context(), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusCreated, result)
}

// Login handles POST /api/user-auth/login.
func (h *UserAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.UserLoginInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	result, err := h.userAuthSvc.Login(r.Context(), input, clientIP(r))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, result)
}

// Refresh handles POST /api/user-auth/refresh.
func (h *UserAuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, err := h.userAuthSvc.Refresh(r.Context(), auth.SubjectIDFromContext(r.Context()))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"token": token})
}

// Profile handles GET /api/user-auth/me.
func (h *UserAuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.userAuthSvc.Profile(r.Context(), auth.SubjectIDFromContext(r.Context()))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/user-auth/me.
func (h *UserAuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateProfileInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.userAuthSvc.UpdateProfile(r.Context(), auth.SubjectIDFromContext(r.Context()), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, user)
}

// ChangePassword handles POST /api/user-auth/change-password.
func (h *UserAuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var input service.ChangePasswordInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.userAuthSvc.ChangePassword(r.Context(), auth.SubjectIDFromContext(r.Context()), input); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// UpdateFavorites handles PUT /api/user-auth/favorites.
func (h *UserAuthHandler) UpdateFavorites(w http.ResponseWriter, r *http.Request) {
	var fav domain.Favorites
	if err := DecodeJSON(r, &fav); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.userAuthSvc.UpdateFavorites(r.Context(), auth.SubjectIDFromContext(r.Context()), fav)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, user)
}
