package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// ClaimsFromContext extracts verified claims from the request context.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// SubjectIDFromContext returns the authenticated subject id, or 0 if the
// request carries no verified claims.
func SubjectIDFromContext(ctx context.Context) int64 {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return 0
	}
	id, err := claims.SubjectID()
	if err != nil {
		return 0
	}
	return id
}

// PermissionSource resolves an admin's effective permission set. Implemented
// by the repository access resolver.
type PermissionSource interface {
	EffectivePermissions(ctx context.Context, adminID int64) (PermissionSet, error)
}

// AdminSource reports whether an admin account still exists and is active.
// Checked on every admin request so a deactivated or deleted admin loses
// access immediately, not when the token expires.
type AdminSource interface {
	AdminStanding(ctx context.Context, adminID int64) (found bool, active bool, err error)
}

// RequireToken returns middleware for admin routes: it verifies an admin-realm
// access token and confirms the account is still present and active.
func RequireToken(codec *Codec, admins AdminSource) func(http.Handler) http.Handler {
	verify := requireRealm(codec, RealmAdmin, TokenAccess)
	return func(next http.Handler) http.Handler {
		return verify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			found, active, err := admins.AdminStanding(r.Context(), SubjectIDFromContext(r.Context()))
			if err != nil {
				writeAuthError(w, http.StatusInternalServerError, "Error resolving account")
				return
			}
			if !found {
				writeAuthError(w, http.StatusUnauthorized, "Invalid admin account")
				return
			}
			if !active {
				writeAuthError(w, http.StatusForbidden, "Account is deactivated")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// RequireRefreshToken gates the admin refresh endpoint: only admin-realm
// refresh tokens pass. The auth service re-checks the account on refresh.
func RequireRefreshToken(codec *Codec) func(http.Handler) http.Handler {
	return requireRealm(codec, RealmAdmin, TokenRefresh)
}

// RequireUserToken gates end-user routes: only user-realm access tokens pass.
func RequireUserToken(codec *Codec) func(http.Handler) http.Handler {
	return requireRealm(codec, RealmUser, TokenAccess)
}

// RequireUserRefreshToken gates the end-user refresh endpoint.
func RequireUserRefreshToken(codec *Codec) func(http.Handler) http.Handler {
	return requireRealm(codec, RealmUser, TokenRefresh)
}

func requireRealm(codec *Codec, realm Realm, kind TokenKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Missing authorization token")
				return
			}

			claims, err := codec.VerifyForRealm(token, realm, kind)
			if err != nil {
				switch {
				case errors.Is(err, ErrTokenExpired):
					writeAuthError(w, http.StatusUnauthorized, "Token has expired")
				case errors.Is(err, ErrTokenWrongKind):
					writeAuthError(w, http.StatusUnauthorized, "Token kind not valid for this endpoint")
				case errors.Is(err, ErrTokenWrongRealm):
					writeAuthError(w, http.StatusUnauthorized, "Token not valid for this endpoint")
				default:
					writeAuthError(w, http.StatusUnauthorized, "Invalid authentication token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission returns middleware that checks the authenticated admin's
// effective permission set for the given tag. Must run after RequireToken.
func RequirePermission(source PermissionSource, tag Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeAuthError(w, http.StatusUnauthorized, "Missing authorization token")
				return
			}

			adminID, err := claims.SubjectID()
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Invalid authentication token")
				return
			}

			perms, err := source.EffectivePermissions(r.Context(), adminID)
			if err != nil {
				writeAuthError(w, http.StatusInternalServerError, "Error resolving permissions")
				return
			}

			if !perms.Has(tag) {
				writeAuthError(w, http.StatusForbidden, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// writeAuthError emits the standard error envelope without depending on the
// handler package.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]any{"message": message, "details": nil},
	})
}
