//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Permission Enforcement ─────────────────────────────────────────────────

func TestRBAC_NoRolesForbiddenEverywhere(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("norole", "secret123")

	writes := []struct {
		method, path string
	}{
		{"POST", "/api/leagues"},
		{"POST", "/api/users"},
		{"POST", "/api/reels"},
		{"POST", "/api/subscribers"},
		{"POST", "/api/content/faqs"},
		{"POST", "/api/notifications"},
		{"POST", "/api/roles"},
		{"POST", "/api/admins"},
	}

	for _, tt := range writes {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			resp := env.AuthPOST(tt.path, map[string]string{}, token)
			resp.Body.Close()
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestRBAC_ReadsOpenToAnyAdmin(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("readonly", "secret123")

	reads := []string{
		"/api/leagues",
		"/api/players",
		"/api/reels",
		"/api/users",
		"/api/dashboard",
		"/api/content/faqs",
	}

	for _, path := range reads {
		t.Run(path, func(t *testing.T) {
			resp := env.AuthGET(path, token)
			resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestRBAC_TeamsReadsGatedByLeagues(t *testing.T) {
	env := testutil.NewTestEnv(t)
	noPerm, _ := env.CreateAdmin("teamsnoperm", "secret123")
	withPerm, _ := env.CreateAdmin("teamsperm", "secret123", "LEAGUES")

	resp := env.AuthGET("/api/teams", noPerm)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.AuthGET("/api/teams", withPerm)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRBAC_MatchingTagAllows(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("leaguemgr", "secret123", "LEAGUES")

	resp := env.AuthPOST("/api/leagues", map[string]string{"name": "Test League"}, token)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusCreated)
}

func TestRBAC_NonMatchingTagForbidden(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("contentonly", "secret123", "CONTENT")

	resp := env.AuthPOST("/api/leagues", map[string]string{"name": "Nope League"}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRBAC_AllTagGrantsEverything(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("superuser", "secret123", "ALL")

	resp := env.AuthPOST("/api/leagues", map[string]string{"name": "Super League"}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.AuthPOST("/api/roles", map[string]interface{}{
		"name": "made-by-all", "permissions": []string{"CONTENT"},
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRBAC_UnionAcrossRoles(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, adminID := env.CreateAdmin("multirole", "secret123", "CONTENT")

	// Second role adds LEAGUES.
	var roleID int64
	env.Pool.QueryRow(t.Context(), `
		INSERT INTO roles (name, description, permissions)
		VALUES ('extra-leagues', '', '{LEAGUES}') RETURNING id`).Scan(&roleID)
	env.Pool.Exec(t.Context(),
		"INSERT INTO admin_roles (admin_id, role_id) VALUES ($1, $2)", adminID, roleID)

	resp := env.AuthPOST("/api/leagues", map[string]string{"name": "Union League"}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.AuthPOST("/api/content/faqs", map[string]string{
		"question": "Q?", "answer": "A.",
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRBAC_EndUserTokenRejectedOnAdminRoutes(t *testing.T) {
	env := testutil.NewTestEnv(t)
	userToken, _ := env.SignupUser("civilian@test.com", "civilian", "secret123")

	// An end-user token carries the user realm, so the admin gate rejects it
	// before any permission check.
	resp := env.AuthPOST("/api/leagues", map[string]string{"name": "Civilian League"}, userToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.AuthGET("/api/dashboard/overview", userToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRBAC_UserTokenWithCollidingAdminIDRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminToken, adminID := env.CreateAdmin("boss", "secret123", "ALL")

	// Admin and user ids live in separate sequences and can collide. A
	// user-realm token bearing the admin's own id must not clear any admin
	// gate, no matter what that admin is allowed to do.
	collided, err := env.Codec.Issue(auth.RealmUser, adminID, auth.TokenAccess)
	require.NoError(t, err)

	resp := env.AuthPOST("/api/roles", map[string]any{"name": "Escalated", "permissions": []string{"ALL"}}, collided)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.AuthGET("/api/auth/me", collided)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The real admin token still works.
	resp = env.AuthGET("/api/auth/me", adminToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
