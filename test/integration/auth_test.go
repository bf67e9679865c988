//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Admin Login ────────────────────────────────────────────────────────────

func TestAdminLogin_Success(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateAdmin("loginok", "secret123")

	resp := env.POST("/api/auth/login", map[string]string{
		"username": "loginok", "password": "secret123",
	}, "")

	testutil.AssertStatus(t, resp, http.StatusOK)

	var result struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
		Admin        struct {
			Username string `json:"username"`
		} `json:"admin"`
	}
	testutil.DecodeData(t, resp, &result)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "loginok", result.Admin.Username)
}

func TestAdminLogin_ByEmail(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateAdmin("byemail", "secret123")

	resp := env.POST("/api/auth/login", map[string]string{
		"username": "byemail@test.com", "password": "secret123",
	}, "")
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusOK)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateAdmin("wrongpw", "secret123")

	resp := env.POST("/api/auth/login", map[string]string{
		"username": "wrongpw", "password": "nope",
	}, "")

	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	testutil.AssertErrorMessage(t, resp, "Invalid credentials")
}

func TestAdminLogin_UnknownUsername(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/api/auth/login", map[string]string{
		"username": "ghost", "password": "secret123",
	}, "")

	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	testutil.AssertErrorMessage(t, resp, "Invalid credentials")
}

func TestAdminLogin_EmptyCredentials(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/api/auth/login", map[string]string{
		"username": "", "password": "",
	}, "")
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusBadRequest)
}

func TestAdminLogin_InactiveAccount(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, adminID := env.CreateAdmin("inactive", "secret123")
	_, err := env.Pool.Exec(t.Context(),
		"UPDATE admins SET is_active = false WHERE id = $1", adminID)
	require.NoError(t, err)

	resp := env.POST("/api/auth/login", map[string]string{
		"username": "inactive", "password": "secret123",
	}, "")

	testutil.AssertStatus(t, resp, http.StatusForbidden)
	testutil.AssertErrorMessage(t, resp, "Account is inactive")
}

func TestAdminLogin_LockoutAfterFiveFailures(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateAdmin("lockme", "secret123")
	env.FailLogins("lockme", 5)

	// Even the correct password is refused while locked.
	resp := env.POST("/api/auth/login", map[string]string{
		"username": "lockme", "password": "secret123",
	}, "")
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusTooManyRequests)
}

func TestAdminLogin_FourFailuresDoesNotLock(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateAdmin("almostlocked", "secret123")
	env.FailLogins("almostlocked", 4)

	resp := env.POST("/api/auth/login", map[string]string{
		"username": "almostlocked", "password": "secret123",
	}, "")
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusOK)
}

func TestAdminLogin_RecordsAttempts(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateAdmin("audited", "secret123")
	env.FailLogins("audited", 2)
	env.LoginAdmin("audited", "secret123")

	var failed, succeeded int
	env.Pool.QueryRow(t.Context(),
		"SELECT COUNT(*) FILTER (WHERE NOT success), COUNT(*) FILTER (WHERE success) FROM login_attempts WHERE identity = 'audited'").
		Scan(&failed, &succeeded)
	assert.Equal(t, 2, failed)
	assert.Equal(t, 1, succeeded)
}

func TestAdminLogin_StampsLastLogin(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, adminID := env.CreateAdmin("stamped", "secret123")
	env.LoginAdmin("stamped", "secret123")

	var lastLogin *string
	env.Pool.QueryRow(t.Context(),
		"SELECT last_login::text FROM admins WHERE id = $1", adminID).Scan(&lastLogin)
	assert.NotNil(t, lastLogin)
}

// ─── Token Verification ─────────────────────────────────────────────────────

func TestMe_Success(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("whoami", "secret123")

	resp := env.AuthGET("/api/auth/me", token)

	testutil.AssertStatus(t, resp, http.StatusOK)

	var admin struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	testutil.DecodeData(t, resp, &admin)
	assert.Equal(t, "whoami", admin.Username)
	assert.Equal(t, "whoami@test.com", admin.Email)
}

func TestMe_NoToken(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/api/auth/me")
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestMe_GarbageToken(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.AuthGET("/api/auth/me", "not-a-jwt")
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestMe_TamperedToken(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("tampered", "secret123")

	// Flip a character in the signature segment.
	b := []byte(token)
	last := len(b) - 1
	if b[last] == 'a' {
		b[last] = 'b'
	} else {
		b[last] = 'a'
	}

	resp := env.AuthGET("/api/auth/me", string(b))
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestMe_RefreshTokenRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, adminID := env.CreateAdmin("kindcheck", "secret123")

	refresh, err := env.Codec.Issue(auth.RealmAdmin, adminID, auth.TokenRefresh)
	require.NoError(t, err)

	resp := env.AuthGET("/api/auth/me", refresh)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestMe_DeactivatedMidSession(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, adminID := env.CreateAdmin("benched", "secret123")

	resp := env.AuthGET("/api/auth/me", token)
	resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusOK)

	// Deactivation takes effect on the very next request, not at token expiry.
	_, err := env.Pool.Exec(t.Context(),
		"UPDATE admins SET is_active = false WHERE id = $1", adminID)
	require.NoError(t, err)

	resp = env.AuthGET("/api/auth/me", token)
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusForbidden)
	testutil.AssertErrorMessage(t, resp, "Account is deactivated")
}

func TestMe_DeletedMidSession(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, adminID := env.CreateAdmin("vanished", "secret123")

	_, err := env.Pool.Exec(t.Context(), "DELETE FROM admins WHERE id = $1", adminID)
	require.NoError(t, err)

	resp := env.AuthGET("/api/auth/me", token)
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	testutil.AssertErrorMessage(t, resp, "Invalid admin account")
}

func TestDeactivatedAdmin_LosesGatedAndAuthOnlyRoutes(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, adminID := env.CreateAdmin("demoted", "secret123", "ALL")

	_, err := env.Pool.Exec(t.Context(),
		"UPDATE admins SET is_active = false WHERE id = $1", adminID)
	require.NoError(t, err)

	// Auth-only reads and permission-gated writes both shut off.
	resp := env.AuthGET("/api/dashboard/overview", token)
	resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusForbidden)

	resp = env.AuthPOST("/api/leagues", map[string]string{"name": "Ghost League"}, token)
	resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusForbidden)
}

// ─── Refresh ────────────────────────────────────────────────────────────────

func TestRefresh_Success(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, adminID := env.CreateAdmin("refresher", "secret123")

	refresh, err := env.Codec.Issue(auth.RealmAdmin, adminID, auth.TokenRefresh)
	require.NoError(t, err)

	resp := env.POST("/api/auth/refresh", nil, refresh)

	testutil.AssertStatus(t, resp, http.StatusOK)

	var result struct {
		Token string `json:"token"`
	}
	testutil.DecodeData(t, resp, &result)
	assert.NotEmpty(t, result.Token)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("accessonly", "secret123")

	resp := env.POST("/api/auth/refresh", nil, token)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestRefresh_DeactivatedAdmin(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, adminID := env.CreateAdmin("refreshgone", "secret123")

	refresh, err := env.Codec.Issue(auth.RealmAdmin, adminID, auth.TokenRefresh)
	require.NoError(t, err)

	_, err = env.Pool.Exec(t.Context(),
		"UPDATE admins SET is_active = false WHERE id = $1", adminID)
	require.NoError(t, err)

	resp := env.POST("/api/auth/refresh", nil, refresh)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}

// ─── Change Password ────────────────────────────────────────────────────────

func TestChangePassword_Success(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("rotator", "secret123")

	resp := env.AuthPOST("/api/auth/change-password", map[string]string{
		"current_password": "secret123", "new_password": "evenbetter456",
	}, token)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusOK)

	// Old password no longer works, new one does.
	old := env.POST("/api/auth/login", map[string]string{
		"username": "rotator", "password": "secret123",
	}, "")
	old.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, old.StatusCode)

	env.LoginAdmin("rotator", "evenbetter456")
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("wrongcurrent", "secret123")

	resp := env.AuthPOST("/api/auth/change-password", map[string]string{
		"current_password": "nope", "new_password": "evenbetter456",
	}, token)

	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorMessage(t, resp, "Current password is incorrect")
}

// ─── Envelope Shape ─────────────────────────────────────────────────────────

func TestEnvelope_FailureShape(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/api/auth/me")
	defer resp.Body.Close()

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "false", string(body["success"]))
	assert.Contains(t, string(body["error"]), "message")
}
