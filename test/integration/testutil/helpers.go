//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CreateAdmin inserts an admin account directly, optionally with a role
// carrying the given permission tags, and returns an access token and the
// admin id.
func (env *TestEnv) CreateAdmin(username, password string, perms ...string) (token string, adminID int64) {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		env.t.Fatalf("CreateAdmin: hash: %v", err)
	}

	err = env.Pool.QueryRow(ctx, `
		INSERT INTO admins (username, email, name, password_hash, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id`,
		username, username+"@test.com", username, string(hash)).Scan(&adminID)
	if err != nil {
		env.t.Fatalf("CreateAdmin: insert admin: %v", err)
	}

	if len(perms) > 0 {
		var roleID int64
		err = env.Pool.QueryRow(ctx, `
			INSERT INTO roles (name, description, permissions)
			VALUES ($1, '', $2)
			RETURNING id`,
			username+"-role", perms).Scan(&roleID)
		if err != nil {
			env.t.Fatalf("CreateAdmin: insert role: %v", err)
		}
		_, err = env.Pool.Exec(ctx,
			"INSERT INTO admin_roles (admin_id, role_id) VALUES ($1, $2)", adminID, roleID)
		if err != nil {
			env.t.Fatalf("CreateAdmin: assign role: %v", err)
		}
	}

	token, err = env.Codec.Issue(auth.RealmAdmin, adminID, auth.TokenAccess)
	if err != nil {
		env.t.Fatalf("CreateAdmin: issue token: %v", err)
	}
	return token, adminID
}

// LoginAdmin authenticates through the API and returns the access token.
func (env *TestEnv) LoginAdmin(username, password string) string {
	env.t.Helper()
	resp := env.POST("/api/auth/login", map[string]string{
		"username": username, "password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("LoginAdmin: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("LoginAdmin: decode: %v", err)
	}
	return result.Data.Token
}

// SignupUser registers an end user through the API and returns the token and id.
func (env *TestEnv) SignupUser(email, username, password string) (token string, userID int64) {
	env.t.Helper()
	resp := env.POST("/api/user-auth/signup", map[string]string{
		"email": email, "username": username, "full_name": username, "password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("SignupUser: expected 201, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				ID int64 `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("SignupUser: decode: %v", err)
	}
	return result.Data.Token, result.Data.User.ID
}

// SeedUser inserts an end-user row directly and returns its id.
func (env *TestEnv) SeedUser(email, username string) int64 {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := env.Pool.QueryRow(ctx, `
		INSERT INTO users (uuid, email, username, full_name, password_hash, registration_date, last_login, status)
		VALUES ($1, $2, $3, $3, 'x', now(), now(), 'active')
		RETURNING id`,
		uuid.New().String(), email, username).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedUser: %v", err)
	}
	return id
}

// SeedLeague inserts a league and returns its id.
func (env *TestEnv) SeedLeague(name string) int64 {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := env.Pool.QueryRow(ctx, `
		INSERT INTO leagues (name, category, enabled) VALUES ($1, 'Baseball', true)
		RETURNING id`, name).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedLeague: %v", err)
	}
	return id
}

// SeedTeam inserts a team and returns its id.
func (env *TestEnv) SeedTeam(leagueID int64, name string) int64 {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := env.Pool.QueryRow(ctx, `
		INSERT INTO teams (name, league_id) VALUES ($1, $2)
		RETURNING id`, name, leagueID).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedTeam: %v", err)
	}
	return id
}

// SeedPlayer inserts a player and returns its id.
func (env *TestEnv) SeedPlayer(teamID, leagueID int64, name string) int64 {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := env.Pool.QueryRow(ctx, `
		INSERT INTO players (name, team_id, league_id) VALUES ($1, $2, $3)
		RETURNING id`, name, teamID, leagueID).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedPlayer: %v", err)
	}
	return id
}

// SeedNotification inserts an unsent notification and returns its id.
func (env *TestEnv) SeedNotification(title, targetType string) int64 {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := env.Pool.QueryRow(ctx, `
		INSERT INTO notifications (title, message, target_type, sent)
		VALUES ($1, 'test message', $2, false)
		RETURNING id`, title, targetType).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedNotification: %v", err)
	}
	return id
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request(http.MethodPost, path, body, token)
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	return env.request(http.MethodGet, path, nil, token)
}

// AuthPOST performs an authenticated POST request.
func (env *TestEnv) AuthPOST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request(http.MethodPost, path, body, token)
}

// AuthPUT performs an authenticated PUT request.
func (env *TestEnv) AuthPUT(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request(http.MethodPut, path, body, token)
}

// AuthPATCH performs an authenticated PATCH request.
func (env *TestEnv) AuthPATCH(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request(http.MethodPatch, path, body, token)
}

// AuthDELETE performs an authenticated DELETE request.
func (env *TestEnv) AuthDELETE(path, token string) *http.Response {
	env.t.Helper()
	return env.request(http.MethodDelete, path, nil, token)
}

func (env *TestEnv) request(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// FailLogins performs n failed admin login attempts for the given username.
func (env *TestEnv) FailLogins(username string, n int) {
	env.t.Helper()
	for i := 0; i < n; i++ {
		resp := env.POST("/api/auth/login", map[string]string{
			"username": username, "password": fmt.Sprintf("wrong-%d", i),
		}, "")
		resp.Body.Close()
	}
}
