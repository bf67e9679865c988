//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/gambit/admin-api/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Leagues ────────────────────────────────────────────────────────────────

func TestLeagues_CreateAndGet(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("leagueadmin", "secret123", "LEAGUES")

	create := env.AuthPOST("/api/leagues", map[string]interface{}{
		"name":      "National Hockey League",
		"category":  "Hockey",
		"divisions": []string{"East", "West"},
	}, token)
	testutil.AssertStatus(t, create, http.StatusCreated)

	var league struct {
		ID        int64    `json:"id"`
		Name      string   `json:"name"`
		Enabled   bool     `json:"enabled"`
		Divisions []string `json:"divisions"`
	}
	testutil.DecodeData(t, create, &league)
	assert.True(t, league.Enabled)
	assert.Equal(t, []string{"East", "West"}, league.Divisions)

	get := env.AuthGET("/api/leagues/"+itoa(league.ID), token)
	testutil.AssertStatus(t, get, http.StatusOK)

	var fetched struct {
		Name string `json:"name"`
	}
	testutil.DecodeData(t, get, &fetched)
	assert.Equal(t, "National Hockey League", fetched.Name)
}

func TestLeagues_Toggle(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("toggler", "secret123", "LEAGUES")
	id := env.SeedLeague("Toggle League")

	resp := env.AuthPUT("/api/leagues/"+itoa(id)+"/toggle", nil, token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var league struct {
		Enabled bool `json:"enabled"`
	}
	testutil.DecodeData(t, resp, &league)
	assert.False(t, league.Enabled)

	again := env.AuthPUT("/api/leagues/"+itoa(id)+"/toggle", nil, token)
	testutil.DecodeData(t, again, &league)
	assert.True(t, league.Enabled)
}

func TestLeagues_EnabledOnlyFilter(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("filterer", "secret123", "LEAGUES")
	env.SeedLeague("Visible League")
	disabled := env.SeedLeague("Hidden League")
	env.Pool.Exec(t.Context(), "UPDATE leagues SET enabled = false WHERE id = $1", disabled)

	resp := env.AuthGET("/api/leagues?enabled_only=true", token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var list []struct {
		Name string `json:"name"`
	}
	testutil.DecodeData(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Visible League", list[0].Name)
}

func TestLeagues_GetMissing(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("missing", "secret123")

	resp := env.AuthGET("/api/leagues/424242", token)

	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertErrorMessage(t, resp, "League with ID 424242 not found")
}

// ─── Teams ──────────────────────────────────────────────────────────────────

func TestTeams_CreateValidatesLeague(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("teamadmin", "secret123", "LEAGUES")

	resp := env.AuthPOST("/api/teams", map[string]interface{}{
		"name": "Orphan Team", "league_id": 999999,
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	leagueID := env.SeedLeague("Parent League")
	resp = env.AuthPOST("/api/teams", map[string]interface{}{
		"name": "Proper Team", "league_id": leagueID,
	}, token)
	testutil.AssertStatus(t, resp, http.StatusCreated)
}

func TestTeams_ListByLeague(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("teamlister", "secret123", "LEAGUES")

	l1 := env.SeedLeague("League One")
	l2 := env.SeedLeague("League Two")
	env.SeedTeam(l1, "Alpha")
	env.SeedTeam(l1, "Beta")
	env.SeedTeam(l2, "Gamma")

	resp := env.AuthGET("/api/teams?league_id="+itoa(l1), token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var list []struct {
		Name string `json:"name"`
	}
	testutil.DecodeData(t, resp, &list)
	assert.Len(t, list, 2)
}

// ─── Players ────────────────────────────────────────────────────────────────

func TestPlayers_CreateDerivesLeagueFromTeam(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("playeradmin", "secret123", "LEAGUES")

	leagueID := env.SeedLeague("Derive League")
	teamID := env.SeedTeam(leagueID, "Derive Team")

	resp := env.AuthPOST("/api/players", map[string]interface{}{
		"name": "Casey Jones", "team_id": teamID, "position": "Pitcher",
	}, token)
	testutil.AssertStatus(t, resp, http.StatusCreated)

	var player struct {
		ID       int64 `json:"id"`
		LeagueID int64 `json:"league_id"`
	}
	testutil.DecodeData(t, resp, &player)
	assert.Equal(t, leagueID, player.LeagueID)
}

func TestPlayers_ReadsOpenWritesGated(t *testing.T) {
	env := testutil.NewTestEnv(t)
	plain, _ := env.CreateAdmin("plainadmin", "secret123")

	resp := env.AuthGET("/api/players", plain)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.AuthPOST("/api/players", map[string]interface{}{
		"name": "Blocked Player", "team_id": 1,
	}, plain)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ─── Reels ──────────────────────────────────────────────────────────────────

func TestReels_CreateAndManage(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("reeladmin", "secret123", "REELS")

	leagueID := env.SeedLeague("Reel League")
	teamID := env.SeedTeam(leagueID, "Reel Team")
	playerID := env.SeedPlayer(teamID, leagueID, "Reel Star")

	create := env.AuthPOST("/api/reels", map[string]interface{}{
		"player_id": playerID,
		"title":     "Walk-off homer",
		"video_url": "https://cdn.test/reel.mp4",
	}, token)
	testutil.AssertStatus(t, create, http.StatusCreated)

	manage := env.AuthGET("/api/reels/manage", token)
	testutil.AssertStatus(t, manage, http.StatusOK)

	var rows []struct {
		Title      string `json:"title"`
		PlayerName string `json:"player_name"`
	}
	testutil.DecodeData(t, manage, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Reel Star", rows[0].PlayerName)
}

func TestReels_CreateRequiresExistingPlayer(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("reelorphan", "secret123", "REELS")

	resp := env.AuthPOST("/api/reels", map[string]interface{}{
		"player_id": 999999,
		"title":     "Ghost reel",
		"video_url": "https://cdn.test/ghost.mp4",
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ─── Subscribers ────────────────────────────────────────────────────────────

func TestSubscribers_CreateDefaultsEndDate(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("subadmin", "secret123", "SUBSCRIBERS")

	resp := env.AuthPOST("/api/subscribers", map[string]string{
		"email":             "member@test.com",
		"name":              "Member",
		"subscription_type": "monthly",
	}, token)
	testutil.AssertStatus(t, resp, http.StatusCreated)

	var sub struct {
		Status    string `json:"status"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	testutil.DecodeData(t, resp, &sub)
	assert.Equal(t, "active", sub.Status)
	assert.NotEmpty(t, sub.EndDate)
}

func TestSubscribers_DuplicateEmail(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("subdupe", "secret123", "SUBSCRIBERS")

	first := env.AuthPOST("/api/subscribers", map[string]string{
		"email": "dupe@test.com", "subscription_type": "yearly",
	}, token)
	first.Body.Close()

	resp := env.AuthPOST("/api/subscribers", map[string]string{
		"email": "dupe@test.com", "subscription_type": "monthly",
	}, token)

	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorMessage(t, resp, "Subscriber with this email already exists")
}

// ─── Content ────────────────────────────────────────────────────────────────

func TestContent_PageByType(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("pageadmin", "secret123", "CONTENT")

	create := env.AuthPOST("/api/content/pages", map[string]string{
		"page_type": "privacy",
		"title":     "Privacy Policy",
		"content":   "We collect nothing.",
	}, token)
	create.Body.Close()

	resp := env.AuthGET("/api/content/pages/type/privacy", token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var page struct {
		Title string `json:"title"`
	}
	testutil.DecodeData(t, resp, &page)
	assert.Equal(t, "Privacy Policy", page.Title)
}

func TestContent_DuplicatePageType(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("pagedupe", "secret123", "CONTENT")

	first := env.AuthPOST("/api/content/pages", map[string]string{
		"page_type": "terms", "title": "Terms",
	}, token)
	first.Body.Close()

	resp := env.AuthPOST("/api/content/pages", map[string]string{
		"page_type": "terms", "title": "Terms again",
	}, token)

	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorMessage(t, resp, "Page with this type already exists")
}

func TestContent_FAQPublishedFilter(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("faqadmin", "secret123", "CONTENT")

	published := map[string]interface{}{"question": "Public?", "answer": "Yes."}
	resp := env.AuthPOST("/api/content/faqs", published, token)
	resp.Body.Close()

	hidden := map[string]interface{}{"question": "Secret?", "answer": "No.", "is_published": false}
	resp = env.AuthPOST("/api/content/faqs", hidden, token)
	resp.Body.Close()

	list := env.AuthGET("/api/content/faqs?published_only=true", token)
	testutil.AssertStatus(t, list, http.StatusOK)

	var faqs []struct {
		Question string `json:"question"`
	}
	testutil.DecodeData(t, list, &faqs)
	require.Len(t, faqs, 1)
	assert.Equal(t, "Public?", faqs[0].Question)
}

// ─── Dashboard ──────────────────────────────────────────────────────────────

func TestDashboard_Overview(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("dashviewer", "secret123")

	leagueID := env.SeedLeague("Dash League")
	teamID := env.SeedTeam(leagueID, "Dash Team")
	env.SeedPlayer(teamID, leagueID, "Dash Player")
	env.SeedNotification("Pending one", "all")

	resp := env.AuthGET("/api/dashboard", token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var overview struct {
		Leagues              int `json:"leagues"`
		Teams                int `json:"teams"`
		Players              int `json:"players"`
		PendingNotifications int `json:"pending_notifications"`
	}
	testutil.DecodeData(t, resp, &overview)
	assert.Equal(t, 1, overview.Leagues)
	assert.Equal(t, 1, overview.Teams)
	assert.Equal(t, 1, overview.Players)
	assert.Equal(t, 1, overview.PendingNotifications)
}

func TestDashboard_ManageLeagues(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("dashmanager", "secret123")

	leagueID := env.SeedLeague("Counted League")
	env.SeedTeam(leagueID, "Count One")
	env.SeedTeam(leagueID, "Count Two")

	resp := env.AuthGET("/api/dashboard/manage-leagues", token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var rows []struct {
		Name      string `json:"name"`
		TeamCount int    `json:"team_count"`
	}
	testutil.DecodeData(t, resp, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].TeamCount)
}
