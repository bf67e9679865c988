package handler

import (
	"net/http"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardHandler aggregates overview data for the admin dashboard.
type DashboardHandler struct {
	pool    *pgxpool.Pool
	leagues repository.LeagueRepository
	teams   repository.TeamRepository
	players repository.PlayerRepository
	reels   repository.ReelRepository
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(pool *pgxpool.Pool, leagues repository.LeagueRepository, teams repository.TeamRepository, players repository.PlayerRepository, reels repository.ReelRepository) *DashboardHandler {
	return &DashboardHandler{pool: pool, leagues: leagues, teams: teams, players: players, reels: reels}
}

// Overview handles GET /api/dashboard: headline counts for every resource.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	var users, subscribers, leagues, teams, players, reels, notifications int
	err := h.pool.QueryRow(r.Context(), `
		SELECT (SELECT COUNT(*) FROM users),
		       (SELECT COUNT(*) FROM subscribers WHERE status = 'active'),
		       (SELECT COUNT(*) FROM leagues),
		       (SELECT COUNT(*) FROM teams),
		       (SELECT COUNT(*) FROM players),
		       (SELECT COUNT(*) FROM reels),
		       (SELECT COUNT(*) FROM notifications WHERE sent = false)`).
		Scan(&users, &subscribers, &leagues, &teams, &players, &reels, &notifications)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("dashboard overview", err))
		return
	}

	Respond(w, http.StatusOK, map[string]int{
		"users":                 users,
		"active_subscribers":    subscribers,
		"leagues":               leagues,
		"teams":                 teams,
		"players":               players,
		"reels":                 reels,
		"pending_notifications": notifications,
	})
}

// Subscribers handles GET /api/dashboard/subscribers: active counts by plan.
func (h *DashboardHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	var monthly, yearly int
	err := h.pool.QueryRow(r.Context(), `
		SELECT COUNT(*) FILTER (WHERE subscription_type = 'monthly'),
		       COUNT(*) FILTER (WHERE subscription_type = 'yearly')
		FROM subscribers WHERE status = 'active'`).Scan(&monthly, &yearly)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("dashboard subscribers", err))
		return
	}

	Respond(w, http.StatusOK, map[string]int{
		"monthly": monthly,
		"yearly":  yearly,
		"total":   monthly + yearly,
	})
}

// Users handles GET /api/dashboard/users: counts by account status.
func (h *DashboardHandler) Users(w http.ResponseWriter, r *http.Request) {
	var active, inactive, suspended int
	err := h.pool.QueryRow(r.Context(), `
		SELECT COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE status = 'inactive'),
		       COUNT(*) FILTER (WHERE status = 'suspended')
		FROM users`).Scan(&active, &inactive, &suspended)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("dashboard users", err))
		return
	}

	Respond(w, http.StatusOK, map[string]int{
		"active":    active,
		"inactive":  inactive,
		"suspended": suspended,
		"total":     active + inactive + suspended,
	})
}

// Popular handles GET /api/dashboard/popular: top leagues, teams, players and
// reels in one payload.
func (h *DashboardHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := QueryInt(r, "limit", 5)
	ctx := r.Context()

	leagues, err := h.leagues.ListPopular(ctx, h.pool, limit)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("popular leagues", err))
		return
	}
	teams, err := h.teams.ListPopular(ctx, h.pool, limit)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("popular teams", err))
		return
	}
	players, err := h.players.ListPopular(ctx, h.pool, limit)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("popular players", err))
		return
	}
	reels, err := h.reels.ListPopular(ctx, h.pool, limit)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("popular reels", err))
		return
	}

	Respond(w, http.StatusOK, map[string]interface{}{
		"leagues": leagues,
		"teams":   teams,
		"players": players,
		"reels":   reels,
	})
}

// ManageLeagues handles GET /api/dashboard/manage-leagues: every league with
// its team count for the management screen.
func (h *DashboardHandler) ManageLeagues(w http.ResponseWriter, r *http.Request) {
	rows, err := h.pool.Query(r.Context(), `
		SELECT l.id, l.name, l.category, l.enabled, l.popularity,
		       (SELECT COUNT(*) FROM teams WHERE league_id = l.id)
		FROM leagues l ORDER BY l.name`)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("manage leagues", err))
		return
	}
	defer rows.Close()

	type leagueRow struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		Category   string `json:"category"`
		Enabled    bool   `json:"enabled"`
		Popularity int    `json:"popularity"`
		TeamCount  int    `json:"team_count"`
	}

	var results []leagueRow
	for rows.Next() {
		var lr leagueRow
		if err := rows.Scan(&lr.ID, &lr.Name, &lr.Category, &lr.Enabled, &lr.Popularity, &lr.TeamCount); err != nil {
			RespondError(w, r, domain.ErrInternal("scan league", err))
			return
		}
		results = append(results, lr)
	}
	if err := rows.Err(); err != nil {
		RespondError(w, r, domain.ErrInternal("manage leagues", err))
		return
	}
	Respond(w, http.StatusOK, results)
}
