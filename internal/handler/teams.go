package handler

import (
	"net/http"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TeamHandler handles team management.
type TeamHandler struct {
	pool    *pgxpool.Pool
	teams   repository.TeamRepository
	leagues repository.LeagueRepository
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(pool *pgxpool.Pool, teams repository.TeamRepository, leagues repository.LeagueRepository) *TeamHandler {
	return &TeamHandler{pool: pool, teams: teams, leagues: leagues}
}

// List handles GET /api/teams?league_id=.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	leagueID := QueryInt64(r, "league_id")

	teams, err := h.teams.List(r.Context(), h.pool, leagueID)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("list teams", err))
		return
	}
	Respond(w, http.StatusOK, teams)
}

// Get handles GET /api/teams/{id}.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	team, err := h.teams.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find team", err))
		return
	}
	if team == nil {
		RespondError(w, r, domain.ErrNotFound("Team", id))
		return
	}
	Respond(w, http.StatusOK, team)
}

// Popular handles GET /api/teams/popular.
func (h *TeamHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := QueryInt(r, "limit", 10)

	teams, err := h.teams.ListPopular(r.Context(), h.pool, limit)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("popular teams", err))
		return
	}
	Respond(w, http.StatusOK, teams)
}

type teamInput struct {
	Name       string `json:"name"`
	LeagueID   int64  `json:"league_id"`
	LogoURL    string `json:"logo_url"`
	Popularity int    `json:"popularity"`
}

// Create handles POST /api/teams.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input teamInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}
	if input.Name == "" {
		RespondError(w, r, domain.ErrValidation("name is required"))
		return
	}

	league, err := h.leagues.FindByID(r.Context(), h.pool, input.LeagueID)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find league", err))
		return
	}
	if league == nil {
		RespondError(w, r, domain.ErrNotFound("League", input.LeagueID))
		return
	}

	team := &domain.Team{
		Name:       input.Name,
		LeagueID:   input.LeagueID,
		LogoURL:    input.LogoURL,
		Popularity: input.Popularity,
	}
	if err := h.teams.Create(r.Context(), h.pool, team); err != nil {
		RespondError(w, r, domain.ErrInternal("create team", err))
		return
	}
	Respond(w, http.StatusCreated, team)
}

// Update handles PUT /api/teams/{id}.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	team, err := h.teams.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find team", err))
		return
	}
	if team == nil {
		RespondError(w, r, domain.ErrNotFound("Team", id))
		return
	}

	var input teamInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if input.Name != "" {
		team.Name = input.Name
	}
	if input.LeagueID != 0 && input.LeagueID != team.LeagueID {
		league, err := h.leagues.FindByID(r.Context(), h.pool, input.LeagueID)
		if err != nil {
			RespondError(w, r, domain.ErrInternal("find league", err))
			return
		}
		if league == nil {
			RespondError(w, r, domain.ErrNotFound("League", input.LeagueID))
			return
		}
		team.LeagueID = input.LeagueID
	}
	if input.LogoURL != "" {
		team.LogoURL = input.LogoURL
	}
	if input.Popularity != 0 {
		team.Popularity = input.Popularity
	}

	if err := h.teams.Update(r.Context(), h.pool, team); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, team)
}

// Delete handles DELETE /api/teams/{id}.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.teams.Delete(r.Context(), h.pool, id); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "Team deleted successfully"})
}
