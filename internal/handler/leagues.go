package handler

import (
	"net/http"
	"time"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LeagueHandler handles league management.
type LeagueHandler struct {
	pool    *pgxpool.Pool
	leagues repository.LeagueRepository
}

// NewLeagueHandler creates a new LeagueHandler.
func NewLeagueHandler(pool *pgxpool.Pool, leagues repository.LeagueRepository) *LeagueHandler {
	return &LeagueHandler{pool: pool, leagues: leagues}
}

// List handles GET /api/leagues?category=&enabled_only=.
func (h *LeagueHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	enabledOnly := r.URL.Query().Get("enabled_only") == "true"

	leagues, err := h.leagues.List(r.Context(), h.pool, category, enabledOnly)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("list leagues", err))
		return
	}
	Respond(w, http.StatusOK, leagues)
}

// Get handles GET /api/leagues/{id}.
func (h *LeagueHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	league, err := h.leagues.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find league", err))
		return
	}
	if league == nil {
		RespondError(w, r, domain.ErrNotFound("League", id))
		return
	}
	Respond(w, http.StatusOK, league)
}

// Popular handles GET /api/leagues/popular.
func (h *LeagueHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := QueryInt(r, "limit", 10)

	leagues, err := h.leagues.ListPopular(r.Context(), h.pool, limit)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("popular leagues", err))
		return
	}
	Respond(w, http.StatusOK, leagues)
}

type leagueInput struct {
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Country      string     `json:"country"`
	LogoURL      string     `json:"logo_url"`
	Popularity   int        `json:"popularity"`
	FoundedDate  *time.Time `json:"founded_date"`
	Headquarters string     `json:"headquarters"`
	Commissioner string     `json:"commissioner"`
	Divisions    []string   `json:"divisions"`
	NumTeams     int        `json:"num_teams"`
	Enabled      *bool      `json:"enabled"`
}

// Create handles POST /api/leagues.
func (h *LeagueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input leagueInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}
	if input.Name == "" {
		RespondError(w, r, domain.ErrValidation("name is required"))
		return
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}
	league := &domain.League{
		Name:         input.Name,
		Category:     input.Category,
		Country:      input.Country,
		LogoURL:      input.LogoURL,
		Popularity:   input.Popularity,
		FoundedDate:  input.FoundedDate,
		Headquarters: input.Headquarters,
		Commissioner: input.Commissioner,
		Divisions:    orEmpty(input.Divisions),
		NumTeams:     input.NumTeams,
		Enabled:      enabled,
	}
	if err := h.leagues.Create(r.Context(), h.pool, league); err != nil {
		RespondError(w, r, domain.ErrInternal("create league", err))
		return
	}
	Respond(w, http.StatusCreated, league)
}

// Update handles PUT /api/leagues/{id}.
func (h *LeagueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	league, err := h.leagues.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find league", err))
		return
	}
	if league == nil {
		RespondError(w, r, domain.ErrNotFound("League", id))
		return
	}

	var input leagueInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if input.Name != "" {
		league.Name = input.Name
	}
	if input.Category != "" {
		league.Category = input.Category
	}
	if input.Country != "" {
		league.Country = input.Country
	}
	if input.LogoURL != "" {
		league.LogoURL = input.LogoURL
	}
	if input.Popularity != 0 {
		league.Popularity = input.Popularity
	}
	if input.FoundedDate != nil {
		league.FoundedDate = input.FoundedDate
	}
	if input.Headquarters != "" {
		league.Headquarters = input.Headquarters
	}
	if input.Commissioner != "" {
		league.Commissioner = input.Commissioner
	}
	if input.Divisions != nil {
		league.Divisions = input.Divisions
	}
	if input.NumTeams != 0 {
		league.NumTeams = input.NumTeams
	}
	if input.Enabled != nil {
		league.Enabled = *input.Enabled
	}

	if err := h.leagues.Update(r.Context(), h.pool, league); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, league)
}

// Toggle handles PUT /api/leagues/{id}/toggle.
func (h *LeagueHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	league, err := h.leagues.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find league", err))
		return
	}
	if league == nil {
		RespondError(w, r, domain.ErrNotFound("League", id))
		return
	}

	league.Enabled = !league.Enabled
	if err := h.leagues.SetEnabled(r.Context(), h.pool, id, league.Enabled); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, league)
}

// Delete handles DELETE /api/leagues/{id}.
func (h *LeagueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.leagues.Delete(r.Context(), h.pool, id); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "League deleted successfully"})
}
