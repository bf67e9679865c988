package handler

import (
	"net/http"
	"time"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlayerHandler handles player management.
type PlayerHandler struct {
	pool    *pgxpool.Pool
	players repository.PlayerRepository
	teams   repository.TeamRepository
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(pool *pgxpool.Pool, players repository.PlayerRepository, teams repository.TeamRepository) *PlayerHandler {
	return &PlayerHandler{pool: pool, players: players, teams: teams}
}

// List handles GET /api/players?team_id=&league_id=.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	teamID := QueryInt64(r, "team_id")
	leagueID := QueryInt64(r, "league_id")

	players, err := h.players.List(r.Context(), h.pool, teamID, leagueID)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("list players", err))
		return
	}
	Respond(w, http.StatusOK, players)
}

// Get handles GET /api/players/{id}.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	player, err := h.players.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find player", err))
		return
	}
	if player == nil {
		RespondError(w, r, domain.ErrNotFound("Player", id))
		return
	}
	Respond(w, http.StatusOK, player)
}

// Popular handles GET /api/players/popular.
func (h *PlayerHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := QueryInt(r, "limit", 10)

	players, err := h.players.ListPopular(r.Context(), h.pool, limit)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("popular players", err))
		return
	}
	Respond(w, http.StatusOK, players)
}

type playerInput struct {
	Name         string     `json:"name"`
	TeamID       int64      `json:"team_id"`
	LeagueID     int64      `json:"league_id"`
	Position     string     `json:"position"`
	JerseyNumber string     `json:"jersey_number"`
	ProfileImage string     `json:"profile_image"`
	DOB          *time.Time `json:"dob"`
	College      string     `json:"college"`
	HeightWeight string     `json:"height_weight"`
	BatThrow     string     `json:"bat_throw"`
	Experience   string     `json:"experience"`
	Birthplace   string     `json:"birthplace"`
	Status       string     `json:"status"`
}

// Create handles POST /api/players.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input playerInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}
	if input.Name == "" {
		RespondError(w, r, domain.ErrValidation("name is required"))
		return
	}

	team, err := h.teams.FindByID(r.Context(), h.pool, input.TeamID)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find team", err))
		return
	}
	if team == nil {
		RespondError(w, r, domain.ErrNotFound("Team", input.TeamID))
		return
	}

	player := &domain.Player{
		Name:         input.Name,
		TeamID:       input.TeamID,
		LeagueID:     team.LeagueID,
		Position:     input.Position,
		JerseyNumber: input.JerseyNumber,
		ProfileImage: input.ProfileImage,
		DOB:          input.DOB,
		College:      input.College,
		HeightWeight: input.HeightWeight,
		BatThrow:     input.BatThrow,
		Experience:   input.Experience,
		Birthplace:   input.Birthplace,
		Status:       input.Status,
	}
	if err := h.players.Create(r.Context(), h.pool, player); err != nil {
		RespondError(w, r, domain.ErrInternal("create player", err))
		return
	}
	Respond(w, http.StatusCreated, player)
}

// Update handles PUT /api/players/{id}.
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	player, err := h.players.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find player", err))
		return
	}
	if player == nil {
		RespondError(w, r, domain.ErrNotFound("Player", id))
		return
	}

	var input playerInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if input.Name != "" {
		player.Name = input.Name
	}
	if input.TeamID != 0 && input.TeamID != player.TeamID {
		team, err := h.teams.FindByID(r.Context(), h.pool, input.TeamID)
		if err != nil {
			RespondError(w, r, domain.ErrInternal("find team", err))
			return
		}
		if team == nil {
			RespondError(w, r, domain.ErrNotFound("Team", input.TeamID))
			return
		}
		player.TeamID = input.TeamID
		player.LeagueID = team.LeagueID
	}
	if input.Position != "" {
		player.Position = input.Position
	}
	if input.JerseyNumber != "" {
		player.JerseyNumber = input.JerseyNumber
	}
	if input.ProfileImage != "" {
		player.ProfileImage = input.ProfileImage
	}
	if input.DOB != nil {
		player.DOB = input.DOB
	}
	if input.College != "" {
		player.College = input.College
	}
	if input.HeightWeight != "" {
		player.HeightWeight = input.HeightWeight
	}
	if input.BatThrow != "" {
		player.BatThrow = input.BatThrow
	}
	if input.Experience != "" {
		player.Experience = input.Experience
	}
	if input.Birthplace != "" {
		player.Birthplace = input.Birthplace
	}
	if input.Status != "" {
		player.Status = input.Status
	}

	if err := h.players.Update(r.Context(), h.pool, player); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, player)
}

// Delete handles DELETE /api/players/{id}.
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.players.Delete(r.Context(), h.pool, id); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "Player deleted successfully"})
}
