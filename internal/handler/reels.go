package handler

import (
	"net/http"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReelHandler handles reel management.
type ReelHandler struct {
	pool    *pgxpool.Pool
	reels   repository.ReelRepository
	players repository.PlayerRepository
}

// NewReelHandler creates a new ReelHandler.
func NewReelHandler(pool *pgxpool.Pool, reels repository.ReelRepository, players repository.PlayerRepository) *ReelHandler {
	return &ReelHandler{pool: pool, reels: reels, players: players}
}

// List handles GET /api/reels?player_id=.
func (h *ReelHandler) List(w http.ResponseWriter, r *http.Request) {
	playerID := QueryInt64(r, "player_id")

	reels, err := h.reels.List(r.Context(), h.pool, playerID)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("list reels", err))
		return
	}
	Respond(w, http.StatusOK, reels)
}

// Get handles GET /api/reels/{id}.
func (h *ReelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	reel, err := h.reels.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find reel", err))
		return
	}
	if reel == nil {
		RespondError(w, r, domain.ErrNotFound("Reel", id))
		return
	}
	Respond(w, http.StatusOK, reel)
}

// Popular handles GET /api/reels/popular.
func (h *ReelHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := QueryInt(r, "limit", 10)

	reels, err := h.reels.ListPopular(r.Context(), h.pool, limit)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("popular reels", err))
		return
	}
	Respond(w, http.StatusOK, reels)
}

// Manage handles GET /api/reels/manage: reels joined with their player names
// for the management screen.
func (h *ReelHandler) Manage(w http.ResponseWriter, r *http.Request) {
	rows, err := h.pool.Query(r.Context(), `
		SELECT r.id, r.player_id, p.name, r.title, r.thumbnail_url, r.video_url,
		       r.duration, r.view_count, r.created_at
		FROM reels r
		JOIN players p ON p.id = r.player_id
		ORDER BY r.created_at DESC`)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("manage reels", err))
		return
	}
	defer rows.Close()

	type reelRow struct {
		ID           int64   `json:"id"`
		PlayerID     int64   `json:"player_id"`
		PlayerName   string  `json:"player_name"`
		Title        string  `json:"title"`
		ThumbnailURL string  `json:"thumbnail_url"`
		VideoURL     string  `json:"video_url"`
		Duration     float64 `json:"duration"`
		ViewCount    int64   `json:"view_count"`
		CreatedAt    string  `json:"created_at"`
	}

	var results []reelRow
	for rows.Next() {
		var rr reelRow
		if err := rows.Scan(&rr.ID, &rr.PlayerID, &rr.PlayerName, &rr.Title, &rr.ThumbnailURL,
			&rr.VideoURL, &rr.Duration, &rr.ViewCount, &rr.CreatedAt); err != nil {
			RespondError(w, r, domain.ErrInternal("scan reel", err))
			return
		}
		results = append(results, rr)
	}
	if err := rows.Err(); err != nil {
		RespondError(w, r, domain.ErrInternal("manage reels", err))
		return
	}
	Respond(w, http.StatusOK, results)
}

type reelInput struct {
	PlayerID     int64   `json:"player_id"`
	Title        string  `json:"title"`
	ThumbnailURL string  `json:"thumbnail_url"`
	VideoURL     string  `json:"video_url"`
	Duration     float64 `json:"duration"`
	ViewCount    int64   `json:"view_count"`
}

// Create handles POST /api/reels.
func (h *ReelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input reelInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}
	if input.Title == "" {
		RespondError(w, r, domain.ErrValidation("title is required"))
		return
	}
	if input.VideoURL == "" {
		RespondError(w, r, domain.ErrValidation("video_url is required"))
		return
	}

	player, err := h.players.FindByID(r.Context(), h.pool, input.PlayerID)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find player", err))
		return
	}
	if player == nil {
		RespondError(w, r, domain.ErrNotFound("Player", input.PlayerID))
		return
	}

	reel := &domain.Reel{
		PlayerID:     input.PlayerID,
		Title:        input.Title,
		ThumbnailURL: input.ThumbnailURL,
		VideoURL:     input.VideoURL,
		Duration:     input.Duration,
		ViewCount:    input.ViewCount,
	}
	if err := h.reels.Create(r.Context(), h.pool, reel); err != nil {
		RespondError(w, r, domain.ErrInternal("create reel", err))
		return
	}
	Respond(w, http.StatusCreated, reel)
}

// Update handles PUT /api/reels/{id}.
func (h *ReelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	reel, err := h.reels.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find reel", err))
		return
	}
	if reel == nil {
		RespondError(w, r, domain.ErrNotFound("Reel", id))
		return
	}

	var input reelInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if input.PlayerID != 0 && input.PlayerID != reel.PlayerID {
		player, err := h.players.FindByID(r.Context(), h.pool, input.PlayerID)
		if err != nil {
			RespondError(w, r, domain.ErrInternal("find player", err))
			return
		}
		if player == nil {
			RespondError(w, r, domain.ErrNotFound("Player", input.PlayerID))
			return
		}
		reel.PlayerID = input.PlayerID
	}
	if input.Title != "" {
		reel.Title = input.Title
	}
	if input.ThumbnailURL != "" {
		reel.ThumbnailURL = input.ThumbnailURL
	}
	if input.VideoURL != "" {
		reel.VideoURL = input.VideoURL
	}
	if input.Duration != 0 {
		reel.Duration = input.Duration
	}
	if input.ViewCount != 0 {
		reel.ViewCount = input.ViewCount
	}

	if err := h.reels.Update(r.Context(), h.pool, reel); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, reel)
}

// Delete handles DELETE /api/reels/{id}.
func (h *ReelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.reels.Delete(r.Context(), h.pool, id); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "Reel deleted successfully"})
}
