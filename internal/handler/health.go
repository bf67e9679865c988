package handler

import (
	"net/http"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/infra"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	pool *pgxpool.Pool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := infra.HealthCheck(r.Context(), h.pool); err != nil {
		RespondError(w, r, domain.ErrInternal("database unreachable", err))
		return
	}
	Respond(w, http.StatusOK, map[string]string{"status": "ok"})
}
