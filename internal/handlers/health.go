package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Pinger checks that the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service and database health
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]any{
		"message": "Mountain Passes API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"submit_data":   "POST /submitData",
			"get_pass":      "GET /submitData/{id}",
			"update_pass":   "PATCH /submitData/{id}",
			"list_by_email": "GET /submitData/?user__email=<email>",
		},
	}, http.StatusOK)
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		respondJSON(w, map[string]any{
			"status":   "unhealthy",
			"database": "unreachable",
		}, http.StatusServiceUnavailable)
		return
	}

	respondJSON(w, map[string]any{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().Format(time.RFC3339),
	}, http.StatusOK)
}
