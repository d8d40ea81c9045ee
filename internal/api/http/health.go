package http

import (
	"context"
	"net/http"
	"time"

	"github.com/compasshq/compass/server/internal/api/respond"
	"github.com/compasshq/compass/server/internal/oracle"
)

// Pinger is satisfied by *sql.DB. A nil pinger means the backing store has
// no external connection to check (in-memory).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service, storage, and AI backend health.
type HealthHandler struct {
	db     Pinger
	oracle oracle.Oracle
}

func NewHealthHandler(db Pinger, o oracle.Oracle) *HealthHandler {
	return &HealthHandler{db: db, oracle: o}
}

// CheckHealth GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "compass-assistant",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// CheckStorageHealth GET /api/health/db
func (h *HealthHandler) CheckStorageHealth(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy", "storage": "in-memory"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy", "storage": "database"})
}

// CheckAIHealth GET /api/health/ai
func (h *HealthHandler) CheckAIHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.oracle.Healthy(r.Context()); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy", "ai": "configured"})
}
