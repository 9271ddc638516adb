package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"cbmcli/internal/services"
)

// HealthHandler reports service liveness and dataset state
type HealthHandler struct {
	service *services.DataService
	logger  *slog.Logger
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.DataService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("component", "health_handler")),
		started: time.Now(),
	}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sources := h.service.Sources()

	rows := 0
	for _, src := range sources {
		rows += src.Rows
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  "healthy",
		"uptime":  time.Since(h.started).String(),
		"sources": len(sources),
		"rows":    rows,
	})
}
