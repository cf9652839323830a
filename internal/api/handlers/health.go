package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
)

// Pinger checks a backing store. *sql.DB and the redis client adapter satisfy it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	checks map[string]Pinger
	mode   string
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler. checks names each store
// the readiness probe pings; demo mode has none.
func NewHealthHandler(checks map[string]Pinger, mode string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		mode:   mode,
		logger: log,
	}
}

// Healthz handles liveness probe
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /health [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz handles readiness probe
// @Summary Readiness probe
// @Description Check if the application is ready to serve requests
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{
		"status": "ready",
		"mode":   h.mode,
	}
	for name, p := range h.checks {
		if err := p.PingContext(ctx); err != nil {
			h.logger.WithFields(map[string]interface{}{
				"store": name,
			}).ErrorWithErr(err, "Readiness check failed")
			utils.WriteErrorMessage(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", name+" connection failed")
			return
		}
		status[name] = "connected"
	}

	utils.WriteSuccess(w, http.StatusOK, status)
}
