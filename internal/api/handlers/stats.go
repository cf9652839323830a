package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/bizdesk/internal/domain/stats"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
)

// StatsHandler serves the dashboard
type StatsHandler struct {
	service stats.Service
	logger  *logger.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service stats.Service, log *logger.Logger) *StatsHandler {
	return &StatsHandler{service: service, logger: log}
}

// Dashboard returns headline business numbers
// @Summary Dashboard
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} stats.Dashboard
// @Router /stats [get]
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	d, err := h.service.Dashboard(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, d)
}
