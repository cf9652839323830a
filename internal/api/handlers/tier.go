package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
)

// TierHandler exposes plans and usage
type TierHandler struct {
	service tier.Service
	logger  *logger.Logger
}

// NewTierHandler creates a new tier handler
func NewTierHandler(service tier.Service, log *logger.Logger) *TierHandler {
	return &TierHandler{service: service, logger: log}
}

// Plans lists the plan catalog
// @Summary List plans
// @Tags Tier
// @Produce json
// @Success 200 {array} tier.Tier
// @Router /tier/plans [get]
func (h *TierHandler) Plans(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, h.service.Plans())
}

// Status returns the user's plan and usage this period
// @Summary Current plan and usage
// @Tags Tier
// @Produce json
// @Security BearerAuth
// @Success 200 {object} tier.Status
// @Router /tier [get]
func (h *TierHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	st, err := h.service.Status(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, st)
}

// CheckFeature reports whether one more use of a feature fits the plan
// @Summary Pre-flight feature check
// @Description Read-only. The server enforces the limit again on the actual operation.
// @Tags Tier
// @Produce json
// @Security BearerAuth
// @Param feature path string true "invoices, pdfExports, leads or teamMembers"
// @Success 200 {object} dto.FeatureCheckResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /tier/features/{feature} [get]
func (h *TierHandler) CheckFeature(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	feature := chi.URLParam(r, "feature")
	allowed, err := h.service.CanUseFeature(r.Context(), userID, tier.Feature(feature))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FeatureCheckResponse{
		Feature: feature,
		Allowed: allowed,
	})
}
