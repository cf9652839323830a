package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/portfolio"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

// PortfolioHandler serves portfolio pages
type PortfolioHandler struct {
	service   portfolio.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(service portfolio.Service, log *logger.Logger, val *validator.Validator) *PortfolioHandler {
	return &PortfolioHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// GetMine returns the user's portfolio
// @Summary Get my portfolio
// @Tags Portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} portfolio.Portfolio
// @Failure 404 {object} utils.ErrorResponse
// @Router /portfolio [get]
func (h *PortfolioHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}

// Save creates or replaces the user's portfolio
// @Summary Save my portfolio
// @Tags Portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PortfolioRequest true "Portfolio"
// @Success 200 {object} portfolio.Portfolio
// @Failure 409 {object} utils.ErrorResponse "Slug taken"
// @Router /portfolio [put]
func (h *PortfolioHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.PortfolioRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	p, err := h.service.Save(r.Context(), req.ToPortfolio(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}

// GetPublic returns a published portfolio
// @Summary Public portfolio
// @Tags Portfolio
// @Produce json
// @Param slug path string true "Portfolio slug"
// @Success 200 {object} portfolio.Portfolio
// @Failure 404 {object} utils.ErrorResponse
// @Router /public/portfolio/{slug} [get]
func (h *PortfolioHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPublic(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}
