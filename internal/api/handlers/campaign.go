package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/campaign"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

// CampaignHandler handles marketing campaign requests
type CampaignHandler struct {
	service   campaign.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(service campaign.Service, log *logger.Logger, val *validator.Validator) *CampaignHandler {
	return &CampaignHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's campaigns
// @Summary List campaigns
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft, active, paused or completed"
// @Param channel query string false "Campaign channel"
// @Success 200 {array} campaign.Campaign
// @Router /campaigns [get]
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	campaigns, err := h.service.List(r.Context(), userID, campaign.Filter{
		Status:  q.Get("status"),
		Channel: q.Get("channel"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, campaigns)
}

// Create adds a campaign
// @Summary Create campaign
// @Description New campaigns start as drafts unless a status is given
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CampaignRequest true "Campaign"
// @Success 201 {object} campaign.Campaign
// @Router /campaigns [post]
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CampaignRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	created, err := h.service.Create(r.Context(), req.ToCampaign(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// Get returns one campaign
// @Summary Get campaign
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} campaign.Campaign
// @Failure 404 {object} utils.ErrorResponse
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "campaign")
	if !ok {
		return
	}

	c, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, c)
}

// Update replaces a campaign
// @Summary Update campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param request body dto.CampaignRequest true "Campaign"
// @Success 200 {object} campaign.Campaign
// @Router /campaigns/{id} [put]
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "campaign")
	if !ok {
		return
	}

	var req dto.CampaignRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	c := req.ToCampaign(userID)
	c.ID = id
	updated, err := h.service.Update(r.Context(), c)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

// Delete removes a campaign; its posts are kept without a campaign
// @Summary Delete campaign
// @Tags Campaigns
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 204
// @Router /campaigns/{id} [delete]
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "campaign")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
