package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

// LeadHandler handles CRM lead requests
type LeadHandler struct {
	service   lead.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(service lead.Service, log *logger.Logger, val *validator.Validator) *LeadHandler {
	return &LeadHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's leads
// @Summary List leads
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches name, email or company"
// @Param status query string false "Lead status or all"
// @Param source query string false "Lead source or all"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse
// @Router /leads [get]
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	leads, err := h.service.List(r.Context(), userID, lead.Filter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Source: q.Get("source"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	params := utils.ParsePaginationParams(r)
	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(
		utils.Paginate(leads, params), params.Page, params.PageSize, int64(len(leads)),
	))
}

// Summary counts leads per status
// @Summary Lead summary
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Success 200 {object} lead.Summary
// @Router /leads/summary [get]
func (h *LeadHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := h.service.GetSummary(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}

// Create adds a lead
// @Summary Create lead
// @Description Counts against the plan's lead allowance
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LeadRequest true "Lead"
// @Success 201 {object} lead.Lead
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Router /leads [post]
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.LeadRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	created, err := h.service.Create(r.Context(), req.ToLead(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// Get returns one lead
// @Summary Get lead
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} lead.Lead
// @Failure 404 {object} utils.ErrorResponse
// @Router /leads/{id} [get]
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "lead")
	if !ok {
		return
	}

	l, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, l)
}

// Update replaces a lead
// @Summary Update lead
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param request body dto.LeadRequest true "Lead"
// @Success 200 {object} lead.Lead
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "lead")
	if !ok {
		return
	}

	var req dto.LeadRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	l := req.ToLead(userID)
	l.ID = id
	updated, err := h.service.Update(r.Context(), l)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

// Delete removes a lead
// @Summary Delete lead
// @Tags Leads
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 204
// @Router /leads/{id} [delete]
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "lead")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
