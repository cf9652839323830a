package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

// TeamHandler handles team member requests
type TeamHandler struct {
	service   team.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(service team.Service, log *logger.Logger, val *validator.Validator) *TeamHandler {
	return &TeamHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's team in the order members were added
// @Summary List team members
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Success 200 {array} team.Member
// @Router /team [get]
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	members, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, members)
}

// Add invites a member
// @Summary Add team member
// @Description Counts against the plan's team member allowance
// @Tags Team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TeamMemberRequest true "Member"
// @Success 201 {object} team.Member
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Failure 409 {object} utils.ErrorResponse "Email already on the team"
// @Router /team [post]
func (h *TeamHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.TeamMemberRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	created, err := h.service.Add(r.Context(), req.ToMember(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// Update replaces a member
// @Summary Update team member
// @Tags Team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param request body dto.TeamMemberRequest true "Member"
// @Success 200 {object} team.Member
// @Router /team/{id} [put]
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "member")
	if !ok {
		return
	}

	var req dto.TeamMemberRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	m := req.ToMember(userID)
	m.ID = id
	updated, err := h.service.Update(r.Context(), m)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

// Remove deletes a member
// @Summary Remove team member
// @Tags Team
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 204
// @Failure 409 {object} utils.ErrorResponse "The owner cannot be removed"
// @Router /team/{id} [delete]
func (h *TeamHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "member")
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
