package handlers

import (
	"net/http"
	"strconv"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/post"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

// PostHandler handles marketing post requests
type PostHandler struct {
	service   post.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewPostHandler creates a new post handler
func NewPostHandler(service post.Service, log *logger.Logger, val *validator.Validator) *PostHandler {
	return &PostHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's posts
// @Summary List posts
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft, scheduled or published"
// @Param platform query string false "Platform"
// @Param campaign_id query int false "Only posts of this campaign"
// @Success 200 {array} post.Post
// @Router /posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := post.Filter{Status: q.Get("status"), Platform: q.Get("platform")}
	if raw := q.Get("campaign_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			utils.WriteError(w, errors.BadRequest("Invalid campaign ID"))
			return
		}
		filter.CampaignID = id
	}

	posts, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, posts)
}

// Create adds a post
// @Summary Create post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PostRequest true "Post"
// @Success 201 {object} post.Post
// @Router /posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.PostRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	created, err := h.service.Create(r.Context(), req.ToPost(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// Get returns one post
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "post")
	if !ok {
		return
	}

	p, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}

// Update replaces a post
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "post")
	if !ok {
		return
	}

	var req dto.PostRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	p := req.ToPost(userID)
	p.ID = id
	updated, err := h.service.Update(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

// Delete removes a post
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "post")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
