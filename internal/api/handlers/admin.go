package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/job"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
)

// JobRunner is the part of the scheduler exposed to admins
type JobRunner interface {
	Entries() []job.Entry
	History(name job.Name) ([]*job.Execution, error)
	Trigger(ctx context.Context, name job.Name) (*job.Execution, error)
}

// AdminHandler serves operator endpoints
type AdminHandler struct {
	users  user.Service
	jobs   JobRunner
	logger *logger.Logger
}

// NewAdminHandler creates a new admin handler. jobs may be nil when the
// scheduler is disabled.
func NewAdminHandler(users user.Service, jobs JobRunner, log *logger.Logger) *AdminHandler {
	return &AdminHandler{users: users, jobs: jobs, logger: log}
}

// ListUsers returns accounts page by page
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)
	users, total, err := h.users.List(r.Context(), params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserDTO(u))
	}
	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(out, params.Page, params.PageSize, total))
}

// ListJobs returns registered background jobs
// @Summary List jobs
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} job.Entry
// @Router /admin/jobs [get]
func (h *AdminHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		utils.WriteSuccess(w, http.StatusOK, []job.Entry{})
		return
	}
	utils.WriteSuccess(w, http.StatusOK, h.jobs.Entries())
}

// JobHistory returns recent runs of a job
// @Summary Job history
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param name path string true "Job name"
// @Success 200 {array} job.Execution
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/jobs/{name} [get]
func (h *AdminHandler) JobHistory(w http.ResponseWriter, r *http.Request) {
	runner, ok := h.runner(w)
	if !ok {
		return
	}

	history, err := runner.History(job.Name(chi.URLParam(r, "name")))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, history)
}

// TriggerJob runs a job now and waits for it
// @Summary Run job
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param name path string true "Job name"
// @Success 200 {object} job.Execution
// @Failure 404 {object} utils.ErrorResponse
// @Router /admin/jobs/{name}/run [post]
func (h *AdminHandler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	runner, ok := h.runner(w)
	if !ok {
		return
	}

	exec, err := runner.Trigger(r.Context(), job.Name(chi.URLParam(r, "name")))
	if err != nil && exec == nil {
		writeServiceError(w, err)
		return
	}

	// A failed run is still a completed request; the execution carries the error.
	utils.WriteSuccess(w, http.StatusOK, exec)
}

var errNoScheduler = errors.ServiceUnavailable("Background jobs are disabled")

func (h *AdminHandler) runner(w http.ResponseWriter) (JobRunner, bool) {
	if h.jobs == nil {
		writeServiceError(w, errNoScheduler)
		return nil, false
	}
	return h.jobs, true
}
