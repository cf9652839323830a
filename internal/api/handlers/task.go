package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/task"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

// TaskHandler handles operations task requests
type TaskHandler struct {
	service   task.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service task.Service, log *logger.Logger, val *validator.Validator) *TaskHandler {
	return &TaskHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's tasks
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, in-progress or completed"
// @Param priority query string false "low, medium or high"
// @Param assignee query string false "Assignee name"
// @Success 200 {array} task.Task
// @Router /tasks [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	tasks, err := h.service.List(r.Context(), userID, task.Filter{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Assignee: q.Get("assignee"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, tasks)
}

// Create adds a task
// @Summary Create task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TaskRequest true "Task"
// @Success 201 {object} task.Task
// @Router /tasks [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.TaskRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	created, err := h.service.Create(r.Context(), req.ToTask(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// Get returns one task
// @Summary Get task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} task.Task
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "task")
	if !ok {
		return
	}

	t, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, t)
}

// Update replaces a task
// @Summary Update task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body dto.TaskRequest true "Task"
// @Success 200 {object} task.Task
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "task")
	if !ok {
		return
	}

	var req dto.TaskRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	t := req.ToTask(userID)
	t.ID = id
	updated, err := h.service.Update(r.Context(), t)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

// UpdateStatus moves a task to a new status
// @Summary Update task status
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body dto.TaskStatusRequest true "Status"
// @Success 200 {object} task.Task
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "task")
	if !ok {
		return
	}

	var req dto.TaskStatusRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), userID, id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

// Delete removes a task
// @Summary Delete task
// @Tags Tasks
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 204
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "task")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
