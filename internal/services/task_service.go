package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/bizdesk/internal/domain/task"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
)

// TaskService implements task.Service
type TaskService struct {
	repo   task.Repository
	logger *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(repo task.Repository, log *logger.Logger) task.Service {
	return &TaskService{
		repo:   repo,
		logger: log,
	}
}

func validTaskStatus(s string) bool {
	return s == task.StatusPending || s == task.StatusInProgress || s == task.StatusCompleted
}

func normalizeTask(t *task.Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return errors.ValidationError("Task title is required", nil)
	}
	if t.Status == "" {
		t.Status = task.StatusPending
	}
	if !validTaskStatus(t.Status) {
		return errors.BadRequest("Invalid task status: " + t.Status)
	}
	switch t.Priority {
	case "":
		t.Priority = task.PriorityMedium
	case task.PriorityLow, task.PriorityMedium, task.PriorityHigh:
	default:
		return errors.BadRequest("Invalid task priority: " + t.Priority)
	}
	return nil
}

// Create creates a new task
func (s *TaskService) Create(ctx context.Context, t *task.Task) (*task.Task, error) {
	if t.UserID == 0 {
		return nil, errors.NotAuthenticated()
	}
	if err := normalizeTask(t); err != nil {
		return nil, err
	}

	if _, err := s.repo.Create(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create task")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"task_id":  t.ID,
		"user_id":  t.UserID,
		"priority": t.Priority,
	}).Info("Task created")

	return t, nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, userID int64, id int64) (*task.Task, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update replaces a task
func (s *TaskService) Update(ctx context.Context, t *task.Task) (*task.Task, error) {
	existing, err := s.repo.GetByID(ctx, t.UserID, t.ID)
	if err != nil {
		return nil, err
	}
	if err := normalizeTask(t); err != nil {
		return nil, err
	}
	t.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update task")
		return nil, err
	}
	return t, nil
}

// UpdateStatus moves a task along the board
func (s *TaskService) UpdateStatus(ctx context.Context, userID int64, id int64, status string) (*task.Task, error) {
	if !validTaskStatus(status) {
		return nil, errors.BadRequest("Invalid task status: " + status)
	}
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	t.Status = status

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update task status")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"task_id": id,
		"status":  status,
	}).Info("Task status updated")

	return t, nil
}

// Delete deletes a task
func (s *TaskService) Delete(ctx context.Context, userID int64, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

// List retrieves tasks with filters
func (s *TaskService) List(ctx context.Context, userID int64, filter task.Filter) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return []*task.Task{}, err
	}
	return tasks, nil
}
