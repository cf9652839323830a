package task

import "context"

// Repository defines the interface for task data access
type Repository interface {
	Create(ctx context.Context, t *Task) (int64, error)
	GetByID(ctx context.Context, userID int64, id int64) (*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, userID int64, id int64) error
	// List returns tasks newest first
	List(ctx context.Context, userID int64, filter Filter) ([]*Task, error)
	CountByStatus(ctx context.Context, userID int64) (map[string]int, error)
}
