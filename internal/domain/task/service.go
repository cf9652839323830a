package task

import "context"

// Service defines the interface for task business logic
type Service interface {
	Create(ctx context.Context, t *Task) (*Task, error)
	GetByID(ctx context.Context, userID int64, id int64) (*Task, error)
	Update(ctx context.Context, t *Task) (*Task, error)
	UpdateStatus(ctx context.Context, userID int64, id int64, status string) (*Task, error)
	Delete(ctx context.Context, userID int64, id int64) error
	List(ctx context.Context, userID int64, filter Filter) ([]*Task, error)
}
