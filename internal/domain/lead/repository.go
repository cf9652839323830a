package lead

import "context"

// Repository defines the interface for lead data access
type Repository interface {
	// Create creates a new lead
	Create(ctx context.Context, l *Lead) (int64, error)

	// GetByID retrieves a lead by ID
	GetByID(ctx context.Context, userID int64, id int64) (*Lead, error)

	// Update updates a lead
	Update(ctx context.Context, l *Lead) error

	// Delete deletes a lead
	Delete(ctx context.Context, userID int64, id int64) error

	// List retrieves a user's leads matching filter, newest first
	List(ctx context.Context, userID int64, filter Filter) ([]*Lead, error)

	// Count returns how many leads a user holds
	Count(ctx context.Context, userID int64) (int, error)

	// CountByStatus counts leads by status
	CountByStatus(ctx context.Context, userID int64) (map[string]int, error)
}
