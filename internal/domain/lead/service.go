package lead

import "context"

// Service defines the interface for lead business logic
type Service interface {
	// Create creates a new lead
	Create(ctx context.Context, l *Lead) (*Lead, error)

	// GetByID retrieves a lead by ID
	GetByID(ctx context.Context, userID int64, id int64) (*Lead, error)

	// Update replaces a lead
	Update(ctx context.Context, l *Lead) (*Lead, error)

	// Delete deletes a lead
	Delete(ctx context.Context, userID int64, id int64) error

	// List retrieves leads with filters
	List(ctx context.Context, userID int64, filter Filter) ([]*Lead, error)

	// GetSummary counts leads per status
	GetSummary(ctx context.Context, userID int64) (*Summary, error)
}
