package campaign

import "context"

// Service defines the interface for campaign business logic
type Service interface {
	// Create creates a campaign. New campaigns start as drafts.
	Create(ctx context.Context, c *Campaign) (*Campaign, error)

	// GetByID retrieves a campaign by ID
	GetByID(ctx context.Context, userID int64, id int64) (*Campaign, error)

	// Update replaces a campaign
	Update(ctx context.Context, c *Campaign) (*Campaign, error)

	// Delete removes a campaign and detaches its posts
	Delete(ctx context.Context, userID int64, id int64) error

	// List retrieves campaigns with filters
	List(ctx context.Context, userID int64, filter Filter) ([]*Campaign, error)
}
