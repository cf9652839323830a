package campaign

import "context"

// Repository defines the interface for campaign data access
type Repository interface {
	Create(ctx context.Context, c *Campaign) (int64, error)
	GetByID(ctx context.Context, userID int64, id int64) (*Campaign, error)
	Update(ctx context.Context, c *Campaign) error
	Delete(ctx context.Context, userID int64, id int64) error
	// List returns campaigns newest first
	List(ctx context.Context, userID int64, filter Filter) ([]*Campaign, error)
	CountByStatus(ctx context.Context, userID int64) (map[string]int, error)
}
