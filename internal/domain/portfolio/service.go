package portfolio

import "context"

// Service defines the interface for portfolio pages
type Service interface {
	Save(ctx context.Context, p *Portfolio) (*Portfolio, error)
	GetMine(ctx context.Context, userID int64) (*Portfolio, error)
	// GetPublic returns a published portfolio by slug
	GetPublic(ctx context.Context, slug string) (*Portfolio, error)
}
