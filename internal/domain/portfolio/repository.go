package portfolio

import "context"

// Repository defines the interface for portfolio data access
type Repository interface {
	// Upsert creates the user's portfolio or replaces the existing one
	Upsert(ctx context.Context, p *Portfolio) error
	GetByUser(ctx context.Context, userID int64) (*Portfolio, error)
	GetBySlug(ctx context.Context, slug string) (*Portfolio, error)
}
