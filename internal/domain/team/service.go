package team

import "context"

// Service defines the interface for team management
type Service interface {
	Add(ctx context.Context, m *Member) (*Member, error)
	Get(ctx context.Context, userID int64, id int64) (*Member, error)
	Update(ctx context.Context, m *Member) (*Member, error)
	Remove(ctx context.Context, userID int64, id int64) error
	List(ctx context.Context, userID int64) ([]*Member, error)
}
