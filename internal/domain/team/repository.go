package team

import "context"

// Repository defines the interface for team member data access
type Repository interface {
	Create(ctx context.Context, m *Member) (int64, error)
	GetByID(ctx context.Context, userID int64, id int64) (*Member, error)
	GetByEmail(ctx context.Context, userID int64, email string) (*Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, userID int64, id int64) error
	// List returns members in the order they were added
	List(ctx context.Context, userID int64) ([]*Member, error)
	Count(ctx context.Context, userID int64) (int, error)
	// CountSeats counts members other than the owner. Seats are what the
	// plan's team member limit caps.
	CountSeats(ctx context.Context, userID int64) (int, error)
}
