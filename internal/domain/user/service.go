package user

import (
	"context"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
)

// Service defines the interface for user business logic
type Service interface {
	// Register creates an account with a hashed password on the free plan
	Register(ctx context.Context, email, password, name string) (*User, error)

	// Authenticate verifies credentials and returns the user
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// UpdateProfile changes the user's display fields
	UpdateProfile(ctx context.Context, id int64, p Profile) (*User, error)

	// SetTier moves a user to another plan
	SetTier(ctx context.Context, id int64, t tier.ID) error

	// List retrieves users with pagination
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)
}
