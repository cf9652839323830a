package payment

import (
	"context"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
)

// Service defines the interface for plan payments
type Service interface {
	// Create records a pending payment for a plan. The amount is taken from the catalog.
	Create(ctx context.Context, userID int64, t tier.ID, method, reference string) (*Payment, error)

	// List returns the user's payment history
	List(ctx context.Context, userID int64) ([]*Payment, error)

	// ListAll returns every payment (admin)
	ListAll(ctx context.Context) ([]*Payment, error)

	// UpdateStatus confirms or rejects a payment (admin). Completing a
	// payment moves its owner to the purchased plan.
	UpdateStatus(ctx context.Context, id int64, status string) (*Payment, error)
}
