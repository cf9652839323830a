package payment

import "context"

// Repository defines the interface for payment data access
type Repository interface {
	Create(ctx context.Context, p *Payment) (int64, error)
	GetByID(ctx context.Context, id int64) (*Payment, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	// ListByUser returns a user's payments, newest first
	ListByUser(ctx context.Context, userID int64) ([]*Payment, error)
	// ListAll returns every payment with the payer's name and email, newest first
	ListAll(ctx context.Context) ([]*Payment, error)
}
