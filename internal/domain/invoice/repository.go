package invoice

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for invoice data access
type Repository interface {
	// Create stores a new invoice and returns its id
	Create(ctx context.Context, inv *Invoice) (int64, error)

	// GetByID retrieves an invoice owned by userID
	GetByID(ctx context.Context, userID int64, id int64) (*Invoice, error)

	// Update replaces every field of an existing invoice
	Update(ctx context.Context, inv *Invoice) error

	// UpdateStatus changes only the status of an invoice
	UpdateStatus(ctx context.Context, userID int64, id int64, status Status) error

	// Delete deletes an invoice
	Delete(ctx context.Context, userID int64, id int64) error

	// List returns a user's invoices, newest first
	List(ctx context.Context, userID int64, filter Filter) ([]*Invoice, error)

	// CountByStatus counts a user's invoices per status
	CountByStatus(ctx context.Context, userID int64) (map[Status]int, error)

	// SumPaid totals the amount of a user's paid invoices
	SumPaid(ctx context.Context, userID int64) (decimal.Decimal, error)

	// MarkOverdue moves sent invoices due before asOf (YYYY-MM-DD) to overdue
	MarkOverdue(ctx context.Context, asOf string) (int64, error)
}
