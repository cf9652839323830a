package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

// InvoiceRepository is an in-memory invoice.Repository
type InvoiceRepository struct {
	t *table[*invoice.Invoice]
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{t: newTable(cloneInvoice)}
}

func cloneInvoice(inv *invoice.Invoice) *invoice.Invoice {
	cp := *inv
	cp.Items = append([]invoice.LineItem{}, inv.Items...)
	return &cp
}

func ownedInvoice(userID int64) func(*invoice.Invoice) bool {
	return func(inv *invoice.Invoice) bool { return inv.UserID == userID }
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) (int64, error) {
	ts := now()
	inv.CreatedAt = ts
	inv.UpdatedAt = ts
	if inv.Status == "" {
		inv.Status = invoice.StatusDraft
	}
	id := r.t.insert(func(id int64) *invoice.Invoice {
		inv.ID = id
		return inv
	})
	return id, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, userID int64, id int64) (*invoice.Invoice, error) {
	inv, ok := r.t.get(id, ownedInvoice(userID))
	if !ok {
		return nil, errors.NotFound("Invoice")
	}
	return inv, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = now()
	if !r.t.replace(inv.ID, inv, ownedInvoice(inv.UserID)) {
		return errors.NotFound("Invoice")
	}
	return nil
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, userID int64, id int64, status invoice.Status) error {
	n := r.t.mutate(func(rowID int64, inv **invoice.Invoice) bool {
		if rowID != id || (*inv).UserID != userID {
			return false
		}
		cp := cloneInvoice(*inv)
		cp.Status = status
		cp.UpdatedAt = now()
		*inv = cp
		return true
	})
	if n == 0 {
		return errors.NotFound("Invoice")
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, userID int64, id int64) error {
	if !r.t.remove(id, ownedInvoice(userID)) {
		return errors.NotFound("Invoice")
	}
	return nil
}

func (r *InvoiceRepository) List(ctx context.Context, userID int64, filter invoice.Filter) ([]*invoice.Invoice, error) {
	q := strings.ToLower(strings.TrimSpace(filter.Search))
	match := func(inv *invoice.Invoice) bool {
		if inv.UserID != userID {
			return false
		}
		if filter.Status != "" && inv.Status != filter.Status {
			return false
		}
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(inv.InvoiceNumber), q) ||
			strings.Contains(strings.ToLower(inv.ClientName), q) ||
			strings.Contains(strings.ToLower(inv.ClientEmail), q)
	}
	return r.t.filter(match, func(a, b *invoice.Invoice) bool {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	}), nil
}

func (r *InvoiceRepository) CountByStatus(ctx context.Context, userID int64) (map[invoice.Status]int, error) {
	counts := make(map[invoice.Status]int)
	for _, inv := range r.t.filter(ownedInvoice(userID), nil) {
		counts[inv.Status]++
	}
	return counts, nil
}

func (r *InvoiceRepository) SumPaid(ctx context.Context, userID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range r.t.filter(ownedInvoice(userID), nil) {
		if inv.Status == invoice.StatusPaid {
			total = total.Add(inv.Amount)
		}
	}
	return total, nil
}

func (r *InvoiceRepository) MarkOverdue(ctx context.Context, asOf string) (int64, error) {
	return r.t.mutate(func(_ int64, inv **invoice.Invoice) bool {
		v := *inv
		if v.Status != invoice.StatusSent || v.DueDate == "" || v.DueDate >= asOf {
			return false
		}
		cp := cloneInvoice(v)
		cp.Status = invoice.StatusOverdue
		cp.UpdatedAt = now()
		*inv = cp
		return true
	}), nil
}
