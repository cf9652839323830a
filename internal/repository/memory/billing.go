package memory

import (
	"context"
	"sync"

	"github.com/pratik-mahalle/bizdesk/internal/domain/payment"
	"github.com/pratik-mahalle/bizdesk/internal/domain/portfolio"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

// PaymentRepository is an in-memory payment.Repository. Admin listings
// resolve payer details through users.
type PaymentRepository struct {
	t     *table[*payment.Payment]
	users user.Repository
}

func NewPaymentRepository(users user.Repository) *PaymentRepository {
	return &PaymentRepository{
		t: newTable(func(p *payment.Payment) *payment.Payment {
			cp := *p
			return &cp
		}),
		users: users,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) (int64, error) {
	ts := now()
	p.CreatedAt = ts
	p.UpdatedAt = ts
	if p.Status == "" {
		p.Status = payment.StatusPending
	}
	return r.t.insert(func(id int64) *payment.Payment {
		p.ID = id
		return p
	}), nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*payment.Payment, error) {
	p, ok := r.t.get(id, nil)
	if !ok {
		return nil, errors.NotFound("Payment")
	}
	return p, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	n := r.t.mutate(func(rowID int64, p **payment.Payment) bool {
		if rowID != id {
			return false
		}
		cp := **p
		cp.Status = status
		cp.UpdatedAt = now()
		*p = &cp
		return true
	})
	if n == 0 {
		return errors.NotFound("Payment")
	}
	return nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	return r.t.filter(
		func(p *payment.Payment) bool { return p.UserID == userID },
		func(a, b *payment.Payment) bool { return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID) },
	), nil
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]*payment.Payment, error) {
	all := r.t.filter(nil, func(a, b *payment.Payment) bool {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})
	for _, p := range all {
		if r.users == nil {
			break
		}
		if u, err := r.users.GetByID(ctx, p.UserID); err == nil {
			p.UserName = u.Name
			p.UserEmail = u.Email
		}
	}
	return all, nil
}

// PortfolioRepository is an in-memory portfolio.Repository
type PortfolioRepository struct {
	t *table[*portfolio.Portfolio]
	// upserts must check-then-write atomically
	mu sync.Mutex
}

func NewPortfolioRepository() *PortfolioRepository {
	return &PortfolioRepository{t: newTable(clonePortfolio)}
}

func clonePortfolio(p *portfolio.Portfolio) *portfolio.Portfolio {
	cp := *p
	cp.Services = append([]string{}, p.Services...)
	cp.Tools = append([]string{}, p.Tools...)
	cp.Testimonials = append([]portfolio.Testimonial{}, p.Testimonials...)
	cp.SocialLinks = make(map[string]string, len(p.SocialLinks))
	for k, v := range p.SocialLinks {
		cp.SocialLinks[k] = v
	}
	return &cp
}

func (r *PortfolioRepository) Upsert(ctx context.Context, p *portfolio.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.t.filter(func(x *portfolio.Portfolio) bool { return x.Slug == p.Slug }, nil) {
		if other.UserID != p.UserID {
			return errors.Conflict("This portfolio address is already taken")
		}
	}

	ts := now()
	p.UpdatedAt = ts
	existing := r.t.filter(func(x *portfolio.Portfolio) bool { return x.UserID == p.UserID }, nil)
	if len(existing) > 0 {
		p.ID = existing[0].ID
		p.CreatedAt = existing[0].CreatedAt
		r.t.replace(p.ID, p, nil)
		return nil
	}
	p.CreatedAt = ts
	r.t.insert(func(id int64) *portfolio.Portfolio {
		p.ID = id
		return p
	})
	return nil
}

func (r *PortfolioRepository) GetByUser(ctx context.Context, userID int64) (*portfolio.Portfolio, error) {
	found := r.t.filter(func(p *portfolio.Portfolio) bool { return p.UserID == userID }, nil)
	if len(found) == 0 {
		return nil, errors.NotFound("Portfolio")
	}
	return found[0], nil
}

func (r *PortfolioRepository) GetBySlug(ctx context.Context, slug string) (*portfolio.Portfolio, error) {
	found := r.t.filter(func(p *portfolio.Portfolio) bool { return p.Slug == slug }, nil)
	if len(found) == 0 {
		return nil, errors.NotFound("Portfolio")
	}
	return found[0], nil
}

// UsageRepository is an in-memory tier.UsageRepository
type UsageRepository struct {
	mu     sync.Mutex
	counts map[usageKey]int64
}

type usageKey struct {
	userID  int64
	feature tier.Feature
	period  string
}

func NewUsageRepository() *UsageRepository {
	return &UsageRepository{counts: make(map[usageKey]int64)}
}

func (r *UsageRepository) Get(ctx context.Context, userID int64, period string) (tier.Usage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	usage := tier.Usage{}
	for k, n := range r.counts {
		if k.userID == userID && k.period == period {
			usage[k.feature] = n
		}
	}
	return usage, nil
}

func (r *UsageRepository) Increment(ctx context.Context, userID int64, feature tier.Feature, period string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := usageKey{userID, feature, period}
	r.counts[k]++
	return r.counts[k], nil
}

func (r *UsageRepository) Prune(ctx context.Context, before string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.counts {
		if k.period < before {
			delete(r.counts, k)
			n++
		}
	}
	return n, nil
}
