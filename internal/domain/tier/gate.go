package tier

import (
	"context"
	"time"

	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

// Gate meters features for one user on one plan.
//
// Periodic features (invoices, PDF exports) are counters per calendar month.
// Standing features (leads, team seats) are live record counts from Counters
// and are never recorded. Callers check before acting and, for periodic
// features, record after the action succeeded:
//
//	if err := gate.Check(ctx, tier.FeatureInvoices); err != nil { return err }
//	... perform the action ...
//	gate.UpdateUsage(ctx, tier.FeatureInvoices)
//
// Two concurrent requests can both pass Check and push the counter one past
// the limit. That is acceptable for usage guidance.
type Gate struct {
	userID int64
	tier   Tier
	usage    UsageRepository
	counters Counters
	now      func() time.Time
}

// NewGate creates a gate for userID on plan id
func NewGate(userID int64, id ID, usage UsageRepository) *Gate {
	return &Gate{
		userID: userID,
		tier:   Lookup(id),
		usage:  usage,
		now:    time.Now,
	}
}

// WithClock overrides the time source used to pick the usage period
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// WithCounters sets the live counts used for standing features
func (g *Gate) WithCounters(c Counters) *Gate {
	g.counters = c
	return g
}

// GetCurrentTier returns the plan id
func (g *Gate) GetCurrentTier() ID {
	return g.tier.ID
}

// Tier returns the full plan
func (g *Gate) Tier() Tier {
	return g.tier
}

// Period returns the usage period the gate currently meters
func (g *Gate) Period() string {
	return Period(g.now())
}

// GetUsage returns the user's periodic counters for the current period
// merged with the live counts of standing features
func (g *Gate) GetUsage(ctx context.Context) (Usage, error) {
	usage := Usage{}
	if g.usage != nil {
		stored, err := g.usage.Get(ctx, g.userID, g.Period())
		if err != nil {
			return nil, err
		}
		for f, n := range stored {
			if !f.Standing() {
				usage[f] = n
			}
		}
	}
	for _, f := range Features {
		if !f.Standing() {
			continue
		}
		n, err := g.standing(ctx, f)
		if err != nil {
			return nil, err
		}
		usage[f] = n
	}
	return usage, nil
}

func (g *Gate) standing(ctx context.Context, f Feature) (int64, error) {
	count, ok := g.counters[f]
	if !ok {
		return 0, nil
	}
	n, err := count(ctx, g.userID)
	return int64(n), err
}

// used returns the current consumption of a single feature
func (g *Gate) used(ctx context.Context, f Feature) (int64, error) {
	if f.Standing() {
		return g.standing(ctx, f)
	}
	if g.usage == nil {
		return 0, nil
	}
	usage, err := g.usage.Get(ctx, g.userID, g.Period())
	if err != nil {
		return 0, err
	}
	return usage[f], nil
}

// CanUseFeature reports whether one more use of f fits the plan. It does not
// change any counter.
func (g *Gate) CanUseFeature(ctx context.Context, f Feature) (bool, error) {
	limit := g.tier.Limit(f)
	if limit.IsUnlimited() {
		return true, nil
	}
	n, err := g.used(ctx, f)
	if err != nil {
		return false, err
	}
	return limit.Allows(n), nil
}

// Check is CanUseFeature returning a FEATURE_LIMIT error on denial
func (g *Gate) Check(ctx context.Context, f Feature) error {
	limit := g.tier.Limit(f)
	if limit.IsUnlimited() {
		return nil
	}
	n, err := g.used(ctx, f)
	if err != nil {
		return errors.PersistenceError(err)
	}
	if !limit.Allows(n) {
		return errors.FeatureLimit(errors.LimitDetails{
			Feature: string(f),
			Tier:    string(g.tier.ID),
			Limit:   int64(limit),
			Used:    n,
		})
	}
	return nil
}

// UpdateUsage counts one use of a periodic feature. Call it only after the
// gated action succeeded. Standing features are counted live, so it is a
// no-op for them.
func (g *Gate) UpdateUsage(ctx context.Context, f Feature) error {
	if g.usage == nil || f.Standing() {
		return nil
	}
	_, err := g.usage.Increment(ctx, g.userID, f, g.Period())
	return err
}

// Status reports every metered feature against the plan
func (g *Gate) Status(ctx context.Context) (*Status, error) {
	usage, err := g.GetUsage(ctx)
	if err != nil {
		return nil, err
	}
	st := &Status{Tier: g.tier, Period: g.Period()}
	for _, f := range Features {
		limit := g.tier.Limit(f)
		st.Features = append(st.Features, FeatureStatus{
			Feature:   f,
			Used:      usage[f],
			Limit:     limit,
			Unlimited: limit.IsUnlimited(),
			Allowed:   limit.Allows(usage[f]),
		})
	}
	return st, nil
}
