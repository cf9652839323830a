package services

import (
	"context"
	"time"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
)

// TierService implements tier.Service
type TierService struct {
	users           user.Repository
	usage           tier.UsageRepository
	counters        tier.Counters
	retentionMonths int
	logger          *logger.Logger
	now             func() time.Time
}

// NewTierService creates a new tier service. Standing features are counted
// live through counters. Usage older than retentionMonths is removed by
// PruneUsage.
func NewTierService(users user.Repository, usage tier.UsageRepository, counters tier.Counters, retentionMonths int, log *logger.Logger) tier.Service {
	return newTierService(users, usage, counters, retentionMonths, log, time.Now)
}

func newTierService(users user.Repository, usage tier.UsageRepository, counters tier.Counters, retentionMonths int, log *logger.Logger, now func() time.Time) *TierService {
	if retentionMonths < 1 {
		retentionMonths = 12
	}
	return &TierService{
		users:           users,
		usage:           usage,
		counters:        counters,
		retentionMonths: retentionMonths,
		logger:          log,
		now:             now,
	}
}

// Plans lists the catalog
func (s *TierService) Plans() []tier.Tier {
	return tier.Catalog
}

// GateFor builds a gate for the user's current plan
func (s *TierService) GateFor(ctx context.Context, userID int64) (*tier.Gate, error) {
	if userID == 0 {
		return nil, errors.NotAuthenticated()
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return tier.NewGate(u.ID, u.Tier, s.usage).WithClock(s.now).WithCounters(s.counters), nil
}

// Status returns the user's plan and usage for the current period
func (s *TierService) Status(ctx context.Context, userID int64) (*tier.Status, error) {
	g, err := s.GateFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	st, err := g.Status(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to load usage")
		return nil, errors.PersistenceError(err)
	}
	return st, nil
}

// CanUseFeature is a read-only pre-flight check
func (s *TierService) CanUseFeature(ctx context.Context, userID int64, f tier.Feature) (bool, error) {
	if !tier.KnownFeature(f) {
		return false, errors.BadRequest("Unknown feature: " + string(f))
	}
	g, err := s.GateFor(ctx, userID)
	if err != nil {
		return false, err
	}
	ok, err := g.CanUseFeature(ctx, f)
	if err != nil {
		return false, errors.PersistenceError(err)
	}
	return ok, nil
}

// PruneUsage drops counters older than the retention window
func (s *TierService) PruneUsage(ctx context.Context, now time.Time) (int64, error) {
	before := tier.PeriodMonthsBefore(now, s.retentionMonths)
	n, err := s.usage.Prune(ctx, before)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to prune usage")
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"before":  before,
		"removed": n,
	}).Info("Usage counters pruned")

	return n, nil
}
