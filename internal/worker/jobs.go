package worker

import (
	"context"
	"time"

	"github.com/pratik-mahalle/bizdesk/internal/config"
	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/domain/job"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
)

// OverdueSweep marks sent invoices past their due date as overdue
func OverdueSweep(invoices invoice.Service, now func() time.Time) Func {
	return func(ctx context.Context) (int64, error) {
		return invoices.MarkOverdue(ctx, now())
	}
}

// UsagePrune removes usage counters outside the retention window
func UsagePrune(tiers tier.Service, now func() time.Time) Func {
	return func(ctx context.Context) (int64, error) {
		return tiers.PruneUsage(ctx, now())
	}
}

// RegisterDefaults schedules the maintenance jobs from configuration
func RegisterDefaults(s *Scheduler, cfg config.JobsConfig, invoices invoice.Service, tiers tier.Service) error {
	if err := s.Register(job.OverdueSweep, cfg.OverdueSweepSchedule, OverdueSweep(invoices, time.Now)); err != nil {
		return err
	}
	return s.Register(job.UsagePrune, cfg.UsagePruneSchedule, UsagePrune(tiers, time.Now))
}
