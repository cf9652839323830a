package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pratik-mahalle/bizdesk/internal/domain/campaign"
	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/domain/stats"
	"github.com/pratik-mahalle/bizdesk/internal/domain/task"
	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
)

// StatsService implements stats.Service
type StatsService struct {
	invoices  invoice.Repository
	leads     lead.Repository
	tasks     task.Repository
	team      team.Repository
	campaigns campaign.Repository
	logger    *logger.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	invoices invoice.Repository,
	leads lead.Repository,
	tasks task.Repository,
	members team.Repository,
	campaigns campaign.Repository,
	log *logger.Logger,
) stats.Service {
	return &StatsService{
		invoices:  invoices,
		leads:     leads,
		tasks:     tasks,
		team:      members,
		campaigns: campaigns,
		logger:    log,
	}
}

// Dashboard queries every store concurrently and fails if any of them fails
func (s *StatsService) Dashboard(ctx context.Context, userID int64) (*stats.Dashboard, error) {
	if userID == 0 {
		return nil, errors.NotAuthenticated()
	}

	d := &stats.Dashboard{
		InvoicesByState: map[string]int{},
		LeadsByStatus:   map[string]int{},
	}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		revenue, err := s.invoices.SumPaid(ctx, userID)
		if err != nil {
			return err
		}
		d.Revenue = revenue
		return nil
	})

	g.Go(func() error {
		counts, err := s.invoices.CountByStatus(ctx, userID)
		if err != nil {
			return err
		}
		for st, n := range counts {
			d.InvoicesByState[string(st)] = n
			d.Invoices += n
		}
		return nil
	})

	g.Go(func() error {
		counts, err := s.leads.CountByStatus(ctx, userID)
		if err != nil {
			return err
		}
		for st, n := range counts {
			d.LeadsByStatus[st] = n
			d.TotalLeads += n
		}
		return nil
	})

	g.Go(func() error {
		counts, err := s.tasks.CountByStatus(ctx, userID)
		if err != nil {
			return err
		}
		for st, n := range counts {
			if st == task.StatusCompleted {
				d.CompletedTasks += n
			} else {
				d.OpenTasks += n
			}
		}
		return nil
	})

	g.Go(func() error {
		n, err := s.team.Count(ctx, userID)
		if err != nil {
			return err
		}
		d.TeamMembers = n
		return nil
	})

	g.Go(func() error {
		counts, err := s.campaigns.CountByStatus(ctx, userID)
		if err != nil {
			return err
		}
		d.ActiveCampaigns = counts[campaign.StatusActive]
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorWithErr(err, "Failed to build dashboard")
		return nil, errors.PersistenceError(err)
	}
	d.Revenue = d.Revenue.Round(2)
	return d, nil
}
