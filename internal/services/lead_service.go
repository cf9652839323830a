package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
)

// LeadService implements lead.Service
type LeadService struct {
	repo   lead.Repository
	tiers  tier.Service
	logger *logger.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(repo lead.Repository, tiers tier.Service, log *logger.Logger) lead.Service {
	return &LeadService{
		repo:   repo,
		tiers:  tiers,
		logger: log,
	}
}

var leadStatuses = map[string]bool{
	lead.StatusNew:       true,
	lead.StatusContacted: true,
	lead.StatusQualified: true,
	lead.StatusConverted: true,
	lead.StatusLost:      true,
}

func normalizeLead(l *lead.Lead) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Email = strings.TrimSpace(l.Email)
	if l.Name == "" || l.Email == "" {
		return errors.ValidationError("Please fill in name and email", nil)
	}
	if l.Status == "" {
		l.Status = lead.StatusNew
	}
	if !leadStatuses[l.Status] {
		return errors.BadRequest("Invalid lead status: " + l.Status)
	}
	if l.Source == "" {
		l.Source = lead.SourceOther
	}
	return nil
}

// Create creates a new lead. The plan caps how many leads a user holds.
func (s *LeadService) Create(ctx context.Context, l *lead.Lead) (*lead.Lead, error) {
	if l.UserID == 0 {
		return nil, errors.NotAuthenticated()
	}
	if err := normalizeLead(l); err != nil {
		return nil, err
	}

	gate, err := s.tiers.GateFor(ctx, l.UserID)
	if err != nil {
		return nil, err
	}
	if err := checkFeature(ctx, gate, tier.FeatureLeads, s.logger); err != nil {
		return nil, err
	}

	if _, err := s.repo.Create(ctx, l); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create lead")
		return nil, storeError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"lead_id": l.ID,
		"user_id": l.UserID,
		"source":  l.Source,
	}).Info("Lead created")

	return l, nil
}

// GetByID retrieves a lead by ID
func (s *LeadService) GetByID(ctx context.Context, userID int64, id int64) (*lead.Lead, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update replaces a lead
func (s *LeadService) Update(ctx context.Context, l *lead.Lead) (*lead.Lead, error) {
	existing, err := s.repo.GetByID(ctx, l.UserID, l.ID)
	if err != nil {
		return nil, err
	}
	if err := normalizeLead(l); err != nil {
		return nil, err
	}
	l.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update lead")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"lead_id": l.ID,
		"status":  l.Status,
	}).Info("Lead updated")

	return l, nil
}

// Delete deletes a lead
func (s *LeadService) Delete(ctx context.Context, userID int64, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"lead_id": id,
	}).Info("Lead deleted")

	return nil
}

// List retrieves leads with filters
func (s *LeadService) List(ctx context.Context, userID int64, filter lead.Filter) ([]*lead.Lead, error) {
	leads, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return []*lead.Lead{}, err
	}
	return leads, nil
}

// GetSummary counts leads per status
func (s *LeadService) GetSummary(ctx context.Context, userID int64) (*lead.Summary, error) {
	counts, err := s.repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum := &lead.Summary{Status: counts}
	for _, n := range counts {
		sum.Total += n
	}
	return sum, nil
}
