package services

import (
	"context"
	"strings"
	"time"

	"github.com/pratik-mahalle/bizdesk/internal/domain/campaign"
	"github.com/pratik-mahalle/bizdesk/internal/domain/post"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
)

// CampaignService implements campaign.Service
type CampaignService struct {
	repo   campaign.Repository
	posts  post.Repository
	logger *logger.Logger
}

// NewCampaignService creates a new campaign service. Posts of a deleted
// campaign are detached through posts.
func NewCampaignService(repo campaign.Repository, posts post.Repository, log *logger.Logger) campaign.Service {
	return &CampaignService{
		repo:   repo,
		posts:  posts,
		logger: log,
	}
}

var campaignChannels = map[string]bool{
	campaign.ChannelEmail:   true,
	campaign.ChannelSocial:  true,
	campaign.ChannelAds:     true,
	campaign.ChannelContent: true,
	campaign.ChannelEvent:   true,
	campaign.ChannelOther:   true,
}

var campaignStatuses = map[string]bool{
	campaign.StatusDraft:     true,
	campaign.StatusActive:    true,
	campaign.StatusPaused:    true,
	campaign.StatusCompleted: true,
}

// parseDate accepts an empty string or a calendar date
func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(campaign.DateLayout, s)
	if err != nil {
		return time.Time{}, errors.BadRequest("Invalid " + field + ", expected YYYY-MM-DD")
	}
	return t, nil
}

func normalizeCampaign(c *campaign.Campaign) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return errors.ValidationError("Campaign name is required", nil)
	}
	if c.Status == "" {
		c.Status = campaign.StatusDraft
	}
	if !campaignStatuses[c.Status] {
		return errors.BadRequest("Invalid campaign status: " + c.Status)
	}
	if c.Channel == "" {
		c.Channel = campaign.ChannelOther
	}
	if !campaignChannels[c.Channel] {
		return errors.BadRequest("Invalid campaign channel: " + c.Channel)
	}
	if c.Budget.IsNegative() {
		return errors.BadRequest("Budget cannot be negative")
	}
	c.Budget = c.Budget.Round(2)

	start, err := parseDate(c.StartDate, "start date")
	if err != nil {
		return err
	}
	end, err := parseDate(c.EndDate, "end date")
	if err != nil {
		return err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return errors.BadRequest("End date cannot be before the start date")
	}
	return nil
}

// Create creates a campaign
func (s *CampaignService) Create(ctx context.Context, c *campaign.Campaign) (*campaign.Campaign, error) {
	if c.UserID == 0 {
		return nil, errors.NotAuthenticated()
	}
	if err := normalizeCampaign(c); err != nil {
		return nil, err
	}

	if _, err := s.repo.Create(ctx, c); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create campaign")
		return nil, storeError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"campaign_id": c.ID,
		"user_id":     c.UserID,
		"channel":     c.Channel,
	}).Info("Campaign created")

	return c, nil
}

// GetByID retrieves a campaign by ID
func (s *CampaignService) GetByID(ctx context.Context, userID int64, id int64) (*campaign.Campaign, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update replaces a campaign
func (s *CampaignService) Update(ctx context.Context, c *campaign.Campaign) (*campaign.Campaign, error) {
	existing, err := s.repo.GetByID(ctx, c.UserID, c.ID)
	if err != nil {
		return nil, err
	}
	if err := normalizeCampaign(c); err != nil {
		return nil, err
	}
	c.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update campaign")
		return nil, storeError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"campaign_id": c.ID,
		"status":      c.Status,
	}).Info("Campaign updated")

	return c, nil
}

// Delete removes a campaign. Its posts stay and lose their campaign.
func (s *CampaignService) Delete(ctx context.Context, userID int64, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	n, err := s.posts.DetachCampaign(ctx, userID, id)
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"campaign_id": id,
		}).Warn("Failed to detach posts of deleted campaign")
	}

	s.logger.WithFields(map[string]interface{}{
		"campaign_id": id,
		"detached":    n,
	}).Info("Campaign deleted")

	return nil
}

// List retrieves campaigns newest first
func (s *CampaignService) List(ctx context.Context, userID int64, filter campaign.Filter) ([]*campaign.Campaign, error) {
	if filter.Status != "" && !campaignStatuses[filter.Status] {
		return []*campaign.Campaign{}, errors.BadRequest("Invalid campaign status: " + filter.Status)
	}
	campaigns, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return []*campaign.Campaign{}, err
	}
	return campaigns, nil
}
