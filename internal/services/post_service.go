package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/bizdesk/internal/domain/campaign"
	"github.com/pratik-mahalle/bizdesk/internal/domain/post"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
)

// PostService implements post.Service
type PostService struct {
	repo      post.Repository
	campaigns campaign.Repository
	logger    *logger.Logger
}

// NewPostService creates a new post service
func NewPostService(repo post.Repository, campaigns campaign.Repository, log *logger.Logger) post.Service {
	return &PostService{
		repo:      repo,
		campaigns: campaigns,
		logger:    log,
	}
}

var postPlatforms = map[string]bool{
	post.PlatformBlog:       true,
	post.PlatformLinkedIn:   true,
	post.PlatformTwitter:    true,
	post.PlatformFacebook:   true,
	post.PlatformInstagram:  true,
	post.PlatformNewsletter: true,
}

func normalizePost(p *post.Post) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return errors.ValidationError("Post title is required", nil)
	}
	if p.Platform == "" {
		p.Platform = post.PlatformBlog
	}
	if !postPlatforms[p.Platform] {
		return errors.BadRequest("Invalid platform: " + p.Platform)
	}

	switch p.Status {
	case "":
		p.Status = post.StatusDraft
	case post.StatusDraft, post.StatusScheduled, post.StatusPublished:
	default:
		return errors.BadRequest("Invalid post status: " + p.Status)
	}

	if _, err := parseDate(p.ScheduledFor, "schedule date"); err != nil {
		return err
	}
	if p.Status == post.StatusScheduled && p.ScheduledFor == "" {
		return errors.ValidationError("Scheduled posts need a date", nil)
	}
	return nil
}

// checkCampaign makes sure a referenced campaign belongs to the user
func (s *PostService) checkCampaign(ctx context.Context, p *post.Post) error {
	if p.CampaignID == 0 {
		return nil
	}
	_, err := s.campaigns.GetByID(ctx, p.UserID, p.CampaignID)
	if errors.HasCode(err, errors.ErrCodeNotFound) {
		return errors.BadRequest("Campaign not found")
	}
	return err
}

// Create creates a post
func (s *PostService) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if p.UserID == 0 {
		return nil, errors.NotAuthenticated()
	}
	if err := normalizePost(p); err != nil {
		return nil, err
	}
	if err := s.checkCampaign(ctx, p); err != nil {
		return nil, err
	}

	if _, err := s.repo.Create(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create post")
		return nil, storeError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"post_id":     p.ID,
		"user_id":     p.UserID,
		"campaign_id": p.CampaignID,
		"platform":    p.Platform,
	}).Info("Post created")

	return p, nil
}

// GetByID retrieves a post by ID
func (s *PostService) GetByID(ctx context.Context, userID int64, id int64) (*post.Post, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update replaces a post
func (s *PostService) Update(ctx context.Context, p *post.Post) (*post.Post, error) {
	existing, err := s.repo.GetByID(ctx, p.UserID, p.ID)
	if err != nil {
		return nil, err
	}
	if err := normalizePost(p); err != nil {
		return nil, err
	}
	if err := s.checkCampaign(ctx, p); err != nil {
		return nil, err
	}
	p.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update post")
		return nil, storeError(err)
	}
	return p, nil
}

// Delete deletes a post
func (s *PostService) Delete(ctx context.Context, userID int64, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

// List retrieves posts newest first
func (s *PostService) List(ctx context.Context, userID int64, filter post.Filter) ([]*post.Post, error) {
	posts, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return []*post.Post{}, err
	}
	return posts, nil
}
