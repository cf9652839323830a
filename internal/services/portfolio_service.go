package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/pratik-mahalle/bizdesk/internal/domain/portfolio"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugStrip   = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify turns a business name into a URL slug
func Slugify(name string) string {
	return strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// PortfolioService implements portfolio.Service
type PortfolioService struct {
	repo   portfolio.Repository
	logger *logger.Logger
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(repo portfolio.Repository, log *logger.Logger) portfolio.Service {
	return &PortfolioService{
		repo:   repo,
		logger: log,
	}
}

// Save creates or replaces the user's portfolio
func (s *PortfolioService) Save(ctx context.Context, p *portfolio.Portfolio) (*portfolio.Portfolio, error) {
	if p.UserID == 0 {
		return nil, errors.NotAuthenticated()
	}
	p.BusinessName = strings.TrimSpace(p.BusinessName)
	if p.BusinessName == "" {
		return nil, errors.ValidationError("Business name is required", nil)
	}

	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	if p.Slug == "" {
		p.Slug = Slugify(p.BusinessName)
	}
	if len(p.Slug) > 64 || !slugPattern.MatchString(p.Slug) {
		return nil, errors.BadRequest("Slug may only contain lowercase letters, digits and dashes")
	}

	if other, err := s.repo.GetBySlug(ctx, p.Slug); err == nil && other.UserID != p.UserID {
		return nil, errors.Conflict("This portfolio address is already taken")
	} else if err != nil && !errors.HasCode(err, errors.ErrCodeNotFound) {
		return nil, err
	}

	for i := range p.Testimonials {
		if r := p.Testimonials[i].Rating; r < 0 || r > 5 {
			return nil, errors.BadRequest("Testimonial rating must be between 0 and 5")
		}
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to save portfolio")
		return nil, storeError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":   p.UserID,
		"slug":      p.Slug,
		"is_public": p.IsPublic,
	}).Info("Portfolio saved")

	return p, nil
}

// GetMine returns the caller's portfolio whether or not it is published
func (s *PortfolioService) GetMine(ctx context.Context, userID int64) (*portfolio.Portfolio, error) {
	return s.repo.GetByUser(ctx, userID)
}

// GetPublic returns a published portfolio. Unpublished pages look missing.
func (s *PortfolioService) GetPublic(ctx context.Context, slug string) (*portfolio.Portfolio, error) {
	p, err := s.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if !p.IsPublic {
		return nil, errors.NotFound("Portfolio")
	}
	return p, nil
}
