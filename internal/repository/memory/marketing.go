package memory

import (
	"context"

	"github.com/pratik-mahalle/bizdesk/internal/domain/campaign"
	"github.com/pratik-mahalle/bizdesk/internal/domain/post"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

// CampaignRepository is an in-memory campaign.Repository
type CampaignRepository struct {
	t *table[*campaign.Campaign]
}

func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{t: newTable(func(c *campaign.Campaign) *campaign.Campaign {
		cp := *c
		return &cp
	})}
}

func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) (int64, error) {
	ts := now()
	c.CreatedAt = ts
	c.UpdatedAt = ts
	return r.t.insert(func(id int64) *campaign.Campaign {
		c.ID = id
		return c
	}), nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, userID int64, id int64) (*campaign.Campaign, error) {
	c, ok := r.t.get(id, func(c *campaign.Campaign) bool { return c.UserID == userID })
	if !ok {
		return nil, errors.NotFound("Campaign")
	}
	return c, nil
}

func (r *CampaignRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	c.UpdatedAt = now()
	if !r.t.replace(c.ID, c, func(old *campaign.Campaign) bool { return old.UserID == c.UserID }) {
		return errors.NotFound("Campaign")
	}
	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, userID int64, id int64) error {
	if !r.t.remove(id, func(c *campaign.Campaign) bool { return c.UserID == userID }) {
		return errors.NotFound("Campaign")
	}
	return nil
}

func (r *CampaignRepository) List(ctx context.Context, userID int64, filter campaign.Filter) ([]*campaign.Campaign, error) {
	return r.t.filter(
		func(c *campaign.Campaign) bool { return c.UserID == userID && filter.Matches(c) },
		func(a, b *campaign.Campaign) bool { return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID) },
	), nil
}

func (r *CampaignRepository) CountByStatus(ctx context.Context, userID int64) (map[string]int, error) {
	counts := make(map[string]int)
	for _, c := range r.t.filter(func(c *campaign.Campaign) bool { return c.UserID == userID }, nil) {
		counts[c.Status]++
	}
	return counts, nil
}

// PostRepository is an in-memory post.Repository
type PostRepository struct {
	t *table[*post.Post]
}

func NewPostRepository() *PostRepository {
	return &PostRepository{t: newTable(func(p *post.Post) *post.Post {
		cp := *p
		return &cp
	})}
}

func (r *PostRepository) Create(ctx context.Context, p *post.Post) (int64, error) {
	ts := now()
	p.CreatedAt = ts
	p.UpdatedAt = ts
	return r.t.insert(func(id int64) *post.Post {
		p.ID = id
		return p
	}), nil
}

func (r *PostRepository) GetByID(ctx context.Context, userID int64, id int64) (*post.Post, error) {
	p, ok := r.t.get(id, func(p *post.Post) bool { return p.UserID == userID })
	if !ok {
		return nil, errors.NotFound("Post")
	}
	return p, nil
}

func (r *PostRepository) Update(ctx context.Context, p *post.Post) error {
	p.UpdatedAt = now()
	if !r.t.replace(p.ID, p, func(old *post.Post) bool { return old.UserID == p.UserID }) {
		return errors.NotFound("Post")
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, userID int64, id int64) error {
	if !r.t.remove(id, func(p *post.Post) bool { return p.UserID == userID }) {
		return errors.NotFound("Post")
	}
	return nil
}

func (r *PostRepository) List(ctx context.Context, userID int64, filter post.Filter) ([]*post.Post, error) {
	return r.t.filter(
		func(p *post.Post) bool { return p.UserID == userID && filter.Matches(p) },
		func(a, b *post.Post) bool { return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID) },
	), nil
}

func (r *PostRepository) DetachCampaign(ctx context.Context, userID int64, campaignID int64) (int64, error) {
	ts := now()
	return r.t.mutate(func(_ int64, p **post.Post) bool {
		if (*p).UserID != userID || (*p).CampaignID != campaignID {
			return false
		}
		cp := **p
		cp.CampaignID = 0
		cp.UpdatedAt = ts
		*p = &cp
		return true
	}), nil
}
