package post

import "context"

// Repository defines the interface for post data access
type Repository interface {
	Create(ctx context.Context, p *Post) (int64, error)
	GetByID(ctx context.Context, userID int64, id int64) (*Post, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, userID int64, id int64) error
	// List returns posts newest first
	List(ctx context.Context, userID int64, filter Filter) ([]*Post, error)
	// DetachCampaign clears the campaign of every post that belongs to it
	DetachCampaign(ctx context.Context, userID int64, campaignID int64) (int64, error)
}
