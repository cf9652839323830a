package post

import "context"

// Service defines the interface for post business logic
type Service interface {
	Create(ctx context.Context, p *Post) (*Post, error)
	GetByID(ctx context.Context, userID int64, id int64) (*Post, error)
	Update(ctx context.Context, p *Post) (*Post, error)
	Delete(ctx context.Context, userID int64, id int64) error
	List(ctx context.Context, userID int64, filter Filter) ([]*Post, error)
}
