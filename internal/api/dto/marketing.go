package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/bizdesk/internal/domain/campaign"
	"github.com/pratik-mahalle/bizdesk/internal/domain/post"
)

// CampaignRequest creates or replaces a campaign
type CampaignRequest struct {
	Name        string          `json:"name" validate:"required,max=160"`
	Description string          `json:"description" validate:"max=4000"`
	Channel     string          `json:"channel" validate:"omitempty,oneof=email social ads content event other"`
	Status      string          `json:"status" validate:"omitempty,oneof=draft active paused completed"`
	Budget      decimal.Decimal `json:"budget" validate:"gte=0"`
	StartDate   string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// ToCampaign builds a campaign owned by userID
func (r *CampaignRequest) ToCampaign(userID int64) *campaign.Campaign {
	return &campaign.Campaign{
		UserID:      userID,
		Name:        r.Name,
		Description: r.Description,
		Channel:     r.Channel,
		Status:      r.Status,
		Budget:      r.Budget,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// PostRequest creates or replaces a post
type PostRequest struct {
	CampaignID   int64  `json:"campaign_id" validate:"gte=0"`
	Title        string `json:"title" validate:"required,max=200"`
	Content      string `json:"content" validate:"max=20000"`
	Platform     string `json:"platform" validate:"omitempty,oneof=blog linkedin twitter facebook instagram newsletter"`
	Status       string `json:"status" validate:"omitempty,oneof=draft scheduled published"`
	ScheduledFor string `json:"scheduled_for" validate:"omitempty,datetime=2006-01-02"`
}

// ToPost builds a post owned by userID
func (r *PostRequest) ToPost(userID int64) *post.Post {
	return &post.Post{
		UserID:       userID,
		CampaignID:   r.CampaignID,
		Title:        r.Title,
		Content:      r.Content,
		Platform:     r.Platform,
		Status:       r.Status,
		ScheduledFor: r.ScheduledFor,
	}
}
