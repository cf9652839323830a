// Package post holds marketing content, optionally grouped under a campaign.
package post

import "time"

// Post is a piece of content for one platform
type Post struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	CampaignID   int64     `json:"campaign_id,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Platform     string    `json:"platform"`
	Status       string    `json:"status"`
	ScheduledFor string    `json:"scheduled_for,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Platforms
const (
	PlatformBlog       = "blog"
	PlatformLinkedIn   = "linkedin"
	PlatformTwitter    = "twitter"
	PlatformFacebook   = "facebook"
	PlatformInstagram  = "instagram"
	PlatformNewsletter = "newsletter"
)

// Post status
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
)

// Filter contains post filtering options. Empty values match everything;
// CampaignID 0 matches posts of any campaign.
type Filter struct {
	Status     string
	Platform   string
	CampaignID int64
}

// Matches reports whether p passes the filter
func (f Filter) Matches(p *Post) bool {
	return (f.Status == "" || p.Status == f.Status) &&
		(f.Platform == "" || p.Platform == f.Platform) &&
		(f.CampaignID == 0 || p.CampaignID == f.CampaignID)
}
