// Package campaign tracks marketing campaigns and their budgets.
package campaign

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format of start and end dates
const DateLayout = "2006-01-02"

// Campaign is a marketing push over a date range on one channel
type Campaign struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Channel     string          `json:"channel"`
	Status      string          `json:"status"`
	Budget      decimal.Decimal `json:"budget"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Channels
const (
	ChannelEmail   = "email"
	ChannelSocial  = "social"
	ChannelAds     = "ads"
	ChannelContent = "content"
	ChannelEvent   = "event"
	ChannelOther   = "other"
)

// Campaign status
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// Filter contains campaign filtering options. Empty values match everything.
type Filter struct {
	Status  string
	Channel string
}

// Matches reports whether c passes the filter
func (f Filter) Matches(c *Campaign) bool {
	return (f.Status == "" || c.Status == f.Status) &&
		(f.Channel == "" || c.Channel == f.Channel)
}
