package lead

import (
	"strings"
	"time"
)

// Lead is a prospective customer tracked in the CRM
type Lead struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lead sources
const (
	SourceWebsite  = "website"
	SourceReferral = "referral"
	SourceSocial   = "social"
	SourceEmail    = "email"
	SourcePhone    = "phone"
	SourceEvent    = "event"
	SourceOther    = "other"
)

// Lead status
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

// FilterAll disables a filter dimension
const FilterAll = "all"

// Filter contains lead filtering options. Empty or "all" values match everything.
type Filter struct {
	Search string
	Status string
	Source string
}

// Matches reports whether l passes the filter. Search is a case-insensitive
// substring match over name, email and company.
func (f Filter) Matches(l *Lead) bool {
	if f.Status != "" && f.Status != FilterAll && l.Status != f.Status {
		return false
	}
	if f.Source != "" && f.Source != FilterAll && l.Source != f.Source {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), q) ||
		strings.Contains(strings.ToLower(l.Email), q) ||
		strings.Contains(strings.ToLower(l.Company), q)
}

// Summary counts leads per status
type Summary struct {
	Total  int            `json:"total"`
	Status map[string]int `json:"by_status"`
}
