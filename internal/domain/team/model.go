package team

import "time"

// Member is a person invited to help run the business
type Member struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Member roles
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Member status
const (
	StatusActive   = "active"
	StatusPending  = "pending"
	StatusInactive = "inactive"
)

// Permission areas
const (
	PermTasks     = "tasks"
	PermCampaigns = "campaigns"
	PermInvoices  = "invoices"
	PermLeads     = "leads"
	PermAnalytics = "analytics"
	PermSettings  = "settings"
)

// Permissions lists every grantable area
var Permissions = []string{PermTasks, PermCampaigns, PermInvoices, PermLeads, PermAnalytics, PermSettings}

// HasPermission reports whether the member was granted area p
func (m *Member) HasPermission(p string) bool {
	if m.Role == RoleOwner {
		return true
	}
	for _, g := range m.Permissions {
		if g == p {
			return true
		}
	}
	return false
}
