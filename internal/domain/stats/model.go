// Package stats describes the dashboard summary of a user's business.
package stats

import (
	"context"

	"github.com/shopspring/decimal"
)

// Dashboard holds the headline numbers shown after login
type Dashboard struct {
	Revenue         decimal.Decimal `json:"revenue"`
	Invoices        int             `json:"invoices"`
	InvoicesByState map[string]int  `json:"invoices_by_status"`
	TotalLeads      int             `json:"total_leads"`
	LeadsByStatus   map[string]int  `json:"leads_by_status"`
	CompletedTasks  int             `json:"completed_tasks"`
	OpenTasks       int             `json:"open_tasks"`
	TeamMembers     int             `json:"team_members"`
	ActiveCampaigns int             `json:"active_campaigns"`
}

// Service builds dashboards
type Service interface {
	Dashboard(ctx context.Context, userID int64) (*Dashboard, error)
}
