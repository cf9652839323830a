package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one billed row of an invoice
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount,omitempty"`
}

// InvoiceClient is the billed party
type InvoiceClient struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

// CompanyInfo is the issuing business shown on the invoice
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Logo    string `json:"logo,omitempty"`
}

// PaymentInfo tells the client where to pay
type PaymentInfo struct {
	BankName      string `json:"bank_name"`
	AccountTitle  string `json:"account_title"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban"`
}

// InvoiceDraft is the editable form of an invoice
type InvoiceDraft struct {
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Client        InvoiceClient   `json:"client"`
	DueDate       string          `json:"due_date,omitempty"`
	Items         []LineItem      `json:"items"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	CompanyInfo   CompanyInfo     `json:"company_info"`
	PaymentInfo   PaymentInfo     `json:"payment_info"`
	Notes         string          `json:"notes,omitempty"`
	Terms         string          `json:"terms,omitempty"`
}

// Invoice is a saved invoice
type Invoice struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	ClientEmail   string          `json:"client_email"`
	ClientAddress string          `json:"client_address"`
	Amount        decimal.Decimal `json:"amount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	DueDate       string          `json:"due_date"`
	Items         []LineItem      `json:"items"`
	CompanyInfo   CompanyInfo     `json:"company_info"`
	PaymentInfo   PaymentInfo     `json:"payment_info"`
	Notes         string          `json:"notes"`
	Terms         string          `json:"terms"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvoiceTotals is the result of a stateless calculation
type InvoiceTotals struct {
	Items     []LineItem      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// Plan is one subscription tier. A negative limit means unlimited.
type Plan struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	PriceCents int64            `json:"price_cents"`
	Limits     map[string]int64 `json:"limits"`
	Highlights []string         `json:"highlights"`
}

// FeatureUsage is one metered feature against the plan limit
type FeatureUsage struct {
	Feature   string `json:"feature"`
	Used      int64  `json:"used"`
	Limit     int64  `json:"limit"`
	Unlimited bool   `json:"unlimited"`
	Allowed   bool   `json:"allowed"`
}

// TierStatus is the caller's plan and usage for the current period
type TierStatus struct {
	Tier     Plan           `json:"tier"`
	Period   string         `json:"period"`
	Features []FeatureUsage `json:"features"`
}

// Lead is a sales prospect
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Source    string    `json:"source,omitempty"`
	Status    string    `json:"status,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Task is a to-do item
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	DueDate     string    `json:"due_date,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// DashboardStats is the home screen summary
type DashboardStats struct {
	Revenue         decimal.Decimal `json:"revenue"`
	Invoices        int             `json:"invoices"`
	InvoicesByState map[string]int  `json:"invoices_by_status"`
	TotalLeads      int             `json:"total_leads"`
	LeadsByStatus   map[string]int  `json:"leads_by_status"`
	CompletedTasks  int             `json:"completed_tasks"`
	OpenTasks       int             `json:"open_tasks"`
	TeamMembers     int             `json:"team_members"`
}

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// Page is a paginated list response
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// File is a downloaded attachment
type File struct {
	Filename    string
	ContentType string
	// ArchiveKey is set when the server kept a copy in object storage.
	ArchiveKey string
	Data       []byte
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}
