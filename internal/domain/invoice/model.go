package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a stored invoice
type Status string

// Invoice statuses
const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// DueDateLayout is the storage format of due dates
const DueDateLayout = "2006-01-02"

// LineItem is one billable row. Amount is derived from Quantity and Rate.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Rate        decimal.Decimal `json:"rate" validate:"gte=0"`
	Amount      decimal.Decimal `json:"amount"`
}

// Client identifies who is billed
type Client struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address"`
}

// CompanyInfo is the issuer block printed on the invoice
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	// Logo is an image encoded as a data URI.
	Logo string `json:"logo,omitempty"`
}

// PaymentInfo carries bank transfer details
type PaymentInfo struct {
	BankName      string `json:"bank_name"`
	AccountTitle  string `json:"account_title"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban"`
}

// Draft is an invoice under edit. It is owned by a single editing session.
type Draft struct {
	InvoiceNumber string          `json:"invoice_number"`
	Client        Client          `json:"client"`
	DueDate       string          `json:"due_date"`
	Items         []LineItem      `json:"items" validate:"min=1,dive"`
	TaxRate       decimal.Decimal `json:"tax_rate" validate:"gte=0,lte=100"`
	CompanyInfo   CompanyInfo     `json:"company_info"`
	PaymentInfo   PaymentInfo     `json:"payment_info"`
	Notes         string          `json:"notes"`
	Terms         string          `json:"terms"`
}

// Totals are the derived monetary fields of a draft
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// Invoice is the persisted form of a draft
type Invoice struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
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
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Subtotal is the stored total minus tax
func (inv *Invoice) Subtotal() decimal.Decimal {
	return inv.Amount.Sub(inv.TaxAmount)
}

// Draft converts a stored invoice back into an editable draft
func (inv *Invoice) Draft() *Draft {
	items := make([]LineItem, len(inv.Items))
	copy(items, inv.Items)
	return &Draft{
		InvoiceNumber: inv.InvoiceNumber,
		Client: Client{
			Name:    inv.ClientName,
			Email:   inv.ClientEmail,
			Address: inv.ClientAddress,
		},
		DueDate:     inv.DueDate,
		Items:       items,
		TaxRate:     inv.TaxRate,
		CompanyInfo: inv.CompanyInfo,
		PaymentInfo: inv.PaymentInfo,
		Notes:       inv.Notes,
		Terms:       inv.Terms,
	}
}

// IsOverdue reports whether a sent invoice has passed its due date on day asOf
func (inv *Invoice) IsOverdue(asOf time.Time) bool {
	if inv.Status != StatusSent || inv.DueDate == "" {
		return false
	}
	if _, err := time.Parse(DueDateLayout, inv.DueDate); err != nil {
		return false
	}
	return inv.DueDate < asOf.Format(DueDateLayout)
}

// Filter narrows invoice listings
type Filter struct {
	Status Status
	Search string
}
