package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
)

// InvoiceDraftRequest is the body of create, update, calculate and preview
// calls. Size limits and negative numbers are rejected here; the invoice
// service validates content after the feature gate.
type InvoiceDraftRequest struct {
	InvoiceNumber string               `json:"invoice_number" validate:"max=64"`
	Client        ClientRequest        `json:"client"`
	DueDate       string               `json:"due_date" validate:"max=10"`
	Items         []InvoiceItemRequest `json:"items" validate:"max=200,dive"`
	TaxRate       decimal.Decimal      `json:"tax_rate" validate:"gte=0,lte=100"`
	CompanyInfo   invoice.CompanyInfo  `json:"company_info"`
	PaymentInfo   invoice.PaymentInfo  `json:"payment_info"`
	Notes         string               `json:"notes" validate:"max=4000"`
	Terms         string               `json:"terms" validate:"max=4000"`
}

// ClientRequest is the billed party of a draft request
type ClientRequest struct {
	Name    string `json:"name" validate:"max=160"`
	Email   string `json:"email" validate:"max=254"`
	Address string `json:"address" validate:"max=500"`
}

// InvoiceItemRequest is one line item of a draft request
type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"max=500"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Rate        decimal.Decimal `json:"rate" validate:"gte=0"`
}

// ToDraft converts the request into a draft with derived item amounts
func (r *InvoiceDraftRequest) ToDraft() *invoice.Draft {
	items := make([]invoice.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, invoice.NewLineItem(it.Description, it.Quantity, it.Rate))
	}
	d := &invoice.Draft{
		InvoiceNumber: r.InvoiceNumber,
		Client:        invoice.Client(r.Client),
		DueDate:       r.DueDate,
		Items:         items,
		TaxRate:       r.TaxRate,
		CompanyInfo:   r.CompanyInfo,
		PaymentInfo:   r.PaymentInfo,
		Notes:         r.Notes,
		Terms:         r.Terms,
	}
	return d
}

// InvoiceTotalsResponse is returned by the calculate endpoint
type InvoiceTotalsResponse struct {
	Items     []invoice.LineItem `json:"items"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	TaxRate   decimal.Decimal    `json:"tax_rate"`
	TaxAmount decimal.Decimal    `json:"tax_amount"`
	Total     decimal.Decimal    `json:"total"`
}

// NewInvoiceTotalsResponse computes the totals of d
func NewInvoiceTotalsResponse(d *invoice.Draft) InvoiceTotalsResponse {
	t := d.RecomputeTotals()
	return InvoiceTotalsResponse{
		Items:     d.Items,
		Subtotal:  t.Subtotal,
		TaxRate:   d.TaxRate,
		TaxAmount: t.TaxAmount,
		Total:     t.Total,
	}
}

// InvoiceStatusRequest changes the status of a stored invoice
type InvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid overdue"`
}

// InvoiceListResponse wraps a listing with its count
type InvoiceListResponse struct {
	Invoices []*invoice.Invoice `json:"invoices"`
	Total    int                `json:"total"`
}
