package client

import (
	"context"
	"fmt"
	"net/url"
)

// InvoiceService handles invoice-related API calls
type InvoiceService struct {
	client *Client
}

// InvoiceListOptions filters the invoice list
type InvoiceListOptions struct {
	Status string // draft, sent, paid, overdue or "" for all
	Search string
}

// List retrieves the caller's invoices, newest first
func (s *InvoiceService) List(ctx context.Context, opts *InvoiceListOptions) ([]Invoice, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
		if opts.Search != "" {
			query.Set("search", opts.Search)
		}
	}

	path := apiPrefix + "/invoices"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var resp struct {
		Invoices []Invoice `json:"invoices"`
		Total    int       `json:"total"`
	}
	if err := s.client.doRequest(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Invoices, nil
}

// Get retrieves a single invoice
func (s *InvoiceService) Get(ctx context.Context, id int64) (*Invoice, error) {
	var inv Invoice
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("%s/invoices/%d", apiPrefix, id), nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create saves a draft as a new invoice
func (s *InvoiceService) Create(ctx context.Context, draft InvoiceDraft) (*Invoice, error) {
	var inv Invoice
	if err := s.client.doRequest(ctx, "POST", apiPrefix+"/invoices", draft, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Calculate returns the totals of a draft without saving it
func (s *InvoiceService) Calculate(ctx context.Context, draft InvoiceDraft) (*InvoiceTotals, error) {
	var totals InvoiceTotals
	if err := s.client.doRequest(ctx, "POST", apiPrefix+"/invoices/calculate", draft, &totals); err != nil {
		return nil, err
	}
	return &totals, nil
}

// UpdateStatus moves an invoice to a new status
func (s *InvoiceService) UpdateStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	return s.client.doRequest(ctx, "PATCH", fmt.Sprintf("%s/invoices/%d/status", apiPrefix, id), body, nil)
}

// Delete removes an invoice
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("%s/invoices/%d", apiPrefix, id), nil, nil)
}

// ExportCSV downloads every invoice as a CSV file
func (s *InvoiceService) ExportCSV(ctx context.Context) (*File, error) {
	return s.client.download(ctx, "GET", apiPrefix+"/invoices/export.csv", nil)
}

// PDF downloads the PDF rendition of a saved invoice
func (s *InvoiceService) PDF(ctx context.Context, id int64) (*File, error) {
	return s.client.download(ctx, "GET", fmt.Sprintf("%s/invoices/%d/pdf", apiPrefix, id), nil)
}

// Preview renders an unsaved draft as PDF
func (s *InvoiceService) Preview(ctx context.Context, draft InvoiceDraft) (*File, error) {
	return s.client.download(ctx, "POST", apiPrefix+"/invoices/preview.pdf", draft)
}
