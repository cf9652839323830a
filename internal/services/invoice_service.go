package services

import (
	"context"
	"io"
	"time"

	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/metrics"
)

// PDFContentType is the media type of rendered invoices
const PDFContentType = "application/pdf"

// InvoiceService implements invoice.Service
type InvoiceService struct {
	repo     invoice.Repository
	tiers    tier.Service
	renderer invoice.Renderer
	archive  invoice.Archive
	prefix   string
	logger   *logger.Logger
	now      func() time.Time
}

// NewInvoiceService creates a new invoice service. archive may be nil, in
// which case exported documents are not kept.
func NewInvoiceService(
	repo invoice.Repository,
	tiers tier.Service,
	renderer invoice.Renderer,
	archive invoice.Archive,
	prefix string,
	log *logger.Logger,
) invoice.Service {
	if prefix == "" {
		prefix = invoice.DefaultNumberPrefix
	}
	return &InvoiceService{
		repo:     repo,
		tiers:    tiers,
		renderer: renderer,
		archive:  archive,
		prefix:   prefix,
		logger:   log,
		now:      time.Now,
	}
}

// Save persists a new invoice built from the draft.
//
// The gate runs first and validation second; neither touches the store on
// failure. Usage is recorded only once the record exists.
func (s *InvoiceService) Save(ctx context.Context, userID int64, d *invoice.Draft) (*invoice.Invoice, error) {
	if userID == 0 {
		return nil, errors.NotAuthenticated()
	}
	if d == nil {
		return nil, errors.BadRequest("Invoice draft is required")
	}

	gate, err := s.tiers.GateFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkFeature(ctx, gate, tier.FeatureInvoices, s.logger); err != nil {
		return nil, err
	}

	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	inv := d.ToStored(userID, s.prefix, s.now())
	if _, err := s.repo.Create(ctx, inv); err != nil {
		s.logger.ErrorWithErr(err, "Failed to save invoice")
		return nil, storeError(err)
	}

	recordUsage(ctx, gate, tier.FeatureInvoices, s.logger)
	metrics.RecordInvoiceSaved(string(gate.GetCurrentTier()))

	s.logger.WithFields(map[string]interface{}{
		"invoice_id":     inv.ID,
		"invoice_number": inv.InvoiceNumber,
		"user_id":        userID,
		"amount":         inv.Amount.StringFixed(2),
	}).Info("Invoice saved")

	return inv, nil
}

// Get retrieves an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, userID int64, id int64) (*invoice.Invoice, error) {
	if userID == 0 {
		return nil, errors.NotAuthenticated()
	}
	return s.repo.GetByID(ctx, userID, id)
}

// Update replaces an invoice with the draft's contents. Amount and tax are
// derived again from the items.
func (s *InvoiceService) Update(ctx context.Context, userID int64, id int64, d *invoice.Draft) (*invoice.Invoice, error) {
	if userID == 0 {
		return nil, errors.NotAuthenticated()
	}
	if d == nil {
		return nil, errors.BadRequest("Invoice draft is required")
	}

	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	d.ApplyTo(inv)

	if err := s.repo.Update(ctx, inv); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update invoice")
		return nil, storeError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"invoice_id": inv.ID,
		"user_id":    userID,
	}).Info("Invoice updated")

	return inv, nil
}

// UpdateStatus moves an invoice to a new status
func (s *InvoiceService) UpdateStatus(ctx context.Context, userID int64, id int64, status invoice.Status) error {
	if userID == 0 {
		return errors.NotAuthenticated()
	}
	if !status.Valid() {
		return errors.BadRequest("Invalid invoice status: " + string(status))
	}

	if err := s.repo.UpdateStatus(ctx, userID, id, status); err != nil {
		if !errors.HasCode(err, errors.ErrCodeNotFound) {
			s.logger.ErrorWithErr(err, "Failed to update invoice status")
		}
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"invoice_id": id,
		"status":     status,
	}).Info("Invoice status updated")

	return nil
}

// Delete deletes an invoice
func (s *InvoiceService) Delete(ctx context.Context, userID int64, id int64) error {
	if userID == 0 {
		return errors.NotAuthenticated()
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"invoice_id": id,
		"user_id":    userID,
	}).Info("Invoice deleted")

	return nil
}

// List returns the user's invoices, newest first. The slice is never nil,
// so callers must look at the error to tell failure from an empty account.
func (s *InvoiceService) List(ctx context.Context, userID int64, filter invoice.Filter) ([]*invoice.Invoice, error) {
	if userID == 0 {
		return []*invoice.Invoice{}, errors.NotAuthenticated()
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return []*invoice.Invoice{}, errors.BadRequest("Invalid invoice status: " + string(filter.Status))
	}

	invoices, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list invoices")
		return []*invoice.Invoice{}, errors.PersistenceError(err)
	}
	if invoices == nil {
		invoices = []*invoice.Invoice{}
	}
	return invoices, nil
}

// ExportCSV writes every invoice of the user as CSV
func (s *InvoiceService) ExportCSV(ctx context.Context, userID int64, w io.Writer) error {
	invoices, err := s.List(ctx, userID, invoice.Filter{})
	if err != nil {
		return err
	}
	if err := invoice.ExportCSV(w, invoices); err != nil {
		return errors.Internal("Failed to write CSV", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"rows":    len(invoices),
	}).Info("Invoices exported to CSV")

	return nil
}

// ExportPDF renders a stored invoice
func (s *InvoiceService) ExportPDF(ctx context.Context, userID int64, id int64) (*invoice.Document, error) {
	if userID == 0 {
		return nil, errors.NotAuthenticated()
	}
	gate, err := s.tiers.GateFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkFeature(ctx, gate, tier.FeaturePDFExports, s.logger); err != nil {
		return nil, err
	}

	inv, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, gate, inv)
}

// PreviewPDF renders an unsaved draft. It is metered like any other export.
func (s *InvoiceService) PreviewPDF(ctx context.Context, userID int64, d *invoice.Draft) (*invoice.Document, error) {
	if userID == 0 {
		return nil, errors.NotAuthenticated()
	}
	if d == nil {
		return nil, errors.BadRequest("Invoice draft is required")
	}
	gate, err := s.tiers.GateFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkFeature(ctx, gate, tier.FeaturePDFExports, s.logger); err != nil {
		return nil, err
	}

	inv := d.Snapshot()
	inv.UserID = userID
	return s.render(ctx, gate, inv)
}

func (s *InvoiceService) render(ctx context.Context, gate *tier.Gate, inv *invoice.Invoice) (*invoice.Document, error) {
	data, err := s.renderer.Render(inv)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to render invoice")
		return nil, errors.Internal("Failed to render PDF", err)
	}

	doc := &invoice.Document{
		Filename:    invoice.PDFFilename(inv.InvoiceNumber),
		ContentType: PDFContentType,
		Data:        data,
	}

	if s.archive != nil {
		key, err := s.archive.Put(ctx, inv.UserID, doc)
		if err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"filename": doc.Filename,
			}).Warn("Failed to archive PDF")
		} else {
			doc.ArchiveKey = key
		}
	}

	recordUsage(ctx, gate, tier.FeaturePDFExports, s.logger)

	s.logger.WithFields(map[string]interface{}{
		"user_id":  inv.UserID,
		"filename": doc.Filename,
		"bytes":    len(data),
	}).Info("Invoice exported to PDF")

	return doc, nil
}

// MarkOverdue flags sent invoices whose due date passed before asOf
func (s *InvoiceService) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	n, err := s.repo.MarkOverdue(ctx, asOf.UTC().Format(invoice.DueDateLayout))
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to mark overdue invoices")
		return 0, err
	}
	if n > 0 {
		s.logger.WithFields(map[string]interface{}{
			"count": n,
			"as_of": asOf.Format(invoice.DueDateLayout),
		}).Info("Invoices marked overdue")
	}
	return n, nil
}
