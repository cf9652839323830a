package invoice

import (
	"context"
	"io"
	"strings"
	"time"
)

// Document is a rendered export ready for download
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
	// ArchiveKey is the object key of the archived copy, if one was stored.
	ArchiveKey string
}

// Service defines the interface for invoice business logic
type Service interface {
	// Save persists a new invoice built from the draft
	Save(ctx context.Context, userID int64, d *Draft) (*Invoice, error)

	// Get retrieves an invoice by ID
	Get(ctx context.Context, userID int64, id int64) (*Invoice, error)

	// Update replaces an invoice with the draft's contents
	Update(ctx context.Context, userID int64, id int64, d *Draft) (*Invoice, error)

	// UpdateStatus moves an invoice to a new status
	UpdateStatus(ctx context.Context, userID int64, id int64, status Status) error

	// Delete deletes an invoice
	Delete(ctx context.Context, userID int64, id int64) error

	// List returns a user's invoices, newest first. On failure the slice is
	// empty and non-nil.
	List(ctx context.Context, userID int64, filter Filter) ([]*Invoice, error)

	// ExportCSV writes the user's invoices as CSV
	ExportCSV(ctx context.Context, userID int64, w io.Writer) error

	// ExportPDF renders a stored invoice
	ExportPDF(ctx context.Context, userID int64, id int64) (*Document, error)

	// PreviewPDF renders an unsaved draft
	PreviewPDF(ctx context.Context, userID int64, d *Draft) (*Document, error)

	// MarkOverdue flags sent invoices whose due date passed before asOf
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// Renderer produces a paginated document of an invoice
type Renderer interface {
	Render(inv *Invoice) ([]byte, error)
}

// Archive keeps a copy of exported documents
type Archive interface {
	Put(ctx context.Context, userID int64, doc *Document) (string, error)
}

// PDFFilename returns invoice-<number>.pdf, or invoice-draft.pdf when number is blank
func PDFFilename(number string) string {
	if number == "" {
		number = "draft"
	}
	number = strings.NewReplacer("/", "-", "\\", "-", "\"", "").Replace(number)
	return "invoice-" + number + ".pdf"
}
