// Package pdf renders invoices as paginated A4 documents.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/metrics"
)

// ContentType of rendered documents
const ContentType = "application/pdf"

const (
	margin     = 15.0
	lineHeight = 6.0
	// Column widths of the item table; they add up to the printable width.
	colDesc   = 95.0
	colQty    = 20.0
	colRate   = 30.0
	colAmount = 35.0
)

// Renderer implements invoice.Renderer with gofpdf
type Renderer struct {
	// Title printed in the header, "INVOICE" when empty
	Title string
}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{Title: "INVOICE"}
}

// Render produces the document bytes
func (r *Renderer) Render(inv *invoice.Invoice) ([]byte, error) {
	start := time.Now()
	pdf := r.build(inv)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		metrics.RecordPDFExport("error", time.Since(start))
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	metrics.RecordPDFExport("ok", time.Since(start))
	return buf.Bytes(), nil
}

func (r *Renderer) build(inv *invoice.Invoice) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(invoice.PDFFilename(inv.InvoiceNumber), true)
	pdf.SetCreator("bizdesk", true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	r.header(pdf, tr, inv)
	parties(pdf, tr, inv)
	itemTable(pdf, tr, inv)
	totals(pdf, inv)
	footnotes(pdf, tr, inv)

	return pdf
}

func (r *Renderer) header(pdf *gofpdf.Fpdf, tr func(string) string, inv *invoice.Invoice) {
	top := pdf.GetY()
	if name, ok := registerLogo(pdf, inv.CompanyInfo.Logo); ok {
		pdf.ImageOptions(name, margin, top, 0, 18, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	}

	title := r.Title
	if title == "" {
		title = "INVOICE"
	}
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(margin, top)
	pdf.CellFormat(0, 10, tr(title), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	number := inv.InvoiceNumber
	if number == "" {
		number = "Draft"
	}
	pdf.CellFormat(0, lineHeight, tr("No. "+number), "", 1, "R", false, 0, "")
	if !inv.CreatedAt.IsZero() {
		pdf.CellFormat(0, lineHeight, "Issued "+inv.CreatedAt.Format(invoice.DueDateLayout), "", 1, "R", false, 0, "")
	}
	if inv.DueDate != "" {
		pdf.CellFormat(0, lineHeight, "Due "+inv.DueDate, "", 1, "R", false, 0, "")
	}
	pdf.Ln(8)
}

func parties(pdf *gofpdf.Fpdf, tr func(string) string, inv *invoice.Invoice) {
	half := (210 - 2*margin) / 2
	y := pdf.GetY()

	from := compact(inv.CompanyInfo.Name, inv.CompanyInfo.Address, inv.CompanyInfo.Email, inv.CompanyInfo.Phone)
	to := compact(inv.ClientName, inv.ClientAddress, inv.ClientEmail)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(half, lineHeight, "From", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, lineHeight, "Bill To", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetXY(margin, y+lineHeight)
	pdf.MultiCell(half, 5, tr(strings.Join(from, "\n")), "", "L", false)
	leftEnd := pdf.GetY()

	pdf.SetXY(margin+half, y+lineHeight)
	pdf.MultiCell(half, 5, tr(strings.Join(to, "\n")), "", "L", false)
	if pdf.GetY() < leftEnd {
		pdf.SetY(leftEnd)
	}
	pdf.Ln(8)
}

func tableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(colDesc, 8, "Description", "B", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 8, "Qty", "B", 0, "R", true, 0, "")
	pdf.CellFormat(colRate, 8, "Rate", "B", 0, "R", true, 0, "")
	pdf.CellFormat(colAmount, 8, "Amount", "B", 1, "R", true, 0, "")
	pdf.SetFont("Arial", "", 10)
}

func itemTable(pdf *gofpdf.Fpdf, tr func(string) string, inv *invoice.Invoice) {
	_, pageH := pdf.GetPageSize()
	limit := pageH - 20 - lineHeight

	tableHeader(pdf)
	for _, it := range inv.Items {
		// Repeat the header when a row would cross the page break
		if pdf.GetY()+lineHeight > limit {
			pdf.AddPage()
			tableHeader(pdf)
		}
		desc := it.Description
		if desc == "" {
			desc = "-"
		}
		pdf.CellFormat(colDesc, lineHeight, truncate(pdf, tr(desc), colDesc-2), "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, lineHeight, fmt.Sprint(it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(colRate, lineHeight, it.Rate.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, lineHeight, it.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func totals(pdf *gofpdf.Fpdf, inv *invoice.Invoice) {
	labelX := margin + colDesc + colQty
	rows := []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal", inv.Subtotal().StringFixed(2), false},
		{fmt.Sprintf("Tax (%s%%)", inv.TaxRate.String()), inv.TaxAmount.StringFixed(2), false},
		{"Total", inv.Amount.StringFixed(2), true},
	}
	for _, row := range rows {
		style := ""
		if row.bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.SetX(labelX)
		pdf.CellFormat(colRate, lineHeight+1, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, lineHeight+1, row.value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func footnotes(pdf *gofpdf.Fpdf, tr func(string) string, inv *invoice.Invoice) {
	p := inv.PaymentInfo
	bank := compact(
		labeled("Bank", p.BankName),
		labeled("Account title", p.AccountTitle),
		labeled("Account no.", p.AccountNumber),
		labeled("IBAN", p.IBAN),
	)
	sections := []struct {
		title string
		body  string
	}{
		{"Payment details", strings.Join(bank, "\n")},
		{"Notes", inv.Notes},
		{"Terms", inv.Terms},
	}
	for _, s := range sections {
		if strings.TrimSpace(s.body) == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, lineHeight, s.title, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, tr(s.body), "", "L", false)
		pdf.Ln(3)
	}
}

// registerLogo decodes a data URI and registers it under a fixed name
func registerLogo(pdf *gofpdf.Fpdf, dataURI string) (string, bool) {
	if !strings.HasPrefix(dataURI, "data:image/") {
		return "", false
	}
	meta, payload, ok := strings.Cut(dataURI[len("data:"):], ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", false
	}
	imageType := strings.TrimPrefix(strings.TrimSuffix(meta, ";base64"), "image/")
	switch imageType {
	case "png", "jpeg", "jpg", "gif":
	default:
		return "", false
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}

	const name = "logo"
	info := pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}, bytes.NewReader(raw))
	if pdf.Err() || info == nil {
		// A bad logo must not fail the whole document
		pdf.ClearError()
		return "", false
	}
	return name, true
}

func compact(lines ...string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
