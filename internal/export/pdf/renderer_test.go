package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
)

func testInvoice(items int) *invoice.Invoice {
	d := invoice.NewDraft(decimal.NewFromInt(10))
	d.InvoiceNumber = "INV-100"
	d.Client = invoice.Client{Name: "Café Zürich", Email: "billing@cafe.test", Address: "Bahnhofstrasse 1"}
	d.DueDate = "2026-07-01"
	d.Items = nil
	for i := 0; i < items; i++ {
		d.Items = append(d.Items, invoice.NewLineItem(fmt.Sprintf("Consulting block %d", i+1), 2, decimal.NewFromInt(50)))
	}
	d.CompanyInfo = invoice.CompanyInfo{Name: "Studio", Email: "hi@studio.test"}
	d.PaymentInfo = invoice.PaymentInfo{BankName: "First Bank", IBAN: "DE89370400440532013000"}
	d.Notes = "Thank you for your business."
	inv := d.ToStored(1, "INV-", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	inv.CreatedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return inv
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRenderer_Render(t *testing.T) {
	out, err := NewRenderer().Render(testInvoice(3))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderer_Paginates(t *testing.T) {
	r := NewRenderer()

	short := r.build(testInvoice(3))
	require.False(t, short.Err(), "%v", short.Error())
	assert.Equal(t, 1, short.PageNo())

	long := r.build(testInvoice(120))
	require.False(t, long.Err(), "%v", long.Error())
	assert.Greater(t, long.PageNo(), 2)
}

func TestRenderer_Logo(t *testing.T) {
	inv := testInvoice(1)
	inv.CompanyInfo.Logo = pngDataURI(t)

	out, err := NewRenderer().Render(inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderer_BadLogoIsIgnored(t *testing.T) {
	tests := []string{
		"https://example.com/logo.png",
		"data:image/png;base64,!!!notbase64",
		"data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a png")),
		"data:image/svg+xml;base64,PHN2Zy8+",
	}
	for _, logo := range tests {
		inv := testInvoice(1)
		inv.CompanyInfo.Logo = logo
		_, err := NewRenderer().Render(inv)
		assert.NoError(t, err, logo)
	}
}

func TestCompact(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, compact("a", " ", "c", ""))
	assert.Equal(t, "", labeled("IBAN", ""))
	assert.Equal(t, "IBAN: X", labeled("IBAN", "X"))
}
