package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{" 12 ", 12},
		{"2.9", 2},
		{"0", 0},
		{"-4", 0},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.in))
		})
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"50", "50"},
		{"19.99", "19.99"},
		{"-1", "0"},
		{"NaN", "0"},
		{"ten", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, dec(tt.want).Equal(ParseRate(tt.in)), "got %s", ParseRate(tt.in))
		})
	}
}

func TestParseTaxRate_Clamps(t *testing.T) {
	assert.True(t, ParseTaxRate("17").Equal(dec("17")))
	assert.True(t, ParseTaxRate("-5").IsZero())
	assert.True(t, ParseTaxRate("250").Equal(dec("100")))
	assert.True(t, ParseTaxRate("x").IsZero())
}

func TestDraft_AddItem(t *testing.T) {
	d := NewDraft(dec("10"))
	require.Len(t, d.Items, 1)

	d.AddItem()
	require.Len(t, d.Items, 2)
	it := d.Items[1]
	assert.Equal(t, "", it.Description)
	assert.Equal(t, 1, it.Quantity)
	assert.True(t, it.Rate.IsZero())
	assert.True(t, it.Amount.IsZero())
}

func TestDraft_RemoveItem(t *testing.T) {
	d := NewDraft(decimal.Zero)

	err := d.RemoveItem(0)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidOperation))
	assert.Len(t, d.Items, 1)

	d.AddItem()
	require.NoError(t, d.UpdateItem(1, FieldDescription, "second"))
	require.NoError(t, d.RemoveItem(0))
	require.Len(t, d.Items, 1)
	assert.Equal(t, "second", d.Items[0].Description)

	d.AddItem()
	err = d.RemoveItem(5)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidOperation))
	assert.Len(t, d.Items, 2)
}

func TestDraft_UpdateItem_RecomputesAmount(t *testing.T) {
	d := NewDraft(decimal.Zero)
	d.AddItem()
	require.NoError(t, d.UpdateItem(1, FieldQuantity, "7"))
	require.NoError(t, d.UpdateItem(1, FieldRate, "3"))
	untouched := d.Items[1]

	steps := []struct {
		field Field
		value string
	}{
		{FieldQuantity, "2"},
		{FieldRate, "50"},
		{FieldRate, "12.5"},
		{FieldQuantity, "-3"},
		{FieldQuantity, "4"},
		{FieldRate, "oops"},
		{FieldRate, "0.1"},
	}
	for _, s := range steps {
		require.NoError(t, d.UpdateItem(0, s.field, s.value))
		it := d.Items[0]
		want := it.Rate.Mul(decimal.NewFromInt(int64(it.Quantity)))
		assert.True(t, it.Amount.Equal(want), "after %s=%s amount %s want %s", s.field, s.value, it.Amount, want)
		assert.Equal(t, untouched, d.Items[1])
	}

	assert.Equal(t, 4, d.Items[0].Quantity)
	assert.True(t, d.Items[0].Amount.Equal(dec("0.4")))
}

func TestDraft_UpdateItem_Errors(t *testing.T) {
	d := NewDraft(decimal.Zero)
	assert.True(t, errors.HasCode(d.UpdateItem(3, FieldRate, "1"), errors.ErrCodeInvalidOperation))
	assert.True(t, errors.HasCode(d.UpdateItem(0, Field("amount"), "1"), errors.ErrCodeInvalidOperation))
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		items    []LineItem
		rate     string
		subtotal string
		tax      string
		total    string
	}{
		{
			name: "reference scenario",
			items: []LineItem{
				NewLineItem("design", 2, dec("50")),
				NewLineItem("hosting", 1, dec("100")),
			},
			rate: "10", subtotal: "200", tax: "20", total: "220",
		},
		{
			name:  "tax rounded to cents",
			items: []LineItem{NewLineItem("a", 1, dec("33.33"))},
			rate:  "10", subtotal: "33.33", tax: "3.33", total: "36.66",
		},
		{
			name:  "gst preset",
			items: []LineItem{NewLineItem("a", 3, dec("19.99"))},
			rate:  "17", subtotal: "59.97", tax: "10.19", total: "70.16",
		},
		{
			name:  "zero tax",
			items: []LineItem{NewLineItem("a", 5, dec("0.1"))},
			rate:  "0", subtotal: "0.5", tax: "0", total: "0.5",
		},
		{
			name:  "no items",
			items: nil,
			rate:  "10", subtotal: "0", tax: "0", total: "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.items, dec(tt.rate))
			assert.True(t, got.Subtotal.Equal(dec(tt.subtotal)), "subtotal %s", got.Subtotal)
			assert.True(t, got.TaxAmount.Equal(dec(tt.tax)), "tax %s", got.TaxAmount)
			assert.True(t, got.Total.Equal(dec(tt.total)), "total %s", got.Total)
			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.TaxAmount)))
		})
	}
}

func TestCalculate_NoFloatDrift(t *testing.T) {
	items := make([]LineItem, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, NewLineItem("x", 1, dec("0.1")))
	}
	got := Calculate(items, decimal.Zero)
	assert.Equal(t, "1.00", got.Subtotal.StringFixed(2))
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(1)))
}

func TestDraft_Validate(t *testing.T) {
	valid := func() *Draft {
		d := NewDraft(dec("10"))
		d.Client = Client{Name: "Acme", Email: "billing@acme.test"}
		return d
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		d := valid()
		d.Client.Name = ""
		err := d.Validate()
		require.Error(t, err)
		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, "Please fill in client name and email", appErr.Message)
	})

	t.Run("missing email", func(t *testing.T) {
		d := valid()
		d.Client.Email = ""
		assert.True(t, errors.HasCode(d.Validate(), errors.ErrCodeValidation))
	})

	t.Run("no items", func(t *testing.T) {
		d := valid()
		d.Items = nil
		assert.True(t, errors.HasCode(d.Validate(), errors.ErrCodeValidation))
	})

	t.Run("bad due date", func(t *testing.T) {
		d := valid()
		d.DueDate = "31/12/2026"
		assert.True(t, errors.HasCode(d.Validate(), errors.ErrCodeValidation))
	})
}

func TestDraft_ToStored(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := NewDraft(dec("10"))
	d.Client = Client{Name: "Acme", Email: "billing@acme.test", Address: "1 Main St"}
	require.NoError(t, d.UpdateItem(0, FieldQuantity, "2"))
	require.NoError(t, d.UpdateItem(0, FieldRate, "50"))
	d.AddItem()
	require.NoError(t, d.UpdateItem(1, FieldRate, "100"))
	d.DueDate = "2026-03-31"

	inv := d.ToStored(7, "", now)

	assert.Equal(t, int64(7), inv.UserID)
	assert.Equal(t, "INV-1772366400000", inv.InvoiceNumber)
	assert.Equal(t, "Acme", inv.ClientName)
	assert.Equal(t, "1 Main St", inv.ClientAddress)
	assert.Equal(t, "220.00", inv.Amount.StringFixed(2))
	assert.Equal(t, "20.00", inv.TaxAmount.StringFixed(2))
	assert.True(t, inv.Subtotal().Equal(dec("200")))
	assert.Equal(t, StatusDraft, inv.Status)
	assert.Len(t, inv.Items, 2)

	d.InvoiceNumber = "  INV-0042 "
	assert.Equal(t, "INV-0042", d.ToStored(7, "", now).InvoiceNumber)
}

func TestDraft_ApplyTo_KeepsIdentity(t *testing.T) {
	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	inv := &Invoice{ID: 9, UserID: 3, InvoiceNumber: "INV-1", Status: StatusSent, CreatedAt: created}

	d := NewDraft(dec("5"))
	d.Client = Client{Name: "New", Email: "n@x.test"}
	require.NoError(t, d.UpdateItem(0, FieldRate, "40"))
	d.ApplyTo(inv)

	assert.Equal(t, int64(9), inv.ID)
	assert.Equal(t, int64(3), inv.UserID)
	assert.Equal(t, "INV-1", inv.InvoiceNumber)
	assert.Equal(t, StatusSent, inv.Status)
	assert.Equal(t, created, inv.CreatedAt)
	assert.Equal(t, "New", inv.ClientName)
	assert.Equal(t, "42.00", inv.Amount.StringFixed(2))
}

func TestInvoice_IsOverdue(t *testing.T) {
	today := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		status Status
		due    string
		want   bool
	}{
		{"sent and past due", StatusSent, "2026-05-09", true},
		{"sent due today", StatusSent, "2026-05-10", false},
		{"paid and past due", StatusPaid, "2026-01-01", false},
		{"no due date", StatusSent, "", false},
		{"garbage date", StatusSent, "soon", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{Status: tt.status, DueDate: tt.due}
			assert.Equal(t, tt.want, inv.IsOverdue(today))
		})
	}
}

func TestPDFFilename(t *testing.T) {
	assert.Equal(t, "invoice-draft.pdf", PDFFilename(""))
	assert.Equal(t, "invoice-INV-7.pdf", PDFFilename("INV-7"))
	assert.Equal(t, "invoice-2026-01.pdf", PDFFilename("2026/01"))
}
