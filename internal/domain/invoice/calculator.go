package invoice

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

// Field names accepted by UpdateItem
type Field string

const (
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldRate        Field = "rate"
)

// DefaultNumberPrefix precedes generated invoice numbers
const DefaultNumberPrefix = "INV-"

var (
	hundred    = decimal.NewFromInt(100)
	maxTaxRate = hundred
)

// NewDraft returns a draft holding one blank line item
func NewDraft(taxRate decimal.Decimal) *Draft {
	d := &Draft{TaxRate: clampTaxRate(taxRate)}
	d.AddItem()
	return d
}

// NewLineItem returns an item with its amount derived from quantity and rate
func NewLineItem(description string, quantity int, rate decimal.Decimal) LineItem {
	it := LineItem{Description: description, Quantity: quantity, Rate: rate}
	it.normalize()
	return it
}

// ParseQuantity coerces user input to a whole non-negative quantity.
// Non-numeric, NaN, infinite and negative input become 0; fractions are truncated.
func ParseQuantity(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// ParseRate coerces user input to a non-negative rate.
// Non-numeric, NaN and negative input become 0.
func ParseRate(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseTaxRate coerces user input to a percentage in [0, 100]
func ParseTaxRate(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return clampTaxRate(d)
}

func clampTaxRate(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(maxTaxRate) {
		return maxTaxRate
	}
	return d
}

func (it *LineItem) normalize() {
	if it.Quantity < 0 {
		it.Quantity = 0
	}
	if it.Rate.IsNegative() {
		it.Rate = decimal.Zero
	}
	it.Amount = it.Rate.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// AddItem appends a blank item with quantity 1
func (d *Draft) AddItem() {
	d.Items = append(d.Items, LineItem{
		Description: "",
		Quantity:    1,
		Rate:        decimal.Zero,
		Amount:      decimal.Zero,
	})
}

// RemoveItem deletes the item at index. The last remaining item cannot be removed.
func (d *Draft) RemoveItem(index int) error {
	if len(d.Items) <= 1 {
		return errors.InvalidOperation("An invoice must keep at least one line item")
	}
	if index < 0 || index >= len(d.Items) {
		return errors.InvalidOperation(fmt.Sprintf("Line item %d does not exist", index))
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	return nil
}

// UpdateItem sets one field of the item at index from raw user input.
// Quantity and rate go through ParseQuantity and ParseRate, and the item's
// amount is recomputed before returning.
func (d *Draft) UpdateItem(index int, field Field, value string) error {
	if index < 0 || index >= len(d.Items) {
		return errors.InvalidOperation(fmt.Sprintf("Line item %d does not exist", index))
	}
	it := &d.Items[index]
	switch field {
	case FieldDescription:
		it.Description = value
	case FieldQuantity:
		it.Quantity = ParseQuantity(value)
	case FieldRate:
		it.Rate = ParseRate(value)
	default:
		return errors.InvalidOperation(fmt.Sprintf("Unknown line item field %q", field))
	}
	it.normalize()
	return nil
}

// SetTaxRate sets the tax percentage from raw user input
func (d *Draft) SetTaxRate(value string) {
	d.TaxRate = ParseTaxRate(value)
}

// Normalize re-derives every item amount and clamps out-of-range numbers.
// Drafts decoded from JSON must be normalized before totals are trusted.
func (d *Draft) Normalize() {
	for i := range d.Items {
		d.Items[i].normalize()
	}
	d.TaxRate = clampTaxRate(d.TaxRate)
	d.Client.Name = strings.TrimSpace(d.Client.Name)
	d.Client.Email = strings.TrimSpace(d.Client.Email)
	d.InvoiceNumber = strings.TrimSpace(d.InvoiceNumber)
}

// RecomputeTotals derives subtotal, tax and total from the current items
func (d *Draft) RecomputeTotals() Totals {
	return Calculate(d.Items, d.TaxRate)
}

// Calculate sums item amounts and applies taxRate percent.
// Tax is rounded to cents; total is subtotal plus the rounded tax.
func Calculate(items []LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount)
	}
	tax := subtotal.Mul(taxRate).Div(hundred).Round(2)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}

// Validate checks the draft can be persisted
func (d *Draft) Validate() error {
	if errs := validator.Validate(d); len(errs) > 0 {
		msg := "Invoice validation failed"
		for _, e := range errs {
			if e.Field == "name" || e.Field == "email" {
				msg = "Please fill in client name and email"
				break
			}
		}
		return errors.ValidationError(msg, errs)
	}
	if d.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, d.DueDate); err != nil {
			return errors.ValidationError("Invalid due date", []validator.ValidationError{{
				Field:   "due_date",
				Tag:     "date",
				Value:   d.DueDate,
				Message: "due_date must be formatted as YYYY-MM-DD",
			}})
		}
	}
	return nil
}

// GenerateNumber returns prefix followed by the Unix millisecond timestamp of now
func GenerateNumber(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	return prefix + strconv.FormatInt(now.UnixMilli(), 10)
}

// Snapshot maps the draft onto an unsaved invoice record.
// Totals are rounded to cents so stored and displayed figures agree.
func (d *Draft) Snapshot() *Invoice {
	d.Normalize()
	totals := d.RecomputeTotals()
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	return &Invoice{
		InvoiceNumber: d.InvoiceNumber,
		ClientName:    d.Client.Name,
		ClientEmail:   d.Client.Email,
		ClientAddress: d.Client.Address,
		Amount:        totals.Total.Round(2),
		TaxRate:       d.TaxRate,
		TaxAmount:     totals.TaxAmount,
		DueDate:       d.DueDate,
		Items:         items,
		CompanyInfo:   d.CompanyInfo,
		PaymentInfo:   d.PaymentInfo,
		Notes:         d.Notes,
		Terms:         d.Terms,
		Status:        StatusDraft,
	}
}

// ToStored builds the record created on save. A blank invoice number is
// replaced by one generated from now.
func (d *Draft) ToStored(userID int64, prefix string, now time.Time) *Invoice {
	inv := d.Snapshot()
	inv.UserID = userID
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = GenerateNumber(prefix, now)
	}
	return inv
}

// ApplyTo replaces every draft-owned field of inv. Identity, owner, status
// and creation time are kept, as is the number when the draft leaves it blank.
func (d *Draft) ApplyTo(inv *Invoice) {
	next := d.Snapshot()
	next.ID = inv.ID
	next.UserID = inv.UserID
	next.Status = inv.Status
	next.CreatedAt = inv.CreatedAt
	if next.InvoiceNumber == "" {
		next.InvoiceNumber = inv.InvoiceNumber
	}
	*inv = *next
}
