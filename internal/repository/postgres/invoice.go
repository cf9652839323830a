package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

type InvoiceRepository struct {
	db *DB
}

func NewInvoiceRepository(db *DB) invoice.Repository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `id, user_id, invoice_number, client_name, client_email, client_address,
	amount, tax_rate, tax_amount, due_date, items, company_info, payment_info,
	notes, terms, status, created_at, updated_at`

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) (int64, error) {
	ts := now()
	inv.CreatedAt = ts
	inv.UpdatedAt = ts
	if inv.Status == "" {
		inv.Status = invoice.StatusDraft
	}

	items, company, payment, err := encodeInvoiceJSON(inv)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO invoices (user_id, invoice_number, client_name, client_email, client_address,
			amount, tax_rate, tax_amount, due_date, items, company_info, payment_info,
			notes, terms, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := r.db.insert(ctx, "invoices", query,
		inv.UserID, inv.InvoiceNumber, inv.ClientName, inv.ClientEmail, inv.ClientAddress,
		inv.Amount, inv.TaxRate, inv.TaxAmount, inv.DueDate, items, company, payment,
		inv.Notes, inv.Terms, string(inv.Status), toMicros(ts), toMicros(ts),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create invoice", err)
	}
	inv.ID = id
	return id, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, userID int64, id int64) (*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = ? AND id = ?`

	inv, err := scanInvoice(r.db.queryRow(ctx, "select", "invoices", query, userID, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Invoice")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get invoice", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = now()

	items, company, payment, err := encodeInvoiceJSON(inv)
	if err != nil {
		return err
	}

	query := `
		UPDATE invoices
		SET invoice_number = ?, client_name = ?, client_email = ?, client_address = ?,
			amount = ?, tax_rate = ?, tax_amount = ?, due_date = ?, items = ?,
			company_info = ?, payment_info = ?, notes = ?, terms = ?, status = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	result, err := r.db.exec(ctx, "update", "invoices", query,
		inv.InvoiceNumber, inv.ClientName, inv.ClientEmail, inv.ClientAddress,
		inv.Amount, inv.TaxRate, inv.TaxAmount, inv.DueDate, items,
		company, payment, inv.Notes, inv.Terms, string(inv.Status), toMicros(inv.UpdatedAt),
		inv.UserID, inv.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update invoice", err)
	}
	return affectedOne(result, "Invoice")
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, userID int64, id int64, status invoice.Status) error {
	query := `UPDATE invoices SET status = ?, updated_at = ? WHERE user_id = ? AND id = ?`

	result, err := r.db.exec(ctx, "update", "invoices", query, string(status), toMicros(now()), userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to update invoice status", err)
	}
	return affectedOne(result, "Invoice")
}

func (r *InvoiceRepository) Delete(ctx context.Context, userID int64, id int64) error {
	query := `DELETE FROM invoices WHERE user_id = ? AND id = ?`

	result, err := r.db.exec(ctx, "delete", "invoices", query, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete invoice", err)
	}
	return affectedOne(result, "Invoice")
}

func (r *InvoiceRepository) List(ctx context.Context, userID int64, filter invoice.Filter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query += " AND (LOWER(invoice_number) LIKE ? OR LOWER(client_name) LIKE ? OR LOWER(client_email) LIKE ?)"
		args = append(args, like, like, like)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.query(ctx, "select", "invoices", query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list invoices", err)
	}
	defer rows.Close()

	invoices := make([]*invoice.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan invoice", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate invoices", err)
	}

	return invoices, nil
}

func (r *InvoiceRepository) CountByStatus(ctx context.Context, userID int64) (map[invoice.Status]int, error) {
	query := `SELECT status, COUNT(*) FROM invoices WHERE user_id = ? GROUP BY status`

	rows, err := r.db.query(ctx, "select", "invoices", query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count invoices", err)
	}
	defer rows.Close()

	counts := make(map[invoice.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan count", err)
		}
		counts[invoice.Status(status)] = count
	}

	return counts, rows.Err()
}

// SumPaid adds amounts in Go so TEXT columns on sqlite sum exactly
func (r *InvoiceRepository) SumPaid(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `SELECT amount FROM invoices WHERE user_id = ? AND status = ?`

	rows, err := r.db.query(ctx, "select", "invoices", query, userID, string(invoice.StatusPaid))
	if err != nil {
		return decimal.Zero, errors.DatabaseError("Failed to sum invoices", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, errors.DatabaseError("Failed to scan amount", err)
		}
		total = total.Add(amount)
	}

	return total, rows.Err()
}

func (r *InvoiceRepository) MarkOverdue(ctx context.Context, asOf string) (int64, error) {
	query := `
		UPDATE invoices SET status = ?, updated_at = ?
		WHERE status = ? AND due_date <> '' AND due_date < ?`

	result, err := r.db.exec(ctx, "update", "invoices", query,
		string(invoice.StatusOverdue), toMicros(now()), string(invoice.StatusSent), asOf,
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to mark overdue invoices", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	var status, items, company, payment string
	var createdAt, updatedAt int64

	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.InvoiceNumber, &inv.ClientName, &inv.ClientEmail, &inv.ClientAddress,
		&inv.Amount, &inv.TaxRate, &inv.TaxAmount, &inv.DueDate, &items, &company, &payment,
		&inv.Notes, &inv.Terms, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(status)
	inv.CreatedAt = fromMicros(createdAt)
	inv.UpdatedAt = fromMicros(updatedAt)

	if err := json.Unmarshal([]byte(items), &inv.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(company), &inv.CompanyInfo); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payment), &inv.PaymentInfo); err != nil {
		return nil, err
	}
	if inv.Items == nil {
		inv.Items = []invoice.LineItem{}
	}

	return &inv, nil
}

func encodeInvoiceJSON(inv *invoice.Invoice) (items, company, payment string, err error) {
	lineItems := inv.Items
	if lineItems == nil {
		lineItems = []invoice.LineItem{}
	}
	b, err := json.Marshal(lineItems)
	if err != nil {
		return "", "", "", errors.Internal("Failed to encode line items", err)
	}
	items = string(b)

	if b, err = json.Marshal(inv.CompanyInfo); err != nil {
		return "", "", "", errors.Internal("Failed to encode company info", err)
	}
	company = string(b)

	if b, err = json.Marshal(inv.PaymentInfo); err != nil {
		return "", "", "", errors.Internal("Failed to encode payment info", err)
	}
	payment = string(b)
	return items, company, payment, nil
}
