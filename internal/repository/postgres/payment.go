package postgres

import (
	"context"
	"database/sql"

	"github.com/pratik-mahalle/bizdesk/internal/domain/payment"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

type PaymentRepository struct {
	db *DB
}

func NewPaymentRepository(db *DB) payment.Repository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `p.id, p.user_id, p.tier, p.amount, p.method, p.reference, p.status, p.created_at, p.updated_at`

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) (int64, error) {
	ts := now()
	p.CreatedAt = ts
	p.UpdatedAt = ts
	if p.Status == "" {
		p.Status = payment.StatusPending
	}

	query := `
		INSERT INTO payments (user_id, tier, amount, method, reference, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := r.db.insert(ctx, "payments", query,
		p.UserID, string(p.Tier), p.Amount, p.Method, p.Reference, p.Status, toMicros(ts), toMicros(ts),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create payment", err)
	}
	p.ID = id
	return id, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.id = ?`

	p, err := scanPayment(r.db.queryRow(ctx, "select", "payments", query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Payment")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get payment", err)
	}
	return p, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE payments SET status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.exec(ctx, "update", "payments", query, status, toMicros(now()), id)
	if err != nil {
		return errors.DatabaseError("Failed to update payment", err)
	}
	return affectedOne(result, "Payment")
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.user_id = ? ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.query(ctx, "select", "payments", query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list payments", err)
	}
	defer rows.Close()

	payments := make([]*payment.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan payment", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate payments", err)
	}

	return payments, nil
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]*payment.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `, u.name, u.email
		FROM payments p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.query(ctx, "select", "payments", query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list payments", err)
	}
	defer rows.Close()

	payments := make([]*payment.Payment, 0)
	for rows.Next() {
		var p payment.Payment
		var t string
		var createdAt, updatedAt int64
		err := rows.Scan(&p.ID, &p.UserID, &t, &p.Amount, &p.Method, &p.Reference, &p.Status,
			&createdAt, &updatedAt, &p.UserName, &p.UserEmail)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan payment", err)
		}
		p.Tier = tier.ID(t)
		p.CreatedAt = fromMicros(createdAt)
		p.UpdatedAt = fromMicros(updatedAt)
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate payments", err)
	}

	return payments, nil
}

func scanPayment(row rowScanner) (*payment.Payment, error) {
	var p payment.Payment
	var t string
	var createdAt, updatedAt int64

	err := row.Scan(&p.ID, &p.UserID, &t, &p.Amount, &p.Method, &p.Reference, &p.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.Tier = tier.ID(t)
	p.CreatedAt = fromMicros(createdAt)
	p.UpdatedAt = fromMicros(updatedAt)
	return &p, nil
}
