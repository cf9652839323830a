package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

type LeadRepository struct {
	db *DB
}

func NewLeadRepository(db *DB) lead.Repository {
	return &LeadRepository{db: db}
}

const leadColumns = `id, user_id, name, email, phone, company, source, status, notes, created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) (int64, error) {
	ts := now()
	l.CreatedAt = ts
	l.UpdatedAt = ts

	query := `
		INSERT INTO leads (user_id, name, email, phone, company, source, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := r.db.insert(ctx, "leads", query,
		l.UserID, l.Name, l.Email, l.Phone, l.Company, l.Source, l.Status, l.Notes, toMicros(ts), toMicros(ts),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create lead", err)
	}
	l.ID = id
	return id, nil
}

func (r *LeadRepository) GetByID(ctx context.Context, userID int64, id int64) (*lead.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = ? AND id = ?`

	l, err := scanLead(r.db.queryRow(ctx, "select", "leads", query, userID, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Lead")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get lead", err)
	}
	return l, nil
}

func (r *LeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	l.UpdatedAt = now()

	query := `
		UPDATE leads
		SET name = ?, email = ?, phone = ?, company = ?, source = ?, status = ?, notes = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	result, err := r.db.exec(ctx, "update", "leads", query,
		l.Name, l.Email, l.Phone, l.Company, l.Source, l.Status, l.Notes, toMicros(l.UpdatedAt), l.UserID, l.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update lead", err)
	}
	return affectedOne(result, "Lead")
}

func (r *LeadRepository) Delete(ctx context.Context, userID int64, id int64) error {
	result, err := r.db.exec(ctx, "delete", "leads", `DELETE FROM leads WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete lead", err)
	}
	return affectedOne(result, "Lead")
}

func (r *LeadRepository) List(ctx context.Context, userID int64, filter lead.Filter) ([]*lead.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Status != "" && filter.Status != lead.FilterAll {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Source != "" && filter.Source != lead.FilterAll {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query += " AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?)"
		args = append(args, like, like, like)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.query(ctx, "select", "leads", query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list leads", err)
	}
	defer rows.Close()

	leads := make([]*lead.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan lead", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate leads", err)
	}

	return leads, nil
}

func (r *LeadRepository) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.queryRow(ctx, "select", "leads", `SELECT COUNT(*) FROM leads WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count leads", err)
	}
	return n, nil
}

func (r *LeadRepository) CountByStatus(ctx context.Context, userID int64) (map[string]int, error) {
	return countByStatus(ctx, r.db, "leads", userID)
}

func scanLead(row rowScanner) (*lead.Lead, error) {
	var l lead.Lead
	var createdAt, updatedAt int64

	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Source, &l.Status, &l.Notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	l.CreatedAt = fromMicros(createdAt)
	l.UpdatedAt = fromMicros(updatedAt)
	return &l, nil
}

// countByStatus groups a user-scoped table by its status column
func countByStatus(ctx context.Context, db *DB, table string, userID int64) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM ` + table + ` WHERE user_id = ? GROUP BY status`

	rows, err := db.query(ctx, "select", table, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count "+table, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan count", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate counts", err)
	}

	return counts, nil
}
