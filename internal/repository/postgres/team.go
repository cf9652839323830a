package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

type TeamRepository struct {
	db *DB
}

func NewTeamRepository(db *DB) team.Repository {
	return &TeamRepository{db: db}
}

const memberColumns = `id, user_id, name, email, role, permissions, status, created_at, updated_at`

func (r *TeamRepository) Create(ctx context.Context, m *team.Member) (int64, error) {
	ts := now()
	m.CreatedAt = ts
	m.UpdatedAt = ts

	perms, err := encodeStrings(m.Permissions)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO team_members (user_id, name, email, role, permissions, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := r.db.insert(ctx, "team_members", query,
		m.UserID, m.Name, m.Email, m.Role, perms, m.Status, toMicros(ts), toMicros(ts),
	)
	if isUniqueViolation(err) {
		return 0, errors.Conflict("A team member with this email already exists")
	}
	if err != nil {
		return 0, errors.DatabaseError("Failed to create team member", err)
	}
	m.ID = id
	return id, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, userID int64, id int64) (*team.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members WHERE user_id = ? AND id = ?`
	return r.getOne(ctx, query, userID, id)
}

func (r *TeamRepository) GetByEmail(ctx context.Context, userID int64, email string) (*team.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members WHERE user_id = ? AND email = ?`
	return r.getOne(ctx, query, userID, email)
}

func (r *TeamRepository) getOne(ctx context.Context, query string, args ...interface{}) (*team.Member, error) {
	m, err := scanMember(r.db.queryRow(ctx, "select", "team_members", query, args...))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Team member")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get team member", err)
	}
	return m, nil
}

func (r *TeamRepository) Update(ctx context.Context, m *team.Member) error {
	m.UpdatedAt = now()

	perms, err := encodeStrings(m.Permissions)
	if err != nil {
		return err
	}

	query := `
		UPDATE team_members
		SET name = ?, email = ?, role = ?, permissions = ?, status = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	result, err := r.db.exec(ctx, "update", "team_members", query,
		m.Name, m.Email, m.Role, perms, m.Status, toMicros(m.UpdatedAt), m.UserID, m.ID,
	)
	if isUniqueViolation(err) {
		return errors.Conflict("A team member with this email already exists")
	}
	if err != nil {
		return errors.DatabaseError("Failed to update team member", err)
	}
	return affectedOne(result, "Team member")
}

func (r *TeamRepository) Delete(ctx context.Context, userID int64, id int64) error {
	result, err := r.db.exec(ctx, "delete", "team_members", `DELETE FROM team_members WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete team member", err)
	}
	return affectedOne(result, "Team member")
}

func (r *TeamRepository) List(ctx context.Context, userID int64) ([]*team.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members WHERE user_id = ? ORDER BY id ASC`

	rows, err := r.db.query(ctx, "select", "team_members", query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list team members", err)
	}
	defer rows.Close()

	members := make([]*team.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan team member", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate team members", err)
	}

	return members, nil
}

func (r *TeamRepository) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.queryRow(ctx, "select", "team_members", `SELECT COUNT(*) FROM team_members WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count team members", err)
	}
	return n, nil
}

func (r *TeamRepository) CountSeats(ctx context.Context, userID int64) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM team_members WHERE user_id = ? AND role <> ?`
	err := r.db.queryRow(ctx, "select", "team_members", query, userID, team.RoleOwner).Scan(&n)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count team seats", err)
	}
	return n, nil
}

func scanMember(row rowScanner) (*team.Member, error) {
	var m team.Member
	var perms string
	var createdAt, updatedAt int64

	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Email, &m.Role, &perms, &m.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(perms), &m.Permissions); err != nil {
		return nil, err
	}
	if m.Permissions == nil {
		m.Permissions = []string{}
	}
	m.CreatedAt = fromMicros(createdAt)
	m.UpdatedAt = fromMicros(updatedAt)
	return &m, nil
}

func encodeStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.Internal("Failed to encode list", err)
	}
	return string(b), nil
}
