package postgres

import (
	"context"
	"database/sql"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

// UserRepository implements user.Repository for SQL databases
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, business_name, password_hash, role, tier, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	ts := now()
	u.CreatedAt = ts
	u.UpdatedAt = ts
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	if u.Tier == "" {
		u.Tier = tier.Free
	}

	query := `
		INSERT INTO users (email, name, business_name, password_hash, role, tier, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := r.db.insert(ctx, "users", query,
		u.Email, u.Name, u.BusinessName, u.PasswordHash, u.Role, string(u.Tier), toMicros(ts), toMicros(ts),
	)
	if isUniqueViolation(err) {
		return errors.Conflict("Email already registered")
	}
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	u.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	u, err := scanUser(r.db.queryRow(ctx, "select", "users", query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	u, err := scanUser(r.db.queryRow(ctx, "select", "users", query, email))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return u, nil
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = now()

	query := `
		UPDATE users
		SET email = ?, name = ?, business_name = ?, password_hash = ?, role = ?, tier = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.exec(ctx, "update", "users", query,
		u.Email, u.Name, u.BusinessName, u.PasswordHash, u.Role, string(u.Tier), toMicros(u.UpdatedAt), u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}
	return affectedOne(result, "User")
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.exec(ctx, "delete", "users", `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete user", err)
	}
	return affectedOne(result, "User")
}

// List retrieves all users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	// Get total count
	var total int64
	err := r.db.queryRow(ctx, "select", "users", "SELECT COUNT(*) FROM users").Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.query(ctx, "select", "users", query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate users", err)
	}

	return users, total, nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var t string
	var createdAt, updatedAt int64

	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.BusinessName, &u.PasswordHash, &u.Role, &t, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	u.Tier = tier.ID(t)
	u.CreatedAt = fromMicros(createdAt)
	u.UpdatedAt = fromMicros(updatedAt)
	return &u, nil
}
