package user

import (
	"time"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
)

// User represents an account owner. All business records are scoped to a user.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	BusinessName string    `json:"business_name,omitempty"`
	PasswordHash string    `json:"-"` // Not exposed in JSON
	Role         string    `json:"role"`
	Tier         tier.ID   `json:"tier"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsAdmin reports whether the user may act on other users' records
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile holds the fields a user may change about themselves
type Profile struct {
	Name         string `json:"name" validate:"required,max=120"`
	BusinessName string `json:"business_name" validate:"max=160"`
}
