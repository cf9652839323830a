package dto

import "github.com/pratik-mahalle/bizdesk/internal/domain/user"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	Role         string `json:"role"`
	Tier         string `json:"tier"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	BusinessName string `json:"businessName" validate:"max=160"`
}

// ToUserDTO converts a user for API output
func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		BusinessName: u.BusinessName,
		Role:         u.Role,
		Tier:         string(u.Tier),
	}
}
