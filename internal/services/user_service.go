package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 8

// UserService implements user.Service
type UserService struct {
	repo       user.Repository
	bcryptCost int
	logger     *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, bcryptCost int, log *logger.Logger) user.Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     log,
	}
}

// Register creates an account on the free plan
func (s *UserService) Register(ctx context.Context, email, password, name string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.BadRequest("A valid email is required")
	}
	if len(password) < MinPasswordLength {
		return nil, errors.BadRequest("Password must be at least 8 characters")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, errors.Conflict("Email already registered")
	} else if !errors.HasCode(err, errors.ErrCodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Role:         user.RoleUser,
		Tier:         tier.Free,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User created")

	return u, nil
}

// Authenticate verifies credentials. Unknown emails and wrong passwords
// fail the same way.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	invalid := errors.Unauthorized("Invalid email or password")

	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}
	return u, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile changes the user's display fields
func (s *UserService) UpdateProfile(ctx context.Context, id int64, p user.Profile) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Name = strings.TrimSpace(p.Name)
	u.BusinessName = strings.TrimSpace(p.BusinessName)

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("User updated")

	return u, nil
}

// SetTier moves a user to another plan
func (s *UserService) SetTier(ctx context.Context, id int64, t tier.ID) error {
	if !tier.Known(t) {
		return errors.BadRequest("Unknown plan: " + string(t))
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	from := u.Tier
	u.Tier = t
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to change plan")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": id,
		"from":    from,
		"to":      t,
	}).Info("Plan changed")

	return nil
}

// List retrieves users with pagination
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	return s.repo.List(ctx, limit, offset)
}
