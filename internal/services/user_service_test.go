package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/testutil"
)

func newUserService() (user.Service, *testutil.MockUserRepository) {
	mockRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewUserService(mockRepo, bcrypt.MinCost, log), mockRepo
}

func TestUserService_Register(t *testing.T) {
	service, _ := newUserService()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{
			name:     "successful registration",
			email:    "Owner@Example.com ",
			password: "correct-horse",
		},
		{
			name:     "duplicate email",
			email:    "owner@example.com",
			password: "another-secret",
			wantCode: errors.ErrCodeConflict,
		},
		{
			name:     "short password",
			email:    "short@example.com",
			password: "abc",
			wantCode: errors.ErrCodeBadRequest,
		},
		{
			name:     "missing email",
			email:    "  ",
			password: "long-enough",
			wantCode: errors.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Register(ctx, tt.email, tt.password, "Owner")

			if tt.wantCode != "" {
				if !errors.HasCode(err, tt.wantCode) {
					t.Errorf("Register() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() unexpected error: %v", err)
			}
			if u.Email != "owner@example.com" {
				t.Errorf("Register() email = %v, want normalized address", u.Email)
			}
			if u.Role != user.RoleUser {
				t.Errorf("Register() role = %v, want %v", u.Role, user.RoleUser)
			}
			if u.Tier != tier.Free {
				t.Errorf("Register() tier = %v, want %v", u.Tier, tier.Free)
			}
			if u.PasswordHash == tt.password || u.PasswordHash == "" {
				t.Error("Register() did not hash the password")
			}
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	service, _ := newUserService()
	ctx := context.Background()

	created, err := service.Register(ctx, "test@example.com", "s3cret-pass", "Test")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid credentials", email: "test@example.com", password: "s3cret-pass"},
		{name: "email is case-insensitive", email: "TEST@example.com", password: "s3cret-pass"},
		{name: "wrong password", email: "test@example.com", password: "nope-nope", wantErr: true},
		{name: "unknown email", email: "ghost@example.com", password: "s3cret-pass", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr {
				if !errors.HasCode(err, errors.ErrCodeUnauthorized) {
					t.Errorf("Authenticate() error = %v, want unauthorized", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() unexpected error: %v", err)
			}
			if u.ID != created.ID {
				t.Errorf("Authenticate() id = %v, want %v", u.ID, created.ID)
			}
		})
	}
}

func TestUserService_GetByID(t *testing.T) {
	service, repo := newUserService()
	ctx := context.Background()
	existing := repo.AddUser(&user.User{Email: "test@example.com"})

	tests := []struct {
		name    string
		userID  int64
		wantErr bool
	}{
		{name: "get existing user", userID: existing.ID},
		{name: "get non-existent user", userID: 999, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.GetByID(ctx, tt.userID)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetByID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && u.ID != tt.userID {
				t.Errorf("GetByID() id = %v, want %v", u.ID, tt.userID)
			}
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	service, repo := newUserService()
	ctx := context.Background()
	existing := repo.AddUser(&user.User{Email: "test@example.com", Name: "Old"})

	u, err := service.UpdateProfile(ctx, existing.ID, user.Profile{Name: " New Name ", BusinessName: "Studio"})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if u.Name != "New Name" || u.BusinessName != "Studio" {
		t.Errorf("UpdateProfile() = %q/%q", u.Name, u.BusinessName)
	}

	stored, _ := repo.GetByID(ctx, existing.ID)
	if stored.Name != "New Name" {
		t.Errorf("stored name = %v, want New Name", stored.Name)
	}
}

func TestUserService_SetTier(t *testing.T) {
	service, repo := newUserService()
	ctx := context.Background()
	existing := repo.AddUser(&user.User{Email: "test@example.com"})

	if err := service.SetTier(ctx, existing.ID, tier.Professional); err != nil {
		t.Fatalf("SetTier() error: %v", err)
	}
	stored, _ := repo.GetByID(ctx, existing.ID)
	if stored.Tier != tier.Professional {
		t.Errorf("tier = %v, want %v", stored.Tier, tier.Professional)
	}

	if err := service.SetTier(ctx, existing.ID, "platinum"); !errors.HasCode(err, errors.ErrCodeBadRequest) {
		t.Errorf("SetTier(unknown) error = %v, want bad request", err)
	}
	if err := service.SetTier(ctx, 404, tier.Starter); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("SetTier(missing user) error = %v, want not found", err)
	}
}

func TestUserService_List(t *testing.T) {
	service, repo := newUserService()
	ctx := context.Background()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		repo.AddUser(&user.User{Email: email})
	}

	users, total, err := service.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 3 {
		t.Errorf("List() total = %v, want 3", total)
	}
	if len(users) != 2 {
		t.Errorf("List() len = %v, want 2", len(users))
	}
}
