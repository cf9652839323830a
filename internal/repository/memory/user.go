package memory

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

// UserRepository is an in-memory user.Repository
type UserRepository struct {
	t *table[*user.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{t: newTable(func(u *user.User) *user.User {
		cp := *u
		return &cp
	})}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	email := strings.ToLower(u.Email)
	if len(r.t.filter(func(x *user.User) bool { return strings.ToLower(x.Email) == email }, nil)) > 0 {
		return errors.Conflict("Email already registered")
	}
	ts := now()
	u.CreatedAt = ts
	u.UpdatedAt = ts
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	if u.Tier == "" {
		u.Tier = tier.Free
	}
	r.t.insert(func(id int64) *user.User {
		u.ID = id
		return u
	})
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, ok := r.t.get(id, nil)
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = strings.ToLower(email)
	found := r.t.filter(func(u *user.User) bool { return strings.ToLower(u.Email) == email }, nil)
	if len(found) == 0 {
		return nil, errors.NotFound("User")
	}
	return found[0], nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = now()
	if !r.t.replace(u.ID, u, nil) {
		return errors.NotFound("User")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if !r.t.remove(id, nil) {
		return errors.NotFound("User")
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	all := r.t.filter(nil, func(a, b *user.User) bool { return a.ID > b.ID })
	total := int64(len(all))
	if offset >= len(all) {
		return []*user.User{}, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}
