package memory

import (
	"context"

	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/domain/task"
	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

// LeadRepository is an in-memory lead.Repository
type LeadRepository struct {
	t *table[*lead.Lead]
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{t: newTable(func(l *lead.Lead) *lead.Lead {
		cp := *l
		return &cp
	})}
}

func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) (int64, error) {
	ts := now()
	l.CreatedAt = ts
	l.UpdatedAt = ts
	return r.t.insert(func(id int64) *lead.Lead {
		l.ID = id
		return l
	}), nil
}

func (r *LeadRepository) GetByID(ctx context.Context, userID int64, id int64) (*lead.Lead, error) {
	l, ok := r.t.get(id, func(l *lead.Lead) bool { return l.UserID == userID })
	if !ok {
		return nil, errors.NotFound("Lead")
	}
	return l, nil
}

func (r *LeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	l.UpdatedAt = now()
	if !r.t.replace(l.ID, l, func(old *lead.Lead) bool { return old.UserID == l.UserID }) {
		return errors.NotFound("Lead")
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, userID int64, id int64) error {
	if !r.t.remove(id, func(l *lead.Lead) bool { return l.UserID == userID }) {
		return errors.NotFound("Lead")
	}
	return nil
}

func (r *LeadRepository) List(ctx context.Context, userID int64, filter lead.Filter) ([]*lead.Lead, error) {
	return r.t.filter(
		func(l *lead.Lead) bool { return l.UserID == userID && filter.Matches(l) },
		func(a, b *lead.Lead) bool { return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID) },
	), nil
}

func (r *LeadRepository) Count(ctx context.Context, userID int64) (int, error) {
	return len(r.t.filter(func(l *lead.Lead) bool { return l.UserID == userID }, nil)), nil
}

func (r *LeadRepository) CountByStatus(ctx context.Context, userID int64) (map[string]int, error) {
	counts := make(map[string]int)
	for _, l := range r.t.filter(func(l *lead.Lead) bool { return l.UserID == userID }, nil) {
		counts[l.Status]++
	}
	return counts, nil
}

// TaskRepository is an in-memory task.Repository
type TaskRepository struct {
	t *table[*task.Task]
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{t: newTable(func(t *task.Task) *task.Task {
		cp := *t
		return &cp
	})}
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) (int64, error) {
	ts := now()
	t.CreatedAt = ts
	t.UpdatedAt = ts
	return r.t.insert(func(id int64) *task.Task {
		t.ID = id
		return t
	}), nil
}

func (r *TaskRepository) GetByID(ctx context.Context, userID int64, id int64) (*task.Task, error) {
	t, ok := r.t.get(id, func(t *task.Task) bool { return t.UserID == userID })
	if !ok {
		return nil, errors.NotFound("Task")
	}
	return t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	t.UpdatedAt = now()
	if !r.t.replace(t.ID, t, func(old *task.Task) bool { return old.UserID == t.UserID }) {
		return errors.NotFound("Task")
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID int64, id int64) error {
	if !r.t.remove(id, func(t *task.Task) bool { return t.UserID == userID }) {
		return errors.NotFound("Task")
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context, userID int64, filter task.Filter) ([]*task.Task, error) {
	match := func(t *task.Task) bool {
		return t.UserID == userID &&
			(filter.Status == "" || t.Status == filter.Status) &&
			(filter.Priority == "" || t.Priority == filter.Priority) &&
			(filter.Assignee == "" || t.Assignee == filter.Assignee)
	}
	return r.t.filter(match, func(a, b *task.Task) bool {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	}), nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context, userID int64) (map[string]int, error) {
	counts := make(map[string]int)
	for _, t := range r.t.filter(func(t *task.Task) bool { return t.UserID == userID }, nil) {
		counts[t.Status]++
	}
	return counts, nil
}

// TeamRepository is an in-memory team.Repository
type TeamRepository struct {
	t *table[*team.Member]
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{t: newTable(func(m *team.Member) *team.Member {
		cp := *m
		cp.Permissions = append([]string{}, m.Permissions...)
		return &cp
	})}
}

func (r *TeamRepository) Create(ctx context.Context, m *team.Member) (int64, error) {
	if _, err := r.GetByEmail(ctx, m.UserID, m.Email); err == nil {
		return 0, errors.Conflict("A team member with this email already exists")
	}
	ts := now()
	m.CreatedAt = ts
	m.UpdatedAt = ts
	return r.t.insert(func(id int64) *team.Member {
		m.ID = id
		return m
	}), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, userID int64, id int64) (*team.Member, error) {
	m, ok := r.t.get(id, func(m *team.Member) bool { return m.UserID == userID })
	if !ok {
		return nil, errors.NotFound("Team member")
	}
	return m, nil
}

func (r *TeamRepository) GetByEmail(ctx context.Context, userID int64, email string) (*team.Member, error) {
	found := r.t.filter(func(m *team.Member) bool { return m.UserID == userID && m.Email == email }, nil)
	if len(found) == 0 {
		return nil, errors.NotFound("Team member")
	}
	return found[0], nil
}

func (r *TeamRepository) Update(ctx context.Context, m *team.Member) error {
	m.UpdatedAt = now()
	if !r.t.replace(m.ID, m, func(old *team.Member) bool { return old.UserID == m.UserID }) {
		return errors.NotFound("Team member")
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, userID int64, id int64) error {
	if !r.t.remove(id, func(m *team.Member) bool { return m.UserID == userID }) {
		return errors.NotFound("Team member")
	}
	return nil
}

func (r *TeamRepository) List(ctx context.Context, userID int64) ([]*team.Member, error) {
	return r.t.filter(
		func(m *team.Member) bool { return m.UserID == userID },
		func(a, b *team.Member) bool { return a.ID < b.ID },
	), nil
}

func (r *TeamRepository) Count(ctx context.Context, userID int64) (int, error) {
	return len(r.t.filter(func(m *team.Member) bool { return m.UserID == userID }, nil)), nil
}

func (r *TeamRepository) CountSeats(ctx context.Context, userID int64) (int, error) {
	return len(r.t.filter(func(m *team.Member) bool {
		return m.UserID == userID && m.Role != team.RoleOwner
	}, nil)), nil
}
