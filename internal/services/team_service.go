package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
)

// TeamService implements team.Service
type TeamService struct {
	repo   team.Repository
	tiers  tier.Service
	logger *logger.Logger
}

// NewTeamService creates a new team service
func NewTeamService(repo team.Repository, tiers tier.Service, log *logger.Logger) team.Service {
	return &TeamService{
		repo:   repo,
		tiers:  tiers,
		logger: log,
	}
}

func normalizeMember(m *team.Member) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	if m.Name == "" || m.Email == "" {
		return errors.ValidationError("Please fill in name and email", nil)
	}

	switch m.Role {
	case "":
		m.Role = team.RoleMember
	case team.RoleOwner, team.RoleAdmin, team.RoleManager, team.RoleMember:
	default:
		return errors.BadRequest("Invalid role: " + m.Role)
	}

	switch m.Status {
	case "":
		m.Status = team.StatusPending
	case team.StatusActive, team.StatusPending, team.StatusInactive:
	default:
		return errors.BadRequest("Invalid member status: " + m.Status)
	}

	if len(m.Permissions) == 0 {
		m.Permissions = []string{team.PermTasks}
	}
	seen := make(map[string]bool, len(m.Permissions))
	perms := m.Permissions[:0]
	for _, p := range m.Permissions {
		if !knownPermission(p) {
			return errors.BadRequest("Unknown permission: " + p)
		}
		if !seen[p] {
			seen[p] = true
			perms = append(perms, p)
		}
	}
	m.Permissions = perms
	return nil
}

func knownPermission(p string) bool {
	for _, k := range team.Permissions {
		if k == p {
			return true
		}
	}
	return false
}

// Add invites a member. Seats are capped by the plan's team member limit,
// counted over the members that exist now. The owner seat is created with
// the account and cannot be granted.
func (s *TeamService) Add(ctx context.Context, m *team.Member) (*team.Member, error) {
	if m.UserID == 0 {
		return nil, errors.NotAuthenticated()
	}
	if m.Role == team.RoleOwner {
		return nil, errors.InvalidOperation("A team can have only one owner")
	}
	if err := normalizeMember(m); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, m.UserID, m.Email); err == nil {
		return nil, errors.Conflict("A team member with this email already exists")
	} else if !errors.HasCode(err, errors.ErrCodeNotFound) {
		return nil, err
	}

	gate, err := s.tiers.GateFor(ctx, m.UserID)
	if err != nil {
		return nil, err
	}
	if err := checkFeature(ctx, gate, tier.FeatureTeamMembers, s.logger); err != nil {
		return nil, err
	}

	if _, err := s.repo.Create(ctx, m); err != nil {
		s.logger.ErrorWithErr(err, "Failed to add team member")
		return nil, storeError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"member_id": m.ID,
		"user_id":   m.UserID,
		"role":      m.Role,
	}).Info("Team member added")

	return m, nil
}

// Get retrieves a member by ID
func (s *TeamService) Get(ctx context.Context, userID int64, id int64) (*team.Member, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update replaces a member's details. The owner keeps the owner role and
// nobody else can be given it.
func (s *TeamService) Update(ctx context.Context, m *team.Member) (*team.Member, error) {
	existing, err := s.repo.GetByID(ctx, m.UserID, m.ID)
	if err != nil {
		return nil, err
	}
	if m.Role == "" {
		m.Role = existing.Role
	}
	if existing.Role == team.RoleOwner && m.Role != team.RoleOwner {
		return nil, errors.InvalidOperation("The owner's role cannot be changed")
	}
	if existing.Role != team.RoleOwner && m.Role == team.RoleOwner {
		return nil, errors.InvalidOperation("A team can have only one owner")
	}
	if err := normalizeMember(m); err != nil {
		return nil, err
	}
	if m.Email != existing.Email {
		if other, err := s.repo.GetByEmail(ctx, m.UserID, m.Email); err == nil && other.ID != m.ID {
			return nil, errors.Conflict("A team member with this email already exists")
		}
	}
	m.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update team member")
		return nil, storeError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"member_id": m.ID,
		"role":      m.Role,
		"status":    m.Status,
	}).Info("Team member updated")

	return m, nil
}

// Remove deletes a member. The owner seat cannot be removed.
func (s *TeamService) Remove(ctx context.Context, userID int64, id int64) error {
	m, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if m.Role == team.RoleOwner {
		return errors.InvalidOperation("The owner cannot be removed from the team")
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"member_id": id,
	}).Info("Team member removed")

	return nil
}

// List returns members in the order they were added
func (s *TeamService) List(ctx context.Context, userID int64) ([]*team.Member, error) {
	members, err := s.repo.List(ctx, userID)
	if err != nil {
		return []*team.Member{}, err
	}
	return members, nil
}
