package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/domain/task"
	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/repository/memory"
	"github.com/pratik-mahalle/bizdesk/internal/testutil"
)

func newMemoryUser(t *testing.T, store *memory.Store, plan tier.ID) *user.User {
	t.Helper()
	u := &user.User{Email: "owner@example.com", Name: "Owner", Role: user.RoleUser, Tier: plan}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func TestLeadService_CreateDefaultsAndGate(t *testing.T) {
	store := memory.NewStore()
	log := testutil.NewLogger()
	u := newMemoryUser(t, store, tier.Free)
	tiers := NewTierService(store.Users, store.Usage, store.Counters(), 12, log)
	svc := NewLeadService(store.Leads, tiers, log)
	ctx := context.Background()

	l, err := svc.Create(ctx, &lead.Lead{UserID: u.ID, Name: " Jane ", Email: "jane@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", l.Name)
	assert.Equal(t, lead.StatusNew, l.Status)
	assert.Equal(t, lead.SourceOther, l.Source)

	_, err = svc.Create(ctx, &lead.Lead{UserID: u.ID, Name: "No Email"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = svc.Create(ctx, &lead.Lead{UserID: u.ID, Name: "Bad", Email: "b@x.test", Status: "won"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))

	for i := 0; i < 24; i++ {
		_, err = store.Leads.Create(ctx, &lead.Lead{UserID: u.ID, Name: "Seeded", Email: "seeded@x.test"})
		require.NoError(t, err)
	}
	// 1 created + 24 seeded = 25, the free plan limit
	_, err = svc.Create(ctx, &lead.Lead{UserID: u.ID, Name: "Over", Email: "over@x.test"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeFeatureLimit))

	require.NoError(t, svc.Delete(ctx, u.ID, l.ID))
	_, err = svc.Create(ctx, &lead.Lead{UserID: u.ID, Name: "Room", Email: "room@x.test"})
	assert.NoError(t, err, "deleting a lead frees room under the limit")
}

func TestLeadService_ListAndSummary(t *testing.T) {
	store := memory.NewStore()
	log := testutil.NewLogger()
	u := newMemoryUser(t, store, tier.Business)
	svc := NewLeadService(store.Leads, NewTierService(store.Users, store.Usage, store.Counters(), 12, log), log)
	ctx := context.Background()

	for _, l := range []*lead.Lead{
		{UserID: u.ID, Name: "Ann", Email: "ann@globex.test", Company: "Globex", Status: lead.StatusQualified},
		{UserID: u.ID, Name: "Bob", Email: "bob@initech.test", Company: "Initech"},
		{UserID: u.ID, Name: "Cid", Email: "cid@globex.test", Company: "Globex", Status: lead.StatusLost},
	} {
		_, err := svc.Create(ctx, l)
		require.NoError(t, err)
	}

	found, err := svc.List(ctx, u.ID, lead.Filter{Search: "GLOBEX", Status: lead.FilterAll})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Cid", found[0].Name)

	sum, err := svc.GetSummary(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.Status[lead.StatusNew])
}

func TestLeadService_Update(t *testing.T) {
	store := memory.NewStore()
	log := testutil.NewLogger()
	u := newMemoryUser(t, store, tier.Business)
	svc := NewLeadService(store.Leads, NewTierService(store.Users, store.Usage, store.Counters(), 12, log), log)
	ctx := context.Background()

	l, err := svc.Create(ctx, &lead.Lead{UserID: u.ID, Name: "Ann", Email: "ann@globex.test"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, &lead.Lead{ID: l.ID, UserID: u.ID, Name: "Ann", Email: "ann@globex.test", Status: lead.StatusContacted})
	require.NoError(t, err)
	assert.Equal(t, lead.StatusContacted, updated.Status)
	assert.Equal(t, l.CreatedAt, updated.CreatedAt)

	_, err = svc.Update(ctx, &lead.Lead{ID: l.ID, UserID: u.ID + 1, Name: "X", Email: "x@x.test"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	require.NoError(t, svc.Delete(ctx, u.ID, l.ID))
	_, err = svc.GetByID(ctx, u.ID, l.ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestTaskService(t *testing.T) {
	store := memory.NewStore()
	svc := NewTaskService(store.Tasks, testutil.NewLogger())
	ctx := context.Background()

	tk, err := svc.Create(ctx, &task.Task{UserID: 1, Title: "Send quotes"})
	require.NoError(t, err)
	assert.Equal(t, task.StatusPending, tk.Status)
	assert.Equal(t, task.PriorityMedium, tk.Priority)

	_, err = svc.Create(ctx, &task.Task{UserID: 1, Title: "  "})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	_, err = svc.Create(ctx, &task.Task{UserID: 1, Title: "x", Priority: "urgent"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))
	_, err = svc.Create(ctx, &task.Task{Title: "x"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))

	done, err := svc.UpdateStatus(ctx, 1, tk.ID, task.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, done.Status)

	_, err = svc.UpdateStatus(ctx, 1, tk.ID, "blocked")
	assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))

	_, err = svc.Create(ctx, &task.Task{UserID: 1, Title: "Call bank", Priority: task.PriorityHigh})
	require.NoError(t, err)

	high, err := svc.List(ctx, 1, task.Filter{Priority: task.PriorityHigh})
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "Call bank", high[0].Title)
}

func seedOwner(t *testing.T, store *memory.Store, u *user.User) *team.Member {
	t.Helper()
	owner := &team.Member{UserID: u.ID, Name: u.Name, Email: u.Email, Role: team.RoleOwner,
		Permissions: team.Permissions, Status: team.StatusActive}
	_, err := store.Team.Create(context.Background(), owner)
	require.NoError(t, err)
	return owner
}

func TestTeamService(t *testing.T) {
	store := memory.NewStore()
	log := testutil.NewLogger()
	u := newMemoryUser(t, store, tier.Starter)
	owner := seedOwner(t, store, u)
	svc := NewTeamService(store.Team, NewTierService(store.Users, store.Usage, store.Counters(), 12, log), log)
	ctx := context.Background()

	m, err := svc.Add(ctx, &team.Member{UserID: u.ID, Name: "Sam", Email: "Sam@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, team.RoleMember, m.Role)
	assert.Equal(t, team.StatusPending, m.Status)
	assert.Equal(t, []string{team.PermTasks}, m.Permissions)

	_, err = svc.Add(ctx, &team.Member{UserID: u.ID, Name: "Sam again", Email: "sam@example.com"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))

	_, err = svc.Add(ctx, &team.Member{UserID: u.ID, Name: "P", Email: "p@example.com", Permissions: []string{"root"}})
	assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))

	for _, email := range []string{"third@example.com", "fourth@example.com"} {
		_, err = svc.Add(ctx, &team.Member{UserID: u.ID, Name: "Extra", Email: email})
		require.NoError(t, err)
	}

	// Starter allows 3 seats besides the owner
	_, err = svc.Add(ctx, &team.Member{UserID: u.ID, Name: "Fifth", Email: "fifth@example.com"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeFeatureLimit))

	err = svc.Remove(ctx, u.ID, owner.ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidOperation))

	m.Permissions = []string{team.PermInvoices, team.PermLeads, team.PermInvoices}
	m.Role = ""
	updated, err := svc.Update(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, []string{team.PermInvoices, team.PermLeads}, updated.Permissions)
	assert.Equal(t, team.RoleMember, updated.Role, "an empty role keeps the stored one")

	require.NoError(t, svc.Remove(ctx, u.ID, m.ID))
	_, err = svc.Add(ctx, &team.Member{UserID: u.ID, Name: "Fifth", Email: "fifth@example.com"})
	require.NoError(t, err, "removing a member frees the seat")

	members, err := svc.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, members, 4)
	assert.Equal(t, owner.ID, members[0].ID)
}

func TestTeamService_OwnerRoleIsFixed(t *testing.T) {
	store := memory.NewStore()
	log := testutil.NewLogger()
	u := newMemoryUser(t, store, tier.Business)
	owner := seedOwner(t, store, u)
	svc := NewTeamService(store.Team, NewTierService(store.Users, store.Usage, store.Counters(), 12, log), log)
	ctx := context.Background()

	sam, err := svc.Add(ctx, &team.Member{UserID: u.ID, Name: "Sam", Email: "sam@example.com", Role: team.RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name   string
		member team.Member
	}{
		{
			name:   "add a second owner",
			member: team.Member{UserID: u.ID, Name: "Eve", Email: "eve@example.com", Role: team.RoleOwner},
		},
		{
			name:   "demote the owner",
			member: team.Member{ID: owner.ID, UserID: u.ID, Name: owner.Name, Email: owner.Email, Role: team.RoleMember},
		},
		{
			name:   "promote a member to owner",
			member: team.Member{ID: sam.ID, UserID: u.ID, Name: "Sam", Email: "sam@example.com", Role: team.RoleOwner},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.member
			if m.ID == 0 {
				_, err = svc.Add(ctx, &m)
			} else {
				_, err = svc.Update(ctx, &m)
			}
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidOperation), "got %v", err)
		})
	}

	// the owner survives every attempt and still cannot be removed
	got, err := svc.Get(ctx, u.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, team.RoleOwner, got.Role)
	assert.True(t, errors.HasCode(svc.Remove(ctx, u.ID, owner.ID), errors.ErrCodeInvalidOperation))

	// the owner may still edit their own details
	got.Name = "Renamed Owner"
	updated, err := svc.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Owner", updated.Name)
	assert.Equal(t, team.RoleOwner, updated.Role)
}

// staleEmailLookup misses existing members, as a concurrent insert would
type staleEmailLookup struct {
	team.Repository
}

func (staleEmailLookup) GetByEmail(context.Context, int64, string) (*team.Member, error) {
	return nil, errors.NotFound("Team member")
}

func TestTeamService_DuplicateRaceIsConflict(t *testing.T) {
	store := memory.NewStore()
	log := testutil.NewLogger()
	u := newMemoryUser(t, store, tier.Business)
	svc := NewTeamService(staleEmailLookup{store.Team}, NewTierService(store.Users, store.Usage, store.Counters(), 12, log), log)
	ctx := context.Background()

	_, err := svc.Add(ctx, &team.Member{UserID: u.ID, Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, &team.Member{UserID: u.ID, Name: "Sam", Email: "sam@example.com"})
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestStandingLimits_SurviveMonthBoundary(t *testing.T) {
	store := memory.NewStore()
	log := testutil.NewLogger()
	u := newMemoryUser(t, store, tier.Free)
	seedOwner(t, store, u)
	now := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
	tiers := newTierService(store.Users, store.Usage, store.Counters(), 12, log, func() time.Time { return now })
	svc := NewTeamService(store.Team, tiers, log)
	ctx := context.Background()

	// Free allows one seat besides the owner
	a, err := svc.Add(ctx, &team.Member{UserID: u.ID, Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, u.ID, a.ID))

	_, err = svc.Add(ctx, &team.Member{UserID: u.ID, Name: "B", Email: "b@example.com"})
	require.NoError(t, err, "a removed member gives the seat back within the month")

	_, err = svc.Add(ctx, &team.Member{UserID: u.ID, Name: "C", Email: "c@example.com"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeFeatureLimit))

	now = now.Add(2 * time.Hour)
	require.Equal(t, "2026-02", tier.Period(now))
	_, err = svc.Add(ctx, &team.Member{UserID: u.ID, Name: "C", Email: "c@example.com"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeFeatureLimit), "a new month does not reset seats")

	st, err := tiers.Status(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, tier.FeatureStatus{Feature: tier.FeatureTeamMembers, Used: 1, Limit: 1}, st.Features[3])

	usage, err := store.Usage.Get(ctx, u.ID, "2026-01")
	require.NoError(t, err)
	assert.Zero(t, usage[tier.FeatureTeamMembers], "seats are never written to the period counters")
}
