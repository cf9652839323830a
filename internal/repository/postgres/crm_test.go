package postgres

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/domain/payment"
	"github.com/pratik-mahalle/bizdesk/internal/domain/portfolio"
	"github.com/pratik-mahalle/bizdesk/internal/domain/task"
	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

func TestLeadRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := NewLeadRepository(db)
	ctx := context.Background()

	for _, l := range []*lead.Lead{
		{UserID: owner.ID, Name: "Ada", Email: "ada@acme.test", Company: "Acme", Source: lead.SourceReferral, Status: lead.StatusNew},
		{UserID: owner.ID, Name: "Bob", Email: "bob@globex.test", Company: "Globex", Source: lead.SourceWebsite, Status: lead.StatusQualified},
		{UserID: owner.ID, Name: "Cy", Email: "cy@acme.test", Company: "Acme", Source: lead.SourceWebsite, Status: lead.StatusNew},
	} {
		_, err := repo.Create(ctx, l)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter lead.Filter
		want   []string
	}{
		{"all", lead.Filter{Status: lead.FilterAll, Source: lead.FilterAll}, []string{"Cy", "Bob", "Ada"}},
		{"status", lead.Filter{Status: lead.StatusNew}, []string{"Cy", "Ada"}},
		{"source", lead.Filter{Source: lead.SourceWebsite}, []string{"Cy", "Bob"}},
		{"search company", lead.Filter{Search: "acme"}, []string{"Cy", "Ada"}},
		{"search and status", lead.Filter{Search: "acme", Status: lead.StatusQualified}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, owner.ID, tt.filter)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, l := range got {
				names = append(names, l.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	counts, err := repo.CountByStatus(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{lead.StatusNew: 2, lead.StatusQualified: 1}, counts)

	n, err := repo.Count(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = repo.Count(ctx, owner.ID+1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTaskRepository_UpdateAndFilter(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := NewTaskRepository(db)
	ctx := context.Background()

	tk := &task.Task{UserID: owner.ID, Title: "Send quote", Status: task.StatusPending, Priority: task.PriorityHigh, Assignee: "sam"}
	_, err := repo.Create(ctx, tk)
	require.NoError(t, err)
	_, err = repo.Create(ctx, &task.Task{UserID: owner.ID, Title: "File taxes", Status: task.StatusPending, Priority: task.PriorityLow})
	require.NoError(t, err)

	tk.Status = task.StatusCompleted
	require.NoError(t, repo.Update(ctx, tk))

	done, err := repo.List(ctx, owner.ID, task.Filter{Status: task.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "Send quote", done[0].Title)

	mine, err := repo.List(ctx, owner.ID, task.Filter{Assignee: "sam", Priority: task.PriorityHigh})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestTeamRepository_PermissionsConflictsAndSeats(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := NewTeamRepository(db)
	ctx := context.Background()

	m := &team.Member{UserID: owner.ID, Name: "Sam", Email: "sam@example.com", Role: team.RoleManager,
		Permissions: []string{team.PermTasks, team.PermLeads}, Status: team.StatusActive}
	_, err := repo.Create(ctx, m)
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, owner.ID, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{team.PermTasks, team.PermLeads}, got.Permissions)

	_, err = repo.Create(ctx, &team.Member{UserID: owner.ID, Name: "Dup", Email: "sam@example.com"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict), "duplicate email is a conflict, got %v", err)

	n, err := repo.Count(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.Create(ctx, &team.Member{UserID: owner.ID, Name: owner.Name, Email: owner.Email,
		Role: team.RoleOwner, Status: team.StatusActive})
	require.NoError(t, err)
	n, err = repo.Count(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	seats, err := repo.CountSeats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, seats, "the owner does not take a seat")
}

func TestPaymentRepository_ListAllJoinsUser(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, &payment.Payment{UserID: owner.ID, Tier: tier.Starter,
		Amount: decimal.RequireFromString("19.00"), Method: payment.MethodCard, Reference: "ref-1"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, id, payment.StatusCompleted))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "owner@example.com", all[0].UserEmail)
	assert.Equal(t, payment.StatusCompleted, all[0].Status)
	assert.True(t, all[0].Amount.Equal(decimal.NewFromInt(19)))

	assert.True(t, errors.HasCode(repo.UpdateStatus(ctx, id+100, payment.StatusFailed), errors.ErrCodeNotFound))
}

func TestPortfolioRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	p := &portfolio.Portfolio{
		UserID:       owner.ID,
		Slug:         "studio",
		BusinessName: "Studio",
		Services:     []string{"Branding"},
		SocialLinks:  map[string]string{"github": "https://github.com/studio"},
		Testimonials: []portfolio.Testimonial{{Name: "Ada", Text: "Great", Rating: 5}},
		IsPublic:     true,
	}
	require.NoError(t, repo.Upsert(ctx, p))
	firstID := p.ID

	p.Tagline = "We ship"
	p.Slug = "studio-2"
	require.NoError(t, repo.Upsert(ctx, p))
	assert.Equal(t, firstID, p.ID)

	got, err := repo.GetBySlug(ctx, "studio-2")
	require.NoError(t, err)
	assert.Equal(t, "We ship", got.Tagline)
	assert.True(t, got.IsPublic)
	assert.Equal(t, 5, got.Testimonials[0].Rating)
	assert.Equal(t, "https://github.com/studio", got.SocialLinks["github"])

	_, err = repo.GetBySlug(ctx, "studio")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}
