package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/domain/portfolio"
	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

func TestInvoiceRepository_CopiesOnWrite(t *testing.T) {
	repo := NewInvoiceRepository()
	ctx := context.Background()

	inv := &invoice.Invoice{UserID: 1, InvoiceNumber: "INV-1", Items: []invoice.LineItem{{Description: "a"}}}
	id, err := repo.Create(ctx, inv)
	require.NoError(t, err)
	assert.Equal(t, id, inv.ID)

	inv.Items[0].Description = "mutated"
	got, err := repo.GetByID(ctx, 1, id)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Items[0].Description)
	assert.Equal(t, invoice.StatusDraft, got.Status)

	_, err = repo.GetByID(ctx, 2, id)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestInvoiceRepository_MarkOverdue(t *testing.T) {
	repo := NewInvoiceRepository()
	ctx := context.Background()

	for _, inv := range []*invoice.Invoice{
		{UserID: 1, Status: invoice.StatusSent, DueDate: "2026-01-01"},
		{UserID: 1, Status: invoice.StatusSent, DueDate: "2026-03-01"},
		{UserID: 2, Status: invoice.StatusDraft, DueDate: "2026-01-01"},
	} {
		_, err := repo.Create(ctx, inv)
		require.NoError(t, err)
	}

	n, err := repo.MarkOverdue(ctx, "2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	counts, err := repo.CountByStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[invoice.Status]int{invoice.StatusOverdue: 1, invoice.StatusSent: 1}, counts)
}

func TestLeadRepository_ListUsesFilter(t *testing.T) {
	repo := NewLeadRepository()
	ctx := context.Background()
	for _, name := range []string{"Ada", "Bob"} {
		_, err := repo.Create(ctx, &lead.Lead{UserID: 1, Name: name, Status: lead.StatusNew})
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, 1, lead.Filter{Search: "ad"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0].Name)

	all, err := repo.List(ctx, 1, lead.Filter{Status: lead.FilterAll})
	require.NoError(t, err)
	assert.Equal(t, "Bob", all[0].Name)
}

func TestTeamRepository_SeatsAndConflicts(t *testing.T) {
	repo := NewTeamRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &team.Member{UserID: 1, Email: "owner@x.test", Role: team.RoleOwner})
	require.NoError(t, err)
	sam := &team.Member{UserID: 1, Email: "sam@x.test", Role: team.RoleMember}
	_, err = repo.Create(ctx, sam)
	require.NoError(t, err)

	_, err = repo.Create(ctx, &team.Member{UserID: 1, Email: "sam@x.test"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
	_, err = repo.Create(ctx, &team.Member{UserID: 2, Email: "sam@x.test"})
	require.NoError(t, err, "emails are unique per account")

	n, err := repo.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	seats, err := repo.CountSeats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, seats)

	require.NoError(t, repo.Delete(ctx, 1, sam.ID))
	seats, err = repo.CountSeats(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, seats)
}

func TestStore_Counters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	for _, name := range []string{"Ada", "Bob"} {
		_, err := s.Leads.Create(ctx, &lead.Lead{UserID: 7, Name: name})
		require.NoError(t, err)
	}

	counters := s.Counters()
	require.Contains(t, counters, tier.FeatureLeads)
	require.Contains(t, counters, tier.FeatureTeamMembers)
	n, err := counters[tier.FeatureLeads](ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPortfolioRepository_SlugOwnership(t *testing.T) {
	repo := NewPortfolioRepository()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &portfolio.Portfolio{UserID: 1, Slug: "studio"}))
	err := repo.Upsert(ctx, &portfolio.Portfolio{UserID: 2, Slug: "studio"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))

	p := &portfolio.Portfolio{UserID: 1, Slug: "studio", Tagline: "v2"}
	require.NoError(t, repo.Upsert(ctx, p))
	got, err := repo.GetBySlug(ctx, "studio")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Tagline)
	assert.Equal(t, p.ID, got.ID)
}

func TestStore_SeedDemo(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	today := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

	u, err := s.SeedDemo(ctx, "hash", today)
	require.NoError(t, err)

	invoices, err := s.Invoices.List(ctx, u.ID, invoice.Filter{})
	require.NoError(t, err)
	require.Len(t, invoices, 3)
	assert.Equal(t, "Initech", invoices[0].ClientName)
	for _, inv := range invoices {
		assert.True(t, inv.Amount.Equal(inv.Subtotal().Add(inv.TaxAmount)))
	}

	sum, err := s.Invoices.SumPaid(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(1320)), "got %s", sum)

	pub, err := s.Portfolios.GetBySlug(ctx, "northwind-studio")
	require.NoError(t, err)
	assert.True(t, pub.IsPublic)

	_, err = s.SeedDemo(ctx, "hash", today)
	assert.Error(t, err, "seeding twice collides on the demo email")
}
