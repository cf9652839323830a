package tier

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

type fakeUsage struct {
	mu     sync.Mutex
	counts map[string]int64
	getErr error
}

func newFakeUsage() *fakeUsage {
	return &fakeUsage{counts: map[string]int64{}}
}

func key(userID int64, f Feature, period string) string {
	return fmt.Sprintf("%s/%s/%d", period, f, userID)
}

func (u *fakeUsage) Get(_ context.Context, userID int64, period string) (Usage, error) {
	if u.getErr != nil {
		return nil, u.getErr
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	out := Usage{}
	for _, f := range Features {
		if n := u.counts[key(userID, f, period)]; n > 0 {
			out[f] = n
		}
	}
	return out, nil
}

func (u *fakeUsage) Increment(_ context.Context, userID int64, f Feature, period string) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	k := key(userID, f, period)
	u.counts[k]++
	return u.counts[k], nil
}

func (u *fakeUsage) Prune(context.Context, string) (int64, error) { return 0, nil }

func fixedClock() time.Time { return time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC) }

func TestLookup_DefaultsToFree(t *testing.T) {
	assert.Equal(t, Business, Lookup(Business).ID)
	assert.Equal(t, Free, Lookup("platinum").ID)
	assert.False(t, Known("platinum"))
	assert.True(t, Known(Starter))
}

func TestLimit(t *testing.T) {
	assert.True(t, Unlimited.Allows(1_000_000))
	assert.True(t, Limit(3).Allows(2))
	assert.False(t, Limit(3).Allows(3))
	assert.False(t, Limit(0).Allows(0))
}

func TestGate_CanUseFeature_FiniteLimit(t *testing.T) {
	ctx := context.Background()
	usage := newFakeUsage()
	g := NewGate(1, Free, usage).WithClock(fixedClock)
	limit := int(Lookup(Free).Limit(FeaturePDFExports))

	for i := 0; i < limit; i++ {
		ok, err := g.CanUseFeature(ctx, FeaturePDFExports)
		require.NoError(t, err)
		require.True(t, ok, "use %d should be allowed", i+1)
		require.NoError(t, g.UpdateUsage(ctx, FeaturePDFExports))
	}

	ok, err := g.CanUseFeature(ctx, FeaturePDFExports)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = g.CanUseFeature(ctx, FeatureInvoices)
	require.NoError(t, err)
	assert.True(t, ok, "other features keep their own counters")
}

func TestGate_CanUseFeature_IsPure(t *testing.T) {
	ctx := context.Background()
	usage := newFakeUsage()
	g := NewGate(1, Free, usage).WithClock(fixedClock)

	for i := 0; i < 10; i++ {
		_, err := g.CanUseFeature(ctx, FeatureInvoices)
		require.NoError(t, err)
	}
	u, err := g.GetUsage(ctx)
	require.NoError(t, err)
	assert.Zero(t, u[FeatureInvoices])
}

func TestGate_Unlimited(t *testing.T) {
	ctx := context.Background()
	usage := newFakeUsage()
	g := NewGate(2, Professional, usage).WithClock(fixedClock)

	for i := 0; i < 500; i++ {
		require.NoError(t, g.UpdateUsage(ctx, FeatureInvoices))
	}
	ok, err := g.CanUseFeature(ctx, FeatureInvoices)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, g.Check(ctx, FeatureInvoices))
}

func TestGate_UnlimitedSkipsStore(t *testing.T) {
	usage := newFakeUsage()
	usage.getErr = stderrors.New("store down")
	g := NewGate(2, Business, usage)

	ok, err := g.CanUseFeature(context.Background(), FeatureLeads)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGate_Check_ReturnsFeatureLimit(t *testing.T) {
	ctx := context.Background()
	usage := newFakeUsage()
	g := NewGate(3, Free, usage).WithClock(fixedClock)
	for i := 0; i < 5; i++ {
		require.NoError(t, g.UpdateUsage(ctx, FeatureInvoices))
	}

	err := g.Check(ctx, FeatureInvoices)
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeFeatureLimit, appErr.Code)
	assert.Equal(t, 402, appErr.StatusCode)
	details, ok := appErr.Details.(errors.LimitDetails)
	require.True(t, ok)
	assert.Equal(t, errors.LimitDetails{Feature: "invoices", Tier: "free", Limit: 5, Used: 5}, details)
}

func TestGate_Check_StoreFailure(t *testing.T) {
	usage := newFakeUsage()
	usage.getErr = stderrors.New("connection refused")
	g := NewGate(1, Free, usage)

	err := g.Check(context.Background(), FeatureInvoices)
	assert.True(t, errors.HasCode(err, errors.ErrCodePersistence))
}

func TestGate_NewPeriodStartsAtZero(t *testing.T) {
	ctx := context.Background()
	usage := newFakeUsage()
	now := fixedClock()
	g := NewGate(1, Free, usage).WithClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		require.NoError(t, g.UpdateUsage(ctx, FeaturePDFExports))
	}
	ok, _ := g.CanUseFeature(ctx, FeaturePDFExports)
	assert.False(t, ok)

	now = now.AddDate(0, 1, 0)
	ok, _ = g.CanUseFeature(ctx, FeaturePDFExports)
	assert.True(t, ok)
}

func TestGate_Status(t *testing.T) {
	ctx := context.Background()
	usage := newFakeUsage()
	g := NewGate(1, Starter, usage).WithClock(fixedClock).WithCounters(Counters{
		FeatureLeads: func(context.Context, int64) (int, error) { return 1, nil },
	})
	require.NoError(t, g.UpdateUsage(ctx, FeatureInvoices))

	st, err := g.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Starter, st.Tier.ID)
	assert.Equal(t, "2026-06", st.Period)
	require.Len(t, st.Features, len(Features))
	assert.Equal(t, FeatureStatus{Feature: FeatureInvoices, Used: 1, Limit: 50, Allowed: true}, st.Features[0])
	assert.Equal(t, FeatureStatus{Feature: FeatureLeads, Used: 1, Limit: 250, Allowed: true}, st.Features[2])
	assert.Equal(t, FeatureStatus{Feature: FeatureTeamMembers, Used: 0, Limit: 3, Allowed: true}, st.Features[3])
}

func TestGate_StandingFeatures(t *testing.T) {
	ctx := context.Background()
	usage := newFakeUsage()
	now := fixedClock()
	seats := 1
	g := NewGate(1, Free, usage).
		WithClock(func() time.Time { return now }).
		WithCounters(Counters{
			FeatureTeamMembers: func(context.Context, int64) (int, error) { return seats, nil },
		})

	err := g.Check(ctx, FeatureTeamMembers)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeFeatureLimit))

	// a new month does not free a seat
	now = now.AddDate(0, 1, 0)
	ok, err := g.CanUseFeature(ctx, FeatureTeamMembers)
	require.NoError(t, err)
	assert.False(t, ok)

	// removing a member does
	seats = 0
	ok, err = g.CanUseFeature(ctx, FeatureTeamMembers)
	require.NoError(t, err)
	assert.True(t, ok)

	// recording is a no-op for standing features
	require.NoError(t, g.UpdateUsage(ctx, FeatureTeamMembers))
	assert.Empty(t, usage.counts)
}

func TestGate_StandingCountFailure(t *testing.T) {
	g := NewGate(1, Free, newFakeUsage()).WithCounters(Counters{
		FeatureLeads: func(context.Context, int64) (int, error) { return 0, stderrors.New("db gone") },
	})

	err := g.Check(context.Background(), FeatureLeads)
	assert.True(t, errors.HasCode(err, errors.ErrCodePersistence))

	_, err = g.GetUsage(context.Background())
	assert.Error(t, err)
}

func TestPeriodMonthsBefore(t *testing.T) {
	now := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03", Period(now))
	assert.Equal(t, "2026-02", PeriodMonthsBefore(now, 1))
	assert.Equal(t, "2025-03", PeriodMonthsBefore(now, 12))
}
