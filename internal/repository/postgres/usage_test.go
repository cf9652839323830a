package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
)

func TestUsageRepository_IncrementAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	n, err := repo.Increment(ctx, 1, tier.FeatureInvoices, "2026-06")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Increment(ctx, 1, tier.FeatureInvoices, "2026-06")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.Increment(ctx, 1, tier.FeatureLeads, "2026-06")
	require.NoError(t, err)

	usage, err := repo.Get(ctx, 1, "2026-06")
	require.NoError(t, err)
	assert.Equal(t, tier.Usage{tier.FeatureInvoices: 2, tier.FeatureLeads: 1}, usage)

	usage, err = repo.Get(ctx, 1, "2026-07")
	require.NoError(t, err)
	assert.Empty(t, usage)
}

func TestUsageRepository_ConcurrentIncrements(t *testing.T) {
	db := newTestDB(t)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Increment(ctx, 7, tier.FeaturePDFExports, "2026-06")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	usage, err := repo.Get(ctx, 7, "2026-06")
	require.NoError(t, err)
	assert.Equal(t, int64(20), usage[tier.FeaturePDFExports])
}

func TestUsageRepository_Prune(t *testing.T) {
	db := newTestDB(t)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	for _, p := range []string{"2025-01", "2025-02", "2026-06"} {
		_, err := repo.Increment(ctx, 1, tier.FeatureInvoices, p)
		require.NoError(t, err)
	}

	n, err := repo.Prune(ctx, "2025-06")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	usage, err := repo.Get(ctx, 1, "2026-06")
	require.NoError(t, err)
	assert.Equal(t, int64(1), usage[tier.FeatureInvoices])
}
