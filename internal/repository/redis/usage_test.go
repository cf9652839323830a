package redis

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

func setupUsageTest(t *testing.T) (*UsageRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return NewUsageRepository(client, "test"), mr
}

func TestUsageRepository_IncrementAndGet(t *testing.T) {
	repo, mr := setupUsageTest(t)
	ctx := context.Background()

	n, err := repo.Increment(ctx, 1, tier.FeatureInvoices, "2026-06")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repo.Increment(ctx, 1, tier.FeatureInvoices, "2026-06")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	usage, err := repo.Get(ctx, 1, "2026-06")
	require.NoError(t, err)
	assert.Equal(t, tier.Usage{tier.FeatureInvoices: 2}, usage)

	assert.True(t, mr.Exists("test:usage:1:2026-06"))
	assert.Equal(t, keyTTL, mr.TTL("test:usage:1:2026-06"))

	empty, err := repo.Get(ctx, 2, "2026-06")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUsageRepository_ConcurrentIncrements(t *testing.T) {
	repo, _ := setupUsageTest(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Increment(ctx, 9, tier.FeatureLeads, "2026-06")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	usage, err := repo.Get(ctx, 9, "2026-06")
	require.NoError(t, err)
	assert.Equal(t, int64(25), usage[tier.FeatureLeads])
}

func TestUsageRepository_Prune(t *testing.T) {
	repo, mr := setupUsageTest(t)
	ctx := context.Background()

	for _, p := range []string{"2025-01", "2025-05", "2026-06"} {
		_, err := repo.Increment(ctx, 1, tier.FeaturePDFExports, p)
		require.NoError(t, err)
	}

	n, err := repo.Prune(ctx, "2025-06")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.False(t, mr.Exists("test:usage:1:2025-01"))
	assert.True(t, mr.Exists("test:usage:1:2026-06"))
}

func TestUsageRepository_ServerDown(t *testing.T) {
	repo, mr := setupUsageTest(t)
	mr.Close()

	_, err := repo.Get(context.Background(), 1, "2026-06")
	assert.True(t, errors.HasCode(err, errors.ErrCodePersistence))
}
