// Package redis stores tier usage counters in Redis hashes, one hash per
// user and period with a field per feature.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/pratik-mahalle/bizdesk/internal/config"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/metrics"
)

// keyTTL keeps a period's hash for a little over a year after its last write
const keyTTL = 400 * 24 * time.Hour

// NewClient connects to Redis and verifies the connection
func NewClient(cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// UsageRepository implements tier.UsageRepository on Redis
type UsageRepository struct {
	client *goredis.Client
	prefix string
}

// NewUsageRepository creates a usage store. Keys are namespaced by prefix.
func NewUsageRepository(client *goredis.Client, prefix string) *UsageRepository {
	if prefix == "" {
		prefix = "bizdesk"
	}
	return &UsageRepository{client: client, prefix: prefix}
}

func (r *UsageRepository) key(userID int64, period string) string {
	return fmt.Sprintf("%s:usage:%d:%s", r.prefix, userID, period)
}

// Get returns every counter of a user for a period
func (r *UsageRepository) Get(ctx context.Context, userID int64, period string) (tier.Usage, error) {
	defer observe("select", time.Now())

	fields, err := r.client.HGetAll(ctx, r.key(userID, period)).Result()
	if err != nil {
		return nil, errors.DatabaseError("Failed to load usage", err)
	}

	usage := tier.Usage{}
	for f, v := range fields {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		usage[tier.Feature(f)] = n
	}
	return usage, nil
}

// Increment bumps one counter with HINCRBY, which is atomic on the server
func (r *UsageRepository) Increment(ctx context.Context, userID int64, feature tier.Feature, period string) (int64, error) {
	defer observe("upsert", time.Now())

	key := r.key(userID, period)
	pipe := r.client.TxPipeline()
	incr := pipe.HIncrBy(ctx, key, string(feature), 1)
	pipe.Expire(ctx, key, keyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errors.DatabaseError("Failed to record usage", err)
	}
	return incr.Val(), nil
}

// Prune deletes hashes of periods before the given one
func (r *UsageRepository) Prune(ctx context.Context, before string) (int64, error) {
	defer observe("delete", time.Now())

	pattern := r.prefix + ":usage:*"
	var removed int64
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return removed, errors.DatabaseError("Failed to scan usage keys", err)
		}

		var stale []string
		for _, k := range keys {
			period := k[strings.LastIndex(k, ":")+1:]
			if period < before {
				stale = append(stale, k)
			}
		}
		if len(stale) > 0 {
			n, err := r.client.Del(ctx, stale...).Result()
			if err != nil {
				return removed, errors.DatabaseError("Failed to prune usage", err)
			}
			removed += n
		}

		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

// PingContext reports whether Redis is reachable
func (r *UsageRepository) PingContext(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, "redis_usage", time.Since(start))
}
