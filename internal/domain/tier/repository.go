package tier

import "context"

// CountFunc returns how many records of a standing feature a user holds now
type CountFunc func(ctx context.Context, userID int64) (int, error)

// Counters maps standing features to their live counts
type Counters map[Feature]CountFunc

// UsageRepository stores per-user, per-period feature counters.
// Increment must be atomic per (user, feature, period).
type UsageRepository interface {
	// Get returns all counters of a user for a period. Missing features count zero.
	Get(ctx context.Context, userID int64, period string) (Usage, error)

	// Increment adds one to a counter and returns the new value
	Increment(ctx context.Context, userID int64, feature Feature, period string) (int64, error)

	// Prune removes counters of periods strictly before period
	Prune(ctx context.Context, before string) (int64, error)
}
