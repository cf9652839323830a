package tier

import (
	"context"
	"time"
)

// Service defines the interface for plan lookups and usage metering
type Service interface {
	// Plans lists the catalog
	Plans() []Tier

	// GateFor builds a gate for the user's current plan
	GateFor(ctx context.Context, userID int64) (*Gate, error)

	// Status returns the user's plan and usage for the current period
	Status(ctx context.Context, userID int64) (*Status, error)

	// CanUseFeature is a read-only pre-flight check for clients
	CanUseFeature(ctx context.Context, userID int64, f Feature) (bool, error)

	// PruneUsage drops counters older than the retention window ending at now
	PruneUsage(ctx context.Context, now time.Time) (int64, error)
}
