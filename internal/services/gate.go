package services

import (
	"context"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/metrics"
)

// checkFeature runs the gate before a metered action and counts denials
func checkFeature(ctx context.Context, g *tier.Gate, f tier.Feature, log *logger.Logger) error {
	err := g.Check(ctx, f)
	if err == nil {
		return nil
	}
	if errors.HasCode(err, errors.ErrCodeFeatureLimit) {
		metrics.RecordGateDenial(string(f), string(g.GetCurrentTier()))
		log.WithFields(map[string]interface{}{
			"feature": f,
			"tier":    g.GetCurrentTier(),
		}).Info("Feature limit reached")
	}
	return err
}

// recordUsage counts a completed metered action. The action already took
// effect, so a counter failure is logged and not returned.
func recordUsage(ctx context.Context, g *tier.Gate, f tier.Feature, log *logger.Logger) {
	if err := g.UpdateUsage(ctx, f); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"feature": f,
		}).Warn("Failed to record feature usage")
		return
	}
	metrics.RecordUsage(string(f))
}
