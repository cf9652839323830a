package postgres

import (
	"context"

	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

// UsageRepository keeps feature counters in the feature_usage table
type UsageRepository struct {
	db *DB
}

func NewUsageRepository(db *DB) tier.UsageRepository {
	return &UsageRepository{db: db}
}

func (r *UsageRepository) Get(ctx context.Context, userID int64, period string) (tier.Usage, error) {
	query := `SELECT feature, count FROM feature_usage WHERE user_id = ? AND period = ?`

	rows, err := r.db.query(ctx, "select", "feature_usage", query, userID, period)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load usage", err)
	}
	defer rows.Close()

	usage := tier.Usage{}
	for rows.Next() {
		var feature string
		var count int64
		if err := rows.Scan(&feature, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan usage", err)
		}
		usage[tier.Feature(feature)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate usage", err)
	}

	return usage, nil
}

// Increment upserts so concurrent writers never lose a count
func (r *UsageRepository) Increment(ctx context.Context, userID int64, feature tier.Feature, period string) (int64, error) {
	query := `
		INSERT INTO feature_usage (user_id, feature, period, count) VALUES (?, ?, ?, 1)
		ON CONFLICT (user_id, feature, period) DO UPDATE SET count = feature_usage.count + 1
		RETURNING count`

	var count int64
	err := r.db.queryRow(ctx, "upsert", "feature_usage", query, userID, string(feature), period).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to record usage", err)
	}
	return count, nil
}

func (r *UsageRepository) Prune(ctx context.Context, before string) (int64, error) {
	result, err := r.db.exec(ctx, "delete", "feature_usage", `DELETE FROM feature_usage WHERE period < ?`, before)
	if err != nil {
		return 0, errors.DatabaseError("Failed to prune usage", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}
	return n, nil
}
