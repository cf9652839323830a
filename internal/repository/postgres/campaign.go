package postgres

import (
	"context"
	"database/sql"

	"github.com/pratik-mahalle/bizdesk/internal/domain/campaign"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

type CampaignRepository struct {
	db *DB
}

func NewCampaignRepository(db *DB) campaign.Repository {
	return &CampaignRepository{db: db}
}

const campaignColumns = `id, user_id, name, description, channel, status, budget, start_date, end_date, created_at, updated_at`

func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) (int64, error) {
	ts := now()
	c.CreatedAt = ts
	c.UpdatedAt = ts

	query := `
		INSERT INTO campaigns (user_id, name, description, channel, status, budget, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := r.db.insert(ctx, "campaigns", query,
		c.UserID, c.Name, c.Description, c.Channel, c.Status, c.Budget, c.StartDate, c.EndDate, toMicros(ts), toMicros(ts),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create campaign", err)
	}
	c.ID = id
	return id, nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, userID int64, id int64) (*campaign.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE user_id = ? AND id = ?`

	c, err := scanCampaign(r.db.queryRow(ctx, "select", "campaigns", query, userID, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Campaign")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get campaign", err)
	}
	return c, nil
}

func (r *CampaignRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	c.UpdatedAt = now()

	query := `
		UPDATE campaigns
		SET name = ?, description = ?, channel = ?, status = ?, budget = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	result, err := r.db.exec(ctx, "update", "campaigns", query,
		c.Name, c.Description, c.Channel, c.Status, c.Budget, c.StartDate, c.EndDate, toMicros(c.UpdatedAt), c.UserID, c.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update campaign", err)
	}
	return affectedOne(result, "Campaign")
}

func (r *CampaignRepository) Delete(ctx context.Context, userID int64, id int64) error {
	result, err := r.db.exec(ctx, "delete", "campaigns", `DELETE FROM campaigns WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete campaign", err)
	}
	return affectedOne(result, "Campaign")
}

func (r *CampaignRepository) List(ctx context.Context, userID int64, filter campaign.Filter) ([]*campaign.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Channel != "" {
		query += " AND channel = ?"
		args = append(args, filter.Channel)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.query(ctx, "select", "campaigns", query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list campaigns", err)
	}
	defer rows.Close()

	campaigns := make([]*campaign.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan campaign", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate campaigns", err)
	}

	return campaigns, nil
}

func (r *CampaignRepository) CountByStatus(ctx context.Context, userID int64) (map[string]int, error) {
	return countByStatus(ctx, r.db, "campaigns", userID)
}

func scanCampaign(row rowScanner) (*campaign.Campaign, error) {
	var c campaign.Campaign
	var createdAt, updatedAt int64

	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Channel, &c.Status, &c.Budget,
		&c.StartDate, &c.EndDate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = fromMicros(createdAt)
	c.UpdatedAt = fromMicros(updatedAt)
	return &c, nil
}
