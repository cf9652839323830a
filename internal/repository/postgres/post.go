package postgres

import (
	"context"
	"database/sql"

	"github.com/pratik-mahalle/bizdesk/internal/domain/post"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

type PostRepository struct {
	db *DB
}

func NewPostRepository(db *DB) post.Repository {
	return &PostRepository{db: db}
}

const postColumns = `id, user_id, campaign_id, title, content, platform, status, scheduled_for, created_at, updated_at`

func (r *PostRepository) Create(ctx context.Context, p *post.Post) (int64, error) {
	ts := now()
	p.CreatedAt = ts
	p.UpdatedAt = ts

	query := `
		INSERT INTO posts (user_id, campaign_id, title, content, platform, status, scheduled_for, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := r.db.insert(ctx, "posts", query,
		p.UserID, p.CampaignID, p.Title, p.Content, p.Platform, p.Status, p.ScheduledFor, toMicros(ts), toMicros(ts),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create post", err)
	}
	p.ID = id
	return id, nil
}

func (r *PostRepository) GetByID(ctx context.Context, userID int64, id int64) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = ? AND id = ?`

	p, err := scanPost(r.db.queryRow(ctx, "select", "posts", query, userID, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Post")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get post", err)
	}
	return p, nil
}

func (r *PostRepository) Update(ctx context.Context, p *post.Post) error {
	p.UpdatedAt = now()

	query := `
		UPDATE posts
		SET campaign_id = ?, title = ?, content = ?, platform = ?, status = ?, scheduled_for = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	result, err := r.db.exec(ctx, "update", "posts", query,
		p.CampaignID, p.Title, p.Content, p.Platform, p.Status, p.ScheduledFor, toMicros(p.UpdatedAt), p.UserID, p.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update post", err)
	}
	return affectedOne(result, "Post")
}

func (r *PostRepository) Delete(ctx context.Context, userID int64, id int64) error {
	result, err := r.db.exec(ctx, "delete", "posts", `DELETE FROM posts WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete post", err)
	}
	return affectedOne(result, "Post")
}

func (r *PostRepository) List(ctx context.Context, userID int64, filter post.Filter) ([]*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Platform != "" {
		query += " AND platform = ?"
		args = append(args, filter.Platform)
	}
	if filter.CampaignID != 0 {
		query += " AND campaign_id = ?"
		args = append(args, filter.CampaignID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.query(ctx, "select", "posts", query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list posts", err)
	}
	defer rows.Close()

	posts := make([]*post.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan post", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate posts", err)
	}

	return posts, nil
}

func (r *PostRepository) DetachCampaign(ctx context.Context, userID int64, campaignID int64) (int64, error) {
	query := `UPDATE posts SET campaign_id = 0, updated_at = ? WHERE user_id = ? AND campaign_id = ?`

	result, err := r.db.exec(ctx, "update", "posts", query, toMicros(now()), userID, campaignID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to detach posts", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}
	return n, nil
}

func scanPost(row rowScanner) (*post.Post, error) {
	var p post.Post
	var createdAt, updatedAt int64

	err := row.Scan(&p.ID, &p.UserID, &p.CampaignID, &p.Title, &p.Content, &p.Platform, &p.Status,
		&p.ScheduledFor, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = fromMicros(createdAt)
	p.UpdatedAt = fromMicros(updatedAt)
	return &p, nil
}
