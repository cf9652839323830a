package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pratik-mahalle/bizdesk/internal/domain/portfolio"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

type PortfolioRepository struct {
	db *DB
}

func NewPortfolioRepository(db *DB) portfolio.Repository {
	return &PortfolioRepository{db: db}
}

const portfolioColumns = `id, user_id, slug, business_name, tagline, description, services, tools,
	contact_info, social_links, stats, testimonials, is_public, created_at, updated_at`

// Upsert keys on user_id; created_at survives replacement
func (r *PortfolioRepository) Upsert(ctx context.Context, p *portfolio.Portfolio) error {
	ts := now()
	p.UpdatedAt = ts

	cols, err := encodePortfolioJSON(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO portfolios (user_id, slug, business_name, tagline, description, services, tools,
			contact_info, social_links, stats, testimonials, is_public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			slug = excluded.slug,
			business_name = excluded.business_name,
			tagline = excluded.tagline,
			description = excluded.description,
			services = excluded.services,
			tools = excluded.tools,
			contact_info = excluded.contact_info,
			social_links = excluded.social_links,
			stats = excluded.stats,
			testimonials = excluded.testimonials,
			is_public = excluded.is_public,
			updated_at = excluded.updated_at`

	var id, createdAt int64
	err = r.db.queryRow(ctx, "upsert", "portfolios", query+" RETURNING id, created_at",
		p.UserID, p.Slug, p.BusinessName, p.Tagline, p.Description, cols[0], cols[1],
		cols[2], cols[3], cols[4], cols[5], p.IsPublic, toMicros(ts), toMicros(ts),
	).Scan(&id, &createdAt)
	if isUniqueViolation(err) {
		return errors.Conflict("This portfolio address is already taken")
	}
	if err != nil {
		return errors.DatabaseError("Failed to save portfolio", err)
	}

	p.ID = id
	p.CreatedAt = fromMicros(createdAt)
	return nil
}

func (r *PortfolioRepository) GetByUser(ctx context.Context, userID int64) (*portfolio.Portfolio, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE user_id = ?`
	return r.getOne(ctx, query, userID)
}

func (r *PortfolioRepository) GetBySlug(ctx context.Context, slug string) (*portfolio.Portfolio, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE slug = ?`
	return r.getOne(ctx, query, slug)
}

func (r *PortfolioRepository) getOne(ctx context.Context, query string, arg interface{}) (*portfolio.Portfolio, error) {
	var p portfolio.Portfolio
	var services, tools, contact, social, stats, testimonials string
	var createdAt, updatedAt int64

	err := r.db.queryRow(ctx, "select", "portfolios", query, arg).Scan(
		&p.ID, &p.UserID, &p.Slug, &p.BusinessName, &p.Tagline, &p.Description, &services, &tools,
		&contact, &social, &stats, &testimonials, &p.IsPublic, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Portfolio")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get portfolio", err)
	}

	fields := []struct {
		raw  string
		dest interface{}
	}{
		{services, &p.Services},
		{tools, &p.Tools},
		{contact, &p.Contact},
		{social, &p.SocialLinks},
		{stats, &p.Stats},
		{testimonials, &p.Testimonials},
	}
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.raw), f.dest); err != nil {
			return nil, errors.DatabaseError("Failed to decode portfolio", err)
		}
	}

	p.CreatedAt = fromMicros(createdAt)
	p.UpdatedAt = fromMicros(updatedAt)
	return &p, nil
}

func encodePortfolioJSON(p *portfolio.Portfolio) ([6]string, error) {
	var out [6]string
	services, tools := p.Services, p.Tools
	if services == nil {
		services = []string{}
	}
	if tools == nil {
		tools = []string{}
	}
	social := p.SocialLinks
	if social == nil {
		social = map[string]string{}
	}
	testimonials := p.Testimonials
	if testimonials == nil {
		testimonials = []portfolio.Testimonial{}
	}

	for i, v := range []interface{}{services, tools, p.Contact, social, p.Stats, testimonials} {
		b, err := json.Marshal(v)
		if err != nil {
			return out, errors.Internal("Failed to encode portfolio", err)
		}
		out[i] = string(b)
	}
	return out, nil
}
