package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CountdownRepository struct {
	pool *pgxpool.Pool
}

func NewCountdownRepository(pool *pgxpool.Pool) *CountdownRepository {
	return &CountdownRepository{pool: pool}
}

func (r *CountdownRepository) GetBySlug(ctx context.Context, slug string) (*domain.Countdown, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT slug, label, target_at, created_at, updated_at FROM countdowns WHERE slug = $1`, slug)
	return scanCountdown(row)
}

func (r *CountdownRepository) Upsert(ctx context.Context, c *domain.Countdown) (*domain.Countdown, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO countdowns (slug, label, target_at) VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET
			label      = EXCLUDED.label,
			target_at  = EXCLUDED.target_at,
			updated_at = NOW()
		RETURNING slug, label, target_at, created_at, updated_at`,
		c.Slug, c.Label, c.TargetAt,
	)
	return scanCountdown(row)
}

func scanCountdown(row rowScanner) (*domain.Countdown, error) {
	var c domain.Countdown
	if err := row.Scan(&c.Slug, &c.Label, &c.TargetAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCountdownNotFound
		}
		return nil, fmt.Errorf("scan countdown: %w", err)
	}
	return &c, nil
}
