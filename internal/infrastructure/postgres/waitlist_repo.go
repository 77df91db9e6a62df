package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WaitlistRepository struct {
	pool *pgxpool.Pool
}

func NewWaitlistRepository(pool *pgxpool.Pool) *WaitlistRepository {
	return &WaitlistRepository{pool: pool}
}

// Add inserts the email. created is false when it was already on the list.
func (r *WaitlistRepository) Add(ctx context.Context, email, source string) (bool, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`INSERT INTO waitlist (email, source) VALUES ($1, $2)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id`,
		email, source,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("add to waitlist: %w", err)
	}
	return true, nil
}

func (r *WaitlistRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM waitlist`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count waitlist: %w", err)
	}
	return n, nil
}
