package repository

import (
	"context"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
)

type CountdownRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Countdown, error)
	Upsert(ctx context.Context, c *domain.Countdown) (*domain.Countdown, error)
}
