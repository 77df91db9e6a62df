package repository

import (
	"context"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
)

type UserRepository interface {
	Upsert(ctx context.Context, id, email string) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
