package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
)

type ListProfilesInput struct {
	CursorTime *time.Time // cursor on (created_at DESC, id DESC); nil = first page
	CursorID   string
	Limit      int
}

type ProfileRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	// Upsert is keyed by UserID; a username owned by someone else yields ErrUsernameTaken.
	Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
	List(ctx context.Context, input ListProfilesInput) ([]*domain.Profile, error)
}
