package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/cache"
	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/repository"
)

var ErrInvalidCountdown = errors.New("countdown needs a slug, a label and a target time")

type CountdownUsecase struct {
	repo  repository.CountdownRepository
	slug  string
	cache *cache.Cache[*domain.Countdown]
	now   func() time.Time
}

func NewCountdownUsecase(repo repository.CountdownRepository, slug string, ttl time.Duration) *CountdownUsecase {
	return &CountdownUsecase{
		repo:  repo,
		slug:  slug,
		cache: cache.New[*domain.Countdown]("countdown", ttl, cache.Options{MaxEntries: 16}),
		now:   time.Now,
	}
}

type CountdownView struct {
	Countdown *domain.Countdown
	Remaining domain.Remaining
}

// Current returns the site's countdown with the time left as of now.
func (u *CountdownUsecase) Current(ctx context.Context) (*CountdownView, error) {
	return u.Get(ctx, u.slug)
}

func (u *CountdownUsecase) Get(ctx context.Context, slug string) (*CountdownView, error) {
	c, err := u.cache.GetOrLoad(ctx, slug, func(ctx context.Context) (*domain.Countdown, error) {
		return u.repo.GetBySlug(ctx, slug)
	})
	if err != nil {
		return nil, fmt.Errorf("get countdown: %w", err)
	}
	return &CountdownView{Countdown: c, Remaining: u.Remaining(c)}, nil
}

// Remaining evaluates c against the usecase clock.
func (u *CountdownUsecase) Remaining(c *domain.Countdown) domain.Remaining {
	return c.Remaining(u.now())
}

func (u *CountdownUsecase) Set(ctx context.Context, slug, label string, target time.Time) (*domain.Countdown, error) {
	slug = strings.TrimSpace(slug)
	label = strings.TrimSpace(label)
	if slug == "" || label == "" || target.IsZero() {
		return nil, ErrInvalidCountdown
	}

	saved, err := u.repo.Upsert(ctx, &domain.Countdown{Slug: slug, Label: label, TargetAt: target.UTC()})
	if err != nil {
		return nil, fmt.Errorf("save countdown: %w", err)
	}
	u.cache.Delete(slug)
	return saved, nil
}

func (u *CountdownUsecase) Caches() []cache.Sweeper {
	return []cache.Sweeper{u.cache}
}

// WithClock replaces the clock used for date-dependent logic.
func (u *CountdownUsecase) WithClock(now func() time.Time) *CountdownUsecase {
	u.now = now
	return u
}
