package refresher

import (
	"context"
	"errors"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
)

type catalogWarmer interface {
	Trending(ctx context.Context, in usecase.PageInput) ([]*domain.Media, error)
	Seasonal(ctx context.Context, in usecase.SeasonalInput) ([]*domain.Media, error)
}

type releaseWarmer interface {
	Latest(ctx context.Context) (*domain.Release, error)
	Repo(ctx context.Context) (*domain.RepoStats, error)
}

type countdownWarmer interface {
	Current(ctx context.Context) (*usecase.CountdownView, error)
}

// landingTrending matches the page size the landing page requests, so the
// warmed entry is the one it reads.
const landingTrending = 6

// WarmJobs returns the jobs that pre-load what the landing page and the
// public API serve most often.
func WarmJobs(catalog catalogWarmer, releases releaseWarmer, countdown countdownWarmer) []Job {
	return []Job{
		{Name: "trending", Run: func(ctx context.Context) error {
			if _, err := catalog.Trending(ctx, usecase.PageInput{Page: 1, PerPage: landingTrending}); err != nil {
				return err
			}
			_, err := catalog.Trending(ctx, usecase.PageInput{Page: 1})
			return err
		}},
		{Name: "seasonal", Run: func(ctx context.Context) error {
			_, err := catalog.Seasonal(ctx, usecase.SeasonalInput{})
			return err
		}},
		{Name: "release", Run: func(ctx context.Context) error {
			if _, err := releases.Latest(ctx); err != nil && !errors.Is(err, domain.ErrNoRelease) {
				return err
			}
			_, err := releases.Repo(ctx)
			return err
		}},
		{Name: "countdown", Run: func(ctx context.Context) error {
			_, err := countdown.Current(ctx)
			return err
		}},
	}
}
