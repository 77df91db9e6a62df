package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/cache"
	"github.com/ErlanBelekov/kumo-site/internal/domain"
)

// ReleaseSource is implemented by the GitHub client.
type ReleaseSource interface {
	LatestRelease(ctx context.Context) (*domain.Release, error)
	Repo(ctx context.Context) (*domain.RepoStats, error)
}

type ReleaseUsecase struct {
	source   ReleaseSource
	releases *cache.Cache[*domain.Release]
	repos    *cache.Cache[*domain.RepoStats]
}

func NewReleaseUsecase(source ReleaseSource, ttl time.Duration) *ReleaseUsecase {
	return &ReleaseUsecase{
		source:   source,
		releases: cache.New[*domain.Release]("github_release", ttl, cache.Options{MaxEntries: 4}),
		repos:    cache.New[*domain.RepoStats]("github_repo", ttl, cache.Options{MaxEntries: 4}),
	}
}

func (u *ReleaseUsecase) Latest(ctx context.Context) (*domain.Release, error) {
	rel, err := u.releases.GetOrLoad(ctx, "latest", u.source.LatestRelease)
	if err != nil {
		return nil, fmt.Errorf("latest release: %w", err)
	}
	return rel, nil
}

func (u *ReleaseUsecase) Repo(ctx context.Context) (*domain.RepoStats, error) {
	repo, err := u.repos.GetOrLoad(ctx, "repo", u.source.Repo)
	if err != nil {
		return nil, fmt.Errorf("repo stats: %w", err)
	}
	return repo, nil
}

func (u *ReleaseUsecase) Caches() []cache.Sweeper {
	return []cache.Sweeper{u.releases, u.repos}
}
