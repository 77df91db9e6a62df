package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	landingTrending = 6
	landingPosts    = 3
	landingTimeout  = 3 * time.Second
)

type CountdownReader interface {
	Current(ctx context.Context) (*CountdownView, error)
}

type TrendingReader interface {
	Trending(ctx context.Context, in PageInput) ([]*domain.Media, error)
}

type ReleaseReader interface {
	Latest(ctx context.Context) (*domain.Release, error)
	Repo(ctx context.Context) (*domain.RepoStats, error)
}

type PostLister interface {
	Recent(n int) []*domain.Post
}

// LandingData is everything the home page renders. Any section may be
// missing; its name is then listed in Failed.
type LandingData struct {
	SiteName  string
	Countdown *CountdownView
	Trending  []*domain.Media
	Release   *domain.Release
	Repo      *domain.RepoStats
	Posts     []*domain.Post
	Failed    []string
}

type LandingUsecase struct {
	siteName  string
	countdown CountdownReader
	trending  TrendingReader
	releases  ReleaseReader
	posts     PostLister
	logger    *slog.Logger
}

func NewLandingUsecase(siteName string, countdown CountdownReader, trending TrendingReader, releases ReleaseReader, posts PostLister, logger *slog.Logger) *LandingUsecase {
	return &LandingUsecase{
		siteName:  siteName,
		countdown: countdown,
		trending:  trending,
		releases:  releases,
		posts:     posts,
		logger:    logger,
	}
}

// Build loads every landing section concurrently. Section failures are
// logged and recorded, never returned.
func (u *LandingUsecase) Build(ctx context.Context) *LandingData {
	ctx, cancel := context.WithTimeout(ctx, landingTimeout)
	defer cancel()

	data := &LandingData{
		SiteName: u.siteName,
		Posts:    u.posts.Recent(landingPosts),
	}

	var (
		mu     sync.Mutex
		failed []string
	)
	section := func(name string, fn func(context.Context) error) func() error {
		return func() error {
			if err := fn(ctx); err != nil {
				u.logger.WarnContext(ctx, "landing section failed", slog.String("section", name), slog.Any("error", err))
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
			}
			return nil
		}
	}

	var g errgroup.Group
	g.Go(section("countdown", func(ctx context.Context) error {
		v, err := u.countdown.Current(ctx)
		data.Countdown = v
		return err
	}))
	g.Go(section("trending", func(ctx context.Context) error {
		list, err := u.trending.Trending(ctx, PageInput{Page: 1, PerPage: landingTrending})
		data.Trending = list
		return err
	}))
	g.Go(section("release", func(ctx context.Context) error {
		rel, err := u.releases.Latest(ctx)
		if errors.Is(err, domain.ErrNoRelease) {
			return nil
		}
		data.Release = rel
		return err
	}))
	g.Go(section("repo", func(ctx context.Context) error {
		repo, err := u.releases.Repo(ctx)
		data.Repo = repo
		return err
	}))
	_ = g.Wait()

	sort.Strings(failed)
	data.Failed = failed
	return data
}
