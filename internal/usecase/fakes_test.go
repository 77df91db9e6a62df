package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/email"
	"github.com/ErlanBelekov/kumo-site/internal/repository"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ---- repositories ----

type fakeProfileRepo struct {
	getByUsername  func(ctx context.Context, username string) (*domain.Profile, error)
	getByUserID    func(ctx context.Context, userID string) (*domain.Profile, error)
	upsert         func(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	deleteByUserID func(ctx context.Context, userID string) error
	list           func(ctx context.Context, input repository.ListProfilesInput) ([]*domain.Profile, error)
}

func (r *fakeProfileRepo) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return r.getByUsername(ctx, username)
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.getByUserID(ctx, userID)
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	return r.upsert(ctx, p)
}

func (r *fakeProfileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	return r.deleteByUserID(ctx, userID)
}

func (r *fakeProfileRepo) List(ctx context.Context, input repository.ListProfilesInput) ([]*domain.Profile, error) {
	return r.list(ctx, input)
}

type fakeCountdownRepo struct {
	getBySlug func(ctx context.Context, slug string) (*domain.Countdown, error)
	upsert    func(ctx context.Context, c *domain.Countdown) (*domain.Countdown, error)
}

func (r *fakeCountdownRepo) GetBySlug(ctx context.Context, slug string) (*domain.Countdown, error) {
	return r.getBySlug(ctx, slug)
}

func (r *fakeCountdownRepo) Upsert(ctx context.Context, c *domain.Countdown) (*domain.Countdown, error) {
	return r.upsert(ctx, c)
}

type fakeWaitlistRepo struct {
	add   func(ctx context.Context, email, source string) (bool, error)
	count func(ctx context.Context) (int64, error)
}

func (r *fakeWaitlistRepo) Add(ctx context.Context, email, source string) (bool, error) {
	return r.add(ctx, email, source)
}

func (r *fakeWaitlistRepo) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}

// ---- upstreams ----

type fakeMediaSource struct {
	trending  func(ctx context.Context, page, perPage int) ([]*domain.Media, error)
	seasonal  func(ctx context.Context, season domain.Season, year, page, perPage int) ([]*domain.Media, error)
	search    func(ctx context.Context, query string, mediaType domain.MediaType, page, perPage int) ([]*domain.Media, error)
	media     func(ctx context.Context, id int) (*domain.Media, error)
	userStats func(ctx context.Context, name string) (*domain.AniListStats, error)
}

func (s *fakeMediaSource) Trending(ctx context.Context, page, perPage int) ([]*domain.Media, error) {
	return s.trending(ctx, page, perPage)
}

func (s *fakeMediaSource) Seasonal(ctx context.Context, season domain.Season, year, page, perPage int) ([]*domain.Media, error) {
	return s.seasonal(ctx, season, year, page, perPage)
}

func (s *fakeMediaSource) Search(ctx context.Context, query string, mediaType domain.MediaType, page, perPage int) ([]*domain.Media, error) {
	return s.search(ctx, query, mediaType, page, perPage)
}

func (s *fakeMediaSource) Media(ctx context.Context, id int) (*domain.Media, error) {
	return s.media(ctx, id)
}

func (s *fakeMediaSource) UserStats(ctx context.Context, name string) (*domain.AniListStats, error) {
	return s.userStats(ctx, name)
}

type fakeReleaseSource struct {
	latest func(ctx context.Context) (*domain.Release, error)
	repo   func(ctx context.Context) (*domain.RepoStats, error)
}

func (s *fakeReleaseSource) LatestRelease(ctx context.Context) (*domain.Release, error) {
	return s.latest(ctx)
}

func (s *fakeReleaseSource) Repo(ctx context.Context) (*domain.RepoStats, error) {
	return s.repo(ctx)
}

type fakeEmailSender struct {
	send func(ctx context.Context, msg email.Message) error
}

func (s *fakeEmailSender) Send(ctx context.Context, msg email.Message) error {
	return s.send(ctx, msg)
}

type fakeAuthProvider struct {
	signIn func(ctx context.Context, email, password string) (*domain.Session, error)
	signUp func(ctx context.Context, email, password string) (bool, error)
}

func (p *fakeAuthProvider) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	return p.signIn(ctx, email, password)
}

func (p *fakeAuthProvider) SignUp(ctx context.Context, email, password string) (bool, error) {
	return p.signUp(ctx, email, password)
}
