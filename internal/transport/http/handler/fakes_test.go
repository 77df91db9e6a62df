package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type fakeAuthUsecase struct {
	signIn func(ctx context.Context, email, password string) (*domain.Session, error)
	signUp func(ctx context.Context, email, password string) (bool, error)
}

func (f *fakeAuthUsecase) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	return f.signIn(ctx, email, password)
}

func (f *fakeAuthUsecase) SignUp(ctx context.Context, email, password string) (bool, error) {
	return f.signUp(ctx, email, password)
}

type fakeCatalog struct {
	trending  func(ctx context.Context, in usecase.PageInput) ([]*domain.Media, error)
	seasonal  func(ctx context.Context, in usecase.SeasonalInput) ([]*domain.Media, error)
	search    func(ctx context.Context, in usecase.SearchInput) ([]*domain.Media, error)
	media     func(ctx context.Context, id int) (*domain.Media, error)
	userStats func(ctx context.Context, name string) (*domain.AniListStats, error)
}

func (f *fakeCatalog) Trending(ctx context.Context, in usecase.PageInput) ([]*domain.Media, error) {
	return f.trending(ctx, in)
}

func (f *fakeCatalog) Seasonal(ctx context.Context, in usecase.SeasonalInput) ([]*domain.Media, error) {
	return f.seasonal(ctx, in)
}

func (f *fakeCatalog) Search(ctx context.Context, in usecase.SearchInput) ([]*domain.Media, error) {
	return f.search(ctx, in)
}

func (f *fakeCatalog) Media(ctx context.Context, id int) (*domain.Media, error) {
	return f.media(ctx, id)
}

func (f *fakeCatalog) UserStats(ctx context.Context, name string) (*domain.AniListStats, error) {
	return f.userStats(ctx, name)
}

type fakeWaitlist struct {
	join  func(ctx context.Context, email, source string) error
	count func(ctx context.Context) (int64, error)
}

func (f *fakeWaitlist) Join(ctx context.Context, email, source string) error {
	return f.join(ctx, email, source)
}

func (f *fakeWaitlist) Count(ctx context.Context) (int64, error) {
	return f.count(ctx)
}

type fakeProfiles struct {
	getPublic  func(ctx context.Context, username string) (*domain.Profile, error)
	getOwn     func(ctx context.Context, userID string) (*domain.Profile, error)
	save       func(ctx context.Context, in usecase.SaveProfileInput) (*domain.Profile, error)
	delete     func(ctx context.Context, userID string) error
	list       func(ctx context.Context, in usecase.ListProfilesInput) (usecase.ListProfilesResult, error)
	publicPage func(ctx context.Context, username string) (*usecase.ProfilePage, error)
}

func (f *fakeProfiles) GetPublic(ctx context.Context, username string) (*domain.Profile, error) {
	return f.getPublic(ctx, username)
}

func (f *fakeProfiles) GetOwn(ctx context.Context, userID string) (*domain.Profile, error) {
	return f.getOwn(ctx, userID)
}

func (f *fakeProfiles) Save(ctx context.Context, in usecase.SaveProfileInput) (*domain.Profile, error) {
	return f.save(ctx, in)
}

func (f *fakeProfiles) Delete(ctx context.Context, userID string) error {
	return f.delete(ctx, userID)
}

func (f *fakeProfiles) List(ctx context.Context, in usecase.ListProfilesInput) (usecase.ListProfilesResult, error) {
	return f.list(ctx, in)
}

func (f *fakeProfiles) PublicPage(ctx context.Context, username string) (*usecase.ProfilePage, error) {
	return f.publicPage(ctx, username)
}

type fakeCountdown struct {
	current   func(ctx context.Context) (*usecase.CountdownView, error)
	remaining func(c *domain.Countdown) domain.Remaining
}

func (f *fakeCountdown) Current(ctx context.Context) (*usecase.CountdownView, error) {
	return f.current(ctx)
}

func (f *fakeCountdown) Remaining(c *domain.Countdown) domain.Remaining {
	return f.remaining(c)
}
