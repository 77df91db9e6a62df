package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/cache"
	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/repository"
)

// StatsSource looks up AniList statistics for a profile's linked account.
type StatsSource interface {
	UserStats(ctx context.Context, name string) (*domain.AniListStats, error)
}

type ProfileUsecase struct {
	repo   repository.ProfileRepository
	stats  StatsSource
	cache  *cache.Cache[*domain.Profile]
	logger *slog.Logger
}

func NewProfileUsecase(repo repository.ProfileRepository, stats StatsSource, ttl time.Duration, logger *slog.Logger) *ProfileUsecase {
	return &ProfileUsecase{
		repo:   repo,
		stats:  stats,
		cache:  cache.New[*domain.Profile]("profiles", ttl, cache.Options{}),
		logger: logger,
	}
}

// GetPublic resolves a profile by username. Usernames that could never be
// valid are reported as not found without touching the database.
func (u *ProfileUsecase) GetPublic(ctx context.Context, username string) (*domain.Profile, error) {
	username = domain.NormalizeUsername(username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, domain.ErrProfileNotFound
	}

	p, err := u.cache.GetOrLoad(ctx, username, func(ctx context.Context) (*domain.Profile, error) {
		return u.repo.GetByUsername(ctx, username)
	})
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

type ProfilePage struct {
	Profile *domain.Profile
	Theme   domain.Theme
	Stats   *domain.AniListStats // nil when no AniList account is linked or the lookup failed
}

// PublicPage gathers everything the /:username page renders.
func (u *ProfileUsecase) PublicPage(ctx context.Context, username string) (*ProfilePage, error) {
	p, err := u.GetPublic(ctx, username)
	if err != nil {
		return nil, err
	}

	page := &ProfilePage{Profile: p, Theme: domain.ThemeByName(p.Theme)}
	if p.AniListUsername != "" && u.stats != nil {
		stats, err := u.stats.UserStats(ctx, p.AniListUsername)
		if err != nil {
			u.logger.WarnContext(ctx, "anilist stats unavailable",
				slog.String("username", p.Username),
				slog.String("anilist", p.AniListUsername),
				slog.Any("error", err),
			)
		} else {
			page.Stats = stats
		}
	}
	return page, nil
}

func (u *ProfileUsecase) GetOwn(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get own profile: %w", err)
	}
	return p, nil
}

type SaveProfileInput struct {
	UserID          string
	Username        string
	DisplayName     string
	AvatarURL       string
	Bio             string
	Theme           string
	AniListUsername string
	Links           []domain.SocialLink
}

func (in *SaveProfileInput) normalize() error {
	in.Username = domain.NormalizeUsername(in.Username)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Theme = strings.ToLower(strings.TrimSpace(in.Theme))
	in.AniListUsername = strings.TrimSpace(in.AniListUsername)

	if err := domain.ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := domain.ValidateDisplayName(in.DisplayName); err != nil {
		return err
	}
	if err := domain.ValidateBio(in.Bio); err != nil {
		return err
	}
	if in.AvatarURL != "" && !domain.IsHTTPURL(in.AvatarURL) {
		return domain.ErrInvalidAvatar
	}
	if in.Theme == "" {
		in.Theme = domain.DefaultThemeName
	} else if !domain.IsKnownTheme(in.Theme) {
		return domain.ErrInvalidTheme
	}
	if err := domain.ValidateAniListName(in.AniListUsername); err != nil {
		return err
	}
	for i := range in.Links {
		in.Links[i].Platform = strings.TrimSpace(in.Links[i].Platform)
		in.Links[i].URL = strings.TrimSpace(in.Links[i].URL)
	}
	return domain.ValidateLinks(in.Links)
}

// Save creates or replaces the caller's profile.
func (u *ProfileUsecase) Save(ctx context.Context, in SaveProfileInput) (*domain.Profile, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	previous, err := u.repo.GetByUserID(ctx, in.UserID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	saved, err := u.repo.Upsert(ctx, &domain.Profile{
		UserID:          in.UserID,
		Username:        in.Username,
		DisplayName:     in.DisplayName,
		AvatarURL:       in.AvatarURL,
		Bio:             in.Bio,
		Theme:           in.Theme,
		AniListUsername: in.AniListUsername,
		Links:           in.Links,
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	if previous != nil {
		u.cache.Delete(previous.Username)
	}
	u.cache.Delete(saved.Username)
	return saved, nil
}

func (u *ProfileUsecase) Delete(ctx context.Context, userID string) error {
	p, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if err := u.repo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	u.cache.Delete(p.Username)
	return nil
}

type ListProfilesInput struct {
	Cursor string
	Limit  int
}

type ListProfilesResult struct {
	Profiles   []*domain.Profile
	NextCursor *string
}

type profileCursor struct {
	CreatedAt time.Time `json:"c"`
	ID        string    `json:"i"`
}

func decodeProfileCursor(s string) (*time.Time, string, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, "", fmt.Errorf("decode cursor: %w", err)
	}
	var c profileCursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, "", fmt.Errorf("unmarshal cursor: %w", err)
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		return nil, "", errors.New("incomplete cursor")
	}
	return &c.CreatedAt, c.ID, nil
}

func encodeProfileCursor(createdAt time.Time, id string) string {
	b, _ := json.Marshal(profileCursor{CreatedAt: createdAt, ID: id})
	return base64.RawURLEncoding.EncodeToString(b)
}

// List pages through all public profiles, newest first.
func (u *ProfileUsecase) List(ctx context.Context, input ListProfilesInput) (ListProfilesResult, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	repoInput := repository.ListProfilesInput{Limit: limit + 1}
	if input.Cursor != "" {
		cursorTime, cursorID, err := decodeProfileCursor(input.Cursor)
		if err != nil {
			return ListProfilesResult{}, domain.ErrInvalidCursor
		}
		repoInput.CursorTime = cursorTime
		repoInput.CursorID = cursorID
	}

	profiles, err := u.repo.List(ctx, repoInput)
	if err != nil {
		return ListProfilesResult{}, fmt.Errorf("list profiles: %w", err)
	}

	var nextCursor *string
	if len(profiles) > limit {
		profiles = profiles[:limit]
		last := profiles[limit-1]
		s := encodeProfileCursor(last.CreatedAt, last.ID)
		nextCursor = &s
	}

	return ListProfilesResult{Profiles: profiles, NextCursor: nextCursor}, nil
}

func (u *ProfileUsecase) Caches() []cache.Sweeper {
	return []cache.Sweeper{u.cache}
}
