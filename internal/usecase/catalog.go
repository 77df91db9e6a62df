package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/cache"
	"github.com/ErlanBelekov/kumo-site/internal/domain"
)

// MediaSource is implemented by the AniList client.
type MediaSource interface {
	Trending(ctx context.Context, page, perPage int) ([]*domain.Media, error)
	Seasonal(ctx context.Context, season domain.Season, year, page, perPage int) ([]*domain.Media, error)
	Search(ctx context.Context, query string, mediaType domain.MediaType, page, perPage int) ([]*domain.Media, error)
	Media(ctx context.Context, id int) (*domain.Media, error)
	UserStats(ctx context.Context, name string) (*domain.AniListStats, error)
}

// CatalogUsecase serves AniList data through per-argument TTL caches.
type CatalogUsecase struct {
	source MediaSource
	lists  *cache.Cache[[]*domain.Media]
	media  *cache.Cache[*domain.Media]
	stats  *cache.Cache[*domain.AniListStats]
	now    func() time.Time
}

func NewCatalogUsecase(source MediaSource, ttl time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		source: source,
		lists:  cache.New[[]*domain.Media]("anilist_lists", ttl, cache.Options{}),
		media:  cache.New[*domain.Media]("anilist_media", ttl, cache.Options{}),
		stats:  cache.New[*domain.AniListStats]("anilist_stats", ttl, cache.Options{}),
		now:    time.Now,
	}
}

type PageInput struct {
	Page    int
	PerPage int
}

func (p PageInput) normalized() PageInput {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 12
	}
	if p.PerPage > 50 {
		p.PerPage = 50
	}
	return p
}

func (u *CatalogUsecase) Trending(ctx context.Context, in PageInput) ([]*domain.Media, error) {
	in = in.normalized()
	key := fmt.Sprintf("trending:%d:%d", in.Page, in.PerPage)
	list, err := u.lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]*domain.Media, error) {
		return u.source.Trending(ctx, in.Page, in.PerPage)
	})
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}
	return list, nil
}

type SeasonalInput struct {
	Season string // empty = current season
	Year   int    // zero = year of the current season
	PageInput
}

func (u *CatalogUsecase) Seasonal(ctx context.Context, in SeasonalInput) ([]*domain.Media, error) {
	season, year := CurrentSeason(u.now())
	if in.Season != "" {
		season = domain.Season(strings.ToUpper(in.Season))
		if !season.Valid() {
			return nil, domain.ErrInvalidSeason
		}
		if in.Year == 0 {
			year = u.now().Year()
		}
	}
	if in.Year != 0 {
		year = in.Year
	}
	page := in.PageInput.normalized()

	key := fmt.Sprintf("seasonal:%s:%d:%d:%d", season, year, page.Page, page.PerPage)
	list, err := u.lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]*domain.Media, error) {
		return u.source.Seasonal(ctx, season, year, page.Page, page.PerPage)
	})
	if err != nil {
		return nil, fmt.Errorf("seasonal: %w", err)
	}
	return list, nil
}

type SearchInput struct {
	Query string
	Type  domain.MediaType
	PageInput
}

func (u *CatalogUsecase) Search(ctx context.Context, in SearchInput) ([]*domain.Media, error) {
	q := strings.TrimSpace(in.Query)
	if q == "" {
		return nil, domain.ErrInvalidQuery
	}
	mediaType := domain.MediaType(strings.ToUpper(string(in.Type)))
	if mediaType != domain.MediaManga {
		mediaType = domain.MediaAnime
	}
	page := in.PageInput.normalized()

	key := fmt.Sprintf("search:%s:%d:%d:%s", mediaType, page.Page, page.PerPage, strings.ToLower(q))
	list, err := u.lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]*domain.Media, error) {
		return u.source.Search(ctx, q, mediaType, page.Page, page.PerPage)
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return list, nil
}

func (u *CatalogUsecase) Media(ctx context.Context, id int) (*domain.Media, error) {
	if id <= 0 {
		return nil, domain.ErrMediaNotFound
	}
	m, err := u.media.GetOrLoad(ctx, fmt.Sprintf("media:%d", id), func(ctx context.Context) (*domain.Media, error) {
		return u.source.Media(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("media %d: %w", id, err)
	}
	return m, nil
}

func (u *CatalogUsecase) UserStats(ctx context.Context, name string) (*domain.AniListStats, error) {
	if err := domain.ValidateAniListName(name); err != nil || name == "" {
		return nil, domain.ErrAniListUserNotFound
	}
	s, err := u.stats.GetOrLoad(ctx, strings.ToLower(name), func(ctx context.Context) (*domain.AniListStats, error) {
		return u.source.UserStats(ctx, name)
	})
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return s, nil
}

// Caches exposes the caches for periodic sweeping.
func (u *CatalogUsecase) Caches() []cache.Sweeper {
	return []cache.Sweeper{u.lists, u.media, u.stats}
}

// CurrentSeason maps a date to its AniList broadcast season. December
// belongs to the following year's WINTER season.
func CurrentSeason(now time.Time) (domain.Season, int) {
	year := now.Year()
	switch now.Month() {
	case time.December:
		return domain.SeasonWinter, year + 1
	case time.January, time.February:
		return domain.SeasonWinter, year
	case time.March, time.April, time.May:
		return domain.SeasonSpring, year
	case time.June, time.July, time.August:
		return domain.SeasonSummer, year
	default:
		return domain.SeasonFall, year
	}
}

// WithClock replaces the clock used for date-dependent logic.
func (u *CatalogUsecase) WithClock(now func() time.Time) *CatalogUsecase {
	u.now = now
	return u
}
