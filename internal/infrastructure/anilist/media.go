package anilist

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
)

const (
	maxPerPage     = 50
	defaultPerPage = 12
)

const mediaFields = `
	id
	type
	title { romaji english native }
	coverImage { large }
	bannerImage
	episodes
	chapters
	format
	status
	season
	seasonYear
	averageScore
	popularity
	genres
	siteUrl
	nextAiringEpisode { episode airingAt timeUntilAiring }
`

var pageQuery = `
	query ($page: Int, $perPage: Int, $sort: [MediaSort], $type: MediaType, $season: MediaSeason, $seasonYear: Int, $search: String) {
		Page(page: $page, perPage: $perPage) {
			media(sort: $sort, type: $type, season: $season, seasonYear: $seasonYear, search: $search, isAdult: false) {` + mediaFields + `}
		}
	}
`

var mediaQuery = `
	query ($id: Int) {
		Media(id: $id) {` + mediaFields + `}
	}
`

const userStatsQuery = `
	query ($name: String) {
		User(name: $name) {
			id
			name
			avatar { medium }
			siteUrl
			statistics {
				anime { count episodesWatched }
				manga { count chaptersRead }
			}
		}
	}
`

type mediaNode struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	} `json:"title"`
	CoverImage struct {
		Large string `json:"large"`
	} `json:"coverImage"`
	BannerImage       string   `json:"bannerImage"`
	Episodes          int      `json:"episodes"`
	Chapters          int      `json:"chapters"`
	Format            string   `json:"format"`
	Status            string   `json:"status"`
	Season            string   `json:"season"`
	SeasonYear        int      `json:"seasonYear"`
	AverageScore      int      `json:"averageScore"`
	Popularity        int      `json:"popularity"`
	Genres            []string `json:"genres"`
	SiteURL           string   `json:"siteUrl"`
	NextAiringEpisode *struct {
		Episode         int   `json:"episode"`
		AiringAt        int64 `json:"airingAt"`
		TimeUntilAiring int64 `json:"timeUntilAiring"`
	} `json:"nextAiringEpisode"`
}

func (n *mediaNode) toDomain() *domain.Media {
	m := &domain.Media{
		ID:   n.ID,
		Type: domain.MediaType(n.Type),
		Title: domain.MediaTitle{
			Romaji:  n.Title.Romaji,
			English: n.Title.English,
			Native:  n.Title.Native,
		},
		CoverImage:   n.CoverImage.Large,
		BannerImage:  n.BannerImage,
		Episodes:     n.Episodes,
		Chapters:     n.Chapters,
		Format:       n.Format,
		Status:       n.Status,
		Season:       n.Season,
		SeasonYear:   n.SeasonYear,
		AverageScore: n.AverageScore,
		Popularity:   n.Popularity,
		Genres:       n.Genres,
		SiteURL:      n.SiteURL,
	}
	if n.NextAiringEpisode != nil {
		m.NextAiring = &domain.AiringSchedule{
			Episode:         n.NextAiringEpisode.Episode,
			AiringAt:        n.NextAiringEpisode.AiringAt,
			TimeUntilAiring: n.NextAiringEpisode.TimeUntilAiring,
		}
	}
	return m
}

type pageResponse struct {
	Page struct {
		Media []mediaNode `json:"media"`
	} `json:"Page"`
}

func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func (c *Client) page(ctx context.Context, op string, vars map[string]any) ([]*domain.Media, error) {
	var resp pageResponse
	if err := c.query(ctx, op, pageQuery, vars, &resp); err != nil {
		return nil, err
	}

	out := make([]*domain.Media, 0, len(resp.Page.Media))
	for i := range resp.Page.Media {
		out = append(out, resp.Page.Media[i].toDomain())
	}
	c.logger.DebugContext(ctx, "fetched media page", "operation", op, "count", len(out))
	return out, nil
}

// Trending returns the currently trending anime.
func (c *Client) Trending(ctx context.Context, page, perPage int) ([]*domain.Media, error) {
	page, perPage = clampPage(page, perPage)
	return c.page(ctx, "trending", map[string]any{
		"page":    page,
		"perPage": perPage,
		"sort":    []string{"TRENDING_DESC", "POPULARITY_DESC"},
		"type":    string(domain.MediaAnime),
	})
}

// Seasonal returns the most popular anime of a broadcast season.
func (c *Client) Seasonal(ctx context.Context, season domain.Season, year, page, perPage int) ([]*domain.Media, error) {
	if !season.Valid() {
		return nil, domain.ErrInvalidSeason
	}
	page, perPage = clampPage(page, perPage)
	return c.page(ctx, "seasonal", map[string]any{
		"page":       page,
		"perPage":    perPage,
		"sort":       []string{"POPULARITY_DESC"},
		"type":       string(domain.MediaAnime),
		"season":     string(season),
		"seasonYear": year,
	})
}

func (c *Client) Search(ctx context.Context, query string, mediaType domain.MediaType, page, perPage int) ([]*domain.Media, error) {
	if query == "" {
		return nil, domain.ErrInvalidQuery
	}
	if mediaType == "" {
		mediaType = domain.MediaAnime
	}
	page, perPage = clampPage(page, perPage)
	return c.page(ctx, "search", map[string]any{
		"page":    page,
		"perPage": perPage,
		"sort":    []string{"SEARCH_MATCH"},
		"type":    string(mediaType),
		"search":  query,
	})
}

func (c *Client) Media(ctx context.Context, id int) (*domain.Media, error) {
	var resp struct {
		Media *mediaNode `json:"Media"`
	}
	err := c.query(ctx, "media", mediaQuery, map[string]any{"id": id}, &resp)
	if errors.Is(err, errNotFound) || (err == nil && resp.Media == nil) {
		return nil, domain.ErrMediaNotFound
	}
	if err != nil {
		return nil, err
	}
	return resp.Media.toDomain(), nil
}

func (c *Client) UserStats(ctx context.Context, name string) (*domain.AniListStats, error) {
	var resp struct {
		User *struct {
			ID     int    `json:"id"`
			Name   string `json:"name"`
			Avatar struct {
				Medium string `json:"medium"`
			} `json:"avatar"`
			SiteURL    string `json:"siteUrl"`
			Statistics struct {
				Anime struct {
					Count           int `json:"count"`
					EpisodesWatched int `json:"episodesWatched"`
				} `json:"anime"`
				Manga struct {
					Count        int `json:"count"`
					ChaptersRead int `json:"chaptersRead"`
				} `json:"manga"`
			} `json:"statistics"`
		} `json:"User"`
	}

	err := c.query(ctx, "user_stats", userStatsQuery, map[string]any{"name": name}, &resp)
	if errors.Is(err, errNotFound) || (err == nil && resp.User == nil) {
		return nil, domain.ErrAniListUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user stats: %w", err)
	}

	u := resp.User
	return &domain.AniListStats{
		Name:            u.Name,
		AvatarURL:       u.Avatar.Medium,
		SiteURL:         u.SiteURL,
		AnimeCount:      u.Statistics.Anime.Count,
		EpisodesWatched: u.Statistics.Anime.EpisodesWatched,
		MangaCount:      u.Statistics.Manga.Count,
		ChaptersRead:    u.Statistics.Manga.ChaptersRead,
	}, nil
}
