package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
	"github.com/gin-gonic/gin"
)

type catalogService interface {
	Trending(ctx context.Context, in usecase.PageInput) ([]*domain.Media, error)
	Seasonal(ctx context.Context, in usecase.SeasonalInput) ([]*domain.Media, error)
	Search(ctx context.Context, in usecase.SearchInput) ([]*domain.Media, error)
	Media(ctx context.Context, id int) (*domain.Media, error)
	UserStats(ctx context.Context, name string) (*domain.AniListStats, error)
}

type CatalogHandler struct {
	catalog catalogService
	logger  *slog.Logger
}

func NewCatalogHandler(catalog catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger.With("component", "catalog_handler")}
}

type pageQuery struct {
	Page    int `form:"page"     binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=50"`
}

func (q pageQuery) input() usecase.PageInput {
	return usecase.PageInput{Page: q.Page, PerPage: q.PerPage}
}

type seasonalQuery struct {
	pageQuery
	Season string `form:"season" binding:"omitempty,oneofci=winter spring summer fall"`
	Year   int    `form:"year"   binding:"omitempty,min=1940,max=2100"`
}

type searchQuery struct {
	pageQuery
	Q    string `form:"q"    binding:"required,max=100"`
	Type string `form:"type" binding:"omitempty,oneofci=anime manga"`
}

type mediaTitleResponse struct {
	Romaji  string `json:"romaji,omitempty"`
	English string `json:"english,omitempty"`
	Native  string `json:"native,omitempty"`
}

type airingResponse struct {
	Episode         int   `json:"episode"`
	AiringAt        int64 `json:"airing_at"`
	TimeUntilAiring int64 `json:"time_until_airing"`
}

type mediaResponse struct {
	ID           int                `json:"id"`
	Type         domain.MediaType   `json:"type"`
	Title        string             `json:"title"`
	Titles       mediaTitleResponse `json:"titles"`
	CoverImage   string             `json:"cover_image,omitempty"`
	BannerImage  string             `json:"banner_image,omitempty"`
	Episodes     int                `json:"episodes,omitempty"`
	Chapters     int                `json:"chapters,omitempty"`
	Format       string             `json:"format,omitempty"`
	Status       string             `json:"status,omitempty"`
	Season       string             `json:"season,omitempty"`
	SeasonYear   int                `json:"season_year,omitempty"`
	AverageScore int                `json:"average_score,omitempty"`
	Popularity   int                `json:"popularity"`
	Genres       []string           `json:"genres"`
	SiteURL      string             `json:"site_url"`
	NextAiring   *airingResponse    `json:"next_airing,omitempty"`
}

type mediaListResponse struct {
	Media []mediaResponse `json:"media"`
}

type statsResponse struct {
	Name            string `json:"name"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	SiteURL         string `json:"site_url"`
	AnimeCount      int    `json:"anime_count"`
	EpisodesWatched int    `json:"episodes_watched"`
	MangaCount      int    `json:"manga_count"`
	ChaptersRead    int    `json:"chapters_read"`
}

func toMediaResponse(m *domain.Media) mediaResponse {
	resp := mediaResponse{
		ID:    m.ID,
		Type:  m.Type,
		Title: m.DisplayTitle(),
		Titles: mediaTitleResponse{
			Romaji:  m.Title.Romaji,
			English: m.Title.English,
			Native:  m.Title.Native,
		},
		CoverImage:   m.CoverImage,
		BannerImage:  m.BannerImage,
		Episodes:     m.Episodes,
		Chapters:     m.Chapters,
		Format:       m.Format,
		Status:       m.Status,
		Season:       m.Season,
		SeasonYear:   m.SeasonYear,
		AverageScore: m.AverageScore,
		Popularity:   m.Popularity,
		Genres:       m.Genres,
		SiteURL:      m.SiteURL,
	}
	if resp.Genres == nil {
		resp.Genres = []string{}
	}
	if m.NextAiring != nil {
		resp.NextAiring = &airingResponse{
			Episode:         m.NextAiring.Episode,
			AiringAt:        m.NextAiring.AiringAt,
			TimeUntilAiring: m.NextAiring.TimeUntilAiring,
		}
	}
	return resp
}

func toMediaList(list []*domain.Media) mediaListResponse {
	resp := mediaListResponse{Media: make([]mediaResponse, 0, len(list))}
	for _, m := range list {
		resp.Media = append(resp.Media, toMediaResponse(m))
	}
	return resp
}

// GET /api/anime/trending?page=&per_page=
func (h *CatalogHandler) Trending(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.catalog.Trending(c.Request.Context(), q.input())
	if err != nil {
		h.upstreamError(c, "trending", err)
		return
	}
	c.JSON(http.StatusOK, toMediaList(list))
}

// GET /api/anime/seasonal?season=&year=&page=&per_page=
func (h *CatalogHandler) Seasonal(c *gin.Context) {
	var q seasonalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.catalog.Seasonal(c.Request.Context(), usecase.SeasonalInput{
		Season:    q.Season,
		Year:      q.Year,
		PageInput: q.input(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSeason) {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidSeason.Error()})
			return
		}
		h.upstreamError(c, "seasonal", err)
		return
	}
	c.JSON(http.StatusOK, toMediaList(list))
}

// GET /api/anime/search?q=&type=&page=&per_page=
func (h *CatalogHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.catalog.Search(c.Request.Context(), usecase.SearchInput{
		Query:     q.Q,
		Type:      domain.MediaType(q.Type),
		PageInput: q.input(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidQuery.Error()})
			return
		}
		h.upstreamError(c, "search", err)
		return
	}
	c.JSON(http.StatusOK, toMediaList(list))
}

// GET /api/anime/:id
func (h *CatalogHandler) Media(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}

	m, err := h.catalog.Media(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errMediaNotFound})
			return
		}
		h.upstreamError(c, "media", err)
		return
	}
	c.JSON(http.StatusOK, toMediaResponse(m))
}

// GET /api/anilist/users/:name
func (h *CatalogHandler) UserStats(c *gin.Context) {
	s, err := h.catalog.UserStats(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrAniListUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errAniListUser})
			return
		}
		h.upstreamError(c, "user stats", err)
		return
	}
	c.JSON(http.StatusOK, statsResponse{
		Name:            s.Name,
		AvatarURL:       s.AvatarURL,
		SiteURL:         s.SiteURL,
		AnimeCount:      s.AnimeCount,
		EpisodesWatched: s.EpisodesWatched,
		MangaCount:      s.MangaCount,
		ChaptersRead:    s.ChaptersRead,
	})
}

// upstreamError reports a failed third-party call as 502.
func (h *CatalogHandler) upstreamError(c *gin.Context, op string, err error) {
	h.logger.ErrorContext(c.Request.Context(), "anilist "+op, "error", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": errUpstream})
}
