package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/gin-gonic/gin"
)

type releaseService interface {
	Latest(ctx context.Context) (*domain.Release, error)
	Repo(ctx context.Context) (*domain.RepoStats, error)
}

type ReleaseHandler struct {
	releases releaseService
	logger   *slog.Logger
}

func NewReleaseHandler(releases releaseService, logger *slog.Logger) *ReleaseHandler {
	return &ReleaseHandler{releases: releases, logger: logger.With("component", "release_handler")}
}

type assetResponse struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
	Size        int64  `json:"size"`
}

type releaseResponse struct {
	TagName     string          `json:"tag_name"`
	Name        string          `json:"name"`
	HTMLURL     string          `json:"html_url"`
	PublishedAt time.Time       `json:"published_at"`
	Prerelease  bool            `json:"prerelease"`
	Assets      []assetResponse `json:"assets"`
}

type repoResponse struct {
	FullName   string `json:"full_name"`
	HTMLURL    string `json:"html_url"`
	Stars      int    `json:"stars"`
	Forks      int    `json:"forks"`
	OpenIssues int    `json:"open_issues"`
}

// GET /api/release
func (h *ReleaseHandler) Latest(c *gin.Context) {
	rel, err := h.releases.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoRelease) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNoRelease})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "latest release", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": errUpstream})
		return
	}

	resp := releaseResponse{
		TagName:     rel.TagName,
		Name:        rel.Name,
		HTMLURL:     rel.HTMLURL,
		PublishedAt: rel.PublishedAt,
		Prerelease:  rel.Prerelease,
		Assets:      make([]assetResponse, 0, len(rel.Assets)),
	}
	for _, a := range rel.Assets {
		resp.Assets = append(resp.Assets, assetResponse{Name: a.Name, DownloadURL: a.DownloadURL, Size: a.Size})
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/repo
func (h *ReleaseHandler) Repo(c *gin.Context) {
	repo, err := h.releases.Repo(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "repo stats", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": errUpstream})
		return
	}
	c.JSON(http.StatusOK, repoResponse{
		FullName:   repo.FullName,
		HTMLURL:    repo.HTMLURL,
		Stars:      repo.Stars,
		Forks:      repo.Forks,
		OpenIssues: repo.OpenIssues,
	})
}
