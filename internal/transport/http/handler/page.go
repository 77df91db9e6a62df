package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
	"github.com/ErlanBelekov/kumo-site/internal/web"
	"github.com/gin-gonic/gin"
	g "maragu.dev/gomponents"
)

type landingBuilder interface {
	Build(ctx context.Context) *usecase.LandingData
}

type postStore interface {
	List() []*domain.Post
	Get(slug string) (*domain.Post, error)
	ByTag(tag string) []*domain.Post
}

type profilePager interface {
	PublicPage(ctx context.Context, username string) (*usecase.ProfilePage, error)
}

// PageHandler serves the server-rendered HTML pages.
type PageHandler struct {
	site     web.Site
	landing  landingBuilder
	posts    postStore
	profiles profilePager
	logger   *slog.Logger
}

func NewPageHandler(site web.Site, landing landingBuilder, posts postStore, profiles profilePager, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		site:     site,
		landing:  landing,
		posts:    posts,
		profiles: profiles,
		logger:   logger.With("component", "page_handler"),
	}
}

// GET /
func (h *PageHandler) Home(c *gin.Context) {
	data := h.landing.Build(c.Request.Context())
	h.write(c, http.StatusOK, web.LandingPage(h.site, data))
}

// GET /blog?tag=
func (h *PageHandler) BlogIndex(c *gin.Context) {
	posts := h.posts.List()
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		posts = h.posts.ByTag(tag)
	}
	h.write(c, http.StatusOK, web.BlogIndex(h.site, posts))
}

// GET /blog/:slug
func (h *PageHandler) BlogPost(c *gin.Context) {
	post, err := h.posts.Get(c.Param("slug"))
	if err != nil {
		h.notFound(c)
		return
	}
	h.write(c, http.StatusOK, web.BlogPost(h.site, post))
}

// NoRoute resolves single-segment paths as /:username profile pages.
// Everything else, and any API path, is a 404.
func (h *PageHandler) NoRoute(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
		return
	}

	username, ok := profileSegment(path)
	if !ok || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		h.notFound(c)
		return
	}

	page, err := h.profiles.PublicPage(c.Request.Context(), username)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			h.logger.ErrorContext(c.Request.Context(), "render profile", "username", username, "error", err)
			c.String(http.StatusInternalServerError, errInternalServer)
			return
		}
		h.notFound(c)
		return
	}
	h.write(c, http.StatusOK, web.ProfilePage(h.site, page))
}

// profileSegment extracts "name" from "/name" or "/name/".
func profileSegment(path string) (string, bool) {
	seg := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/")
	if seg == "" || strings.Contains(seg, "/") {
		return "", false
	}
	return seg, true
}

func (h *PageHandler) notFound(c *gin.Context) {
	h.write(c, http.StatusNotFound, web.NotFoundPage(h.site))
}

func (h *PageHandler) write(c *gin.Context, status int, node g.Node) {
	if err := render(c, status, node); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "render page", "path", c.Request.URL.Path, "error", err)
	}
}
