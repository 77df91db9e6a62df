package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/kumo-site/internal/repository"
	"github.com/ErlanBelekov/kumo-site/internal/transport/http/handler"
	"github.com/ErlanBelekov/kumo-site/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Page      *handler.PageHandler
	Countdown *handler.CountdownHandler
	Catalog   *handler.CatalogHandler
	Release   *handler.ReleaseHandler
	Waitlist  *handler.WaitlistHandler
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
}

func NewRouter(logger *slog.Logger, h Handlers, userRepo repository.UserRepository, jwtSecret []byte) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.HandleMethodNotAllowed = false

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.NewWithConfig(logger, sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		Filters:          []sloggin.Filter{sloggin.IgnorePath("/favicon.ico")},
	}))
	r.Use(middleware.Metrics())

	// Pages. Profiles at /:username are resolved in NoRoute so they never
	// shadow the static routes below.
	r.GET("/", h.Page.Home)
	r.GET("/blog", h.Page.BlogIndex)
	r.GET("/blog/:slug", h.Page.BlogPost)
	r.GET("/favicon.ico", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.NoRoute(h.Page.NoRoute)

	api := r.Group("/api")

	api.GET("/countdown", h.Countdown.Get)
	api.GET("/countdown/stream", h.Countdown.Stream)

	anime := api.Group("/anime")
	anime.GET("/trending", h.Catalog.Trending)
	anime.GET("/seasonal", h.Catalog.Seasonal)
	anime.GET("/search", h.Catalog.Search)
	anime.GET("/:id", h.Catalog.Media)
	api.GET("/anilist/users/:name", h.Catalog.UserStats)

	api.GET("/release", h.Release.Latest)
	api.GET("/repo", h.Release.Repo)

	api.POST("/waitlist", h.Waitlist.Join)
	api.GET("/waitlist/count", h.Waitlist.Count)

	api.POST("/auth/signin", h.Auth.SignIn)
	api.POST("/auth/signup", h.Auth.SignUp)

	api.GET("/profiles", h.Profile.List)
	api.GET("/profiles/:username", h.Profile.GetByUsername)

	// Protected routes
	me := api.Group("/me", middleware.Auth(jwtSecret), middleware.EnsureUser(userRepo, logger))
	me.GET("/profile", h.Profile.GetOwn)
	me.PUT("/profile", h.Profile.Save)
	me.DELETE("/profile", h.Profile.Delete)

	return r
}
