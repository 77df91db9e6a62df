package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/kumo-site/config"
	"github.com/ErlanBelekov/kumo-site/internal/blog"
	"github.com/ErlanBelekov/kumo-site/internal/cache"
	"github.com/ErlanBelekov/kumo-site/internal/email"
	"github.com/ErlanBelekov/kumo-site/internal/health"
	"github.com/ErlanBelekov/kumo-site/internal/infrastructure/anilist"
	"github.com/ErlanBelekov/kumo-site/internal/infrastructure/github"
	"github.com/ErlanBelekov/kumo-site/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/kumo-site/internal/infrastructure/supabase"
	ctxlog "github.com/ErlanBelekov/kumo-site/internal/log"
	"github.com/ErlanBelekov/kumo-site/internal/metrics"
	"github.com/ErlanBelekov/kumo-site/internal/refresher"
	httptransport "github.com/ErlanBelekov/kumo-site/internal/transport/http"
	"github.com/ErlanBelekov/kumo-site/internal/transport/http/handler"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
	"github.com/ErlanBelekov/kumo-site/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	posts, err := blog.Load()
	if err != nil {
		stop()
		log.Fatalf("blog: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)

	// AniList
	catalogUsecase := usecase.NewCatalogUsecase(anilist.NewClient(cfg.AniListURL, logger), cfg.AniListCacheTTL)
	catalogHandler := handler.NewCatalogHandler(catalogUsecase, logger)

	// GitHub releases
	releaseUsecase := usecase.NewReleaseUsecase(github.NewClient(cfg.GitHubAPIURL, cfg.GitHubRepo, cfg.GitHubToken), cfg.GitHubCacheTTL)
	releaseHandler := handler.NewReleaseHandler(releaseUsecase, logger)

	// Countdown
	countdownUsecase := usecase.NewCountdownUsecase(postgres.NewCountdownRepository(pool), cfg.CountdownSlug, cfg.CountdownCacheTTL)
	countdownHandler := handler.NewCountdownHandler(countdownUsecase, time.Second, logger)

	// Waitlist
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	waitlistUsecase := usecase.NewWaitlistUsecase(postgres.NewWaitlistRepository(pool), sender, cfg.SiteName, cfg.SiteURL, logger)
	waitlistHandler := handler.NewWaitlistHandler(waitlistUsecase, logger)

	// Profiles
	profileUsecase := usecase.NewProfileUsecase(postgres.NewProfileRepository(pool), catalogUsecase, cfg.ProfileCacheTTL, logger)
	profileHandler := handler.NewProfileHandler(profileUsecase, logger)

	// Auth
	authHandler := handler.NewAuthHandler(nil, logger)
	if provider, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey); err != nil {
		logger.Warn("supabase auth disabled", "error", err)
	} else {
		authHandler = handler.NewAuthHandler(usecase.NewAuthUsecase(provider), logger)
	}

	// Pages
	site := web.Site{Name: cfg.SiteName, URL: cfg.SiteURL}
	landingUsecase := usecase.NewLandingUsecase(cfg.SiteName, countdownUsecase, catalogUsecase, releaseUsecase, posts, logger)
	pageHandler := handler.NewPageHandler(site, landingUsecase, posts, profileUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(map[string]health.Pinger{"postgres": pool}, logger, prometheus.DefaultRegisterer)

	var caches []cache.Sweeper
	caches = append(caches, catalogUsecase.Caches()...)
	caches = append(caches, releaseUsecase.Caches()...)
	caches = append(caches, countdownUsecase.Caches()...)
	caches = append(caches, profileUsecase.Caches()...)

	warmer, err := refresher.New(cfg.RefreshCron, refresher.WarmJobs(catalogUsecase, releaseUsecase, countdownUsecase), caches, logger)
	if err != nil {
		stop()
		log.Fatalf("refresher: %v", err)
	}

	srv := httptransport.NewServer(":"+cfg.Port, httptransport.NewRouter(logger, httptransport.Handlers{
		Page:      pageHandler,
		Countdown: countdownHandler,
		Catalog:   catalogHandler,
		Release:   releaseHandler,
		Waitlist:  waitlistHandler,
		Auth:      authHandler,
		Profile:   profileHandler,
	}, userRepo, []byte(cfg.SupabaseJWTSecret)))

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	refresherDone := make(chan struct{})
	go func() {
		defer close(refresherDone)
		warmer.Start(ctx)
	}()

	go func() {
		logger.Info("server started", "port", cfg.Port, "site", cfg.SiteURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}

	select {
	case <-refresherDone:
	case <-shutdownCtx.Done():
		logger.Warn("refresher did not stop in time")
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
