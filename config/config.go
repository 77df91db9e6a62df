package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	SupabaseURL       string `env:"SUPABASE_URL"        validate:"required_if=Env production,required_if=Env staging"`
	SupabaseAnonKey   string `env:"SUPABASE_ANON_KEY"   validate:"required_if=Env production,required_if=Env staging"`
	SupabaseJWTSecret string `env:"SUPABASE_JWT_SECRET,required" validate:"required,min=32"`

	AniListURL      string        `env:"ANILIST_URL"       envDefault:"https://graphql.anilist.co" validate:"required,url"`
	AniListCacheTTL time.Duration `env:"ANILIST_CACHE_TTL" envDefault:"10m" validate:"min=1s"`

	GitHubAPIURL   string        `env:"GITHUB_API_URL"   envDefault:"https://api.github.com" validate:"required,url"`
	GitHubRepo     string        `env:"GITHUB_REPO"      envDefault:"kumo-app/kumo" validate:"required,contains=/"`
	GitHubToken    string        `env:"GITHUB_TOKEN"`
	GitHubCacheTTL time.Duration `env:"GITHUB_CACHE_TTL" envDefault:"15m" validate:"min=1s"`

	CountdownSlug     string        `env:"COUNTDOWN_SLUG"      envDefault:"launch" validate:"required"`
	CountdownCacheTTL time.Duration `env:"COUNTDOWN_CACHE_TTL" envDefault:"30s" validate:"min=1s"`
	ProfileCacheTTL   time.Duration `env:"PROFILE_CACHE_TTL"   envDefault:"1m" validate:"min=1s"`

	RefreshCron string `env:"REFRESH_CRON" envDefault:"*/10 * * * *" validate:"required"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`

	SiteURL  string `env:"SITE_URL"  envDefault:"http://localhost:8080" validate:"required,url"`
	SiteName string `env:"SITE_NAME" envDefault:"Kumo" validate:"required"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
