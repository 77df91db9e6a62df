// seed prepares a local dev database: the launch countdown and a demo
// profile reachable at /demo.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
)

const (
	seedUserID   = "00000000-0000-4000-8000-000000000001"
	seedEmail    = "demo@kumo.local"
	seedUsername = "demo"
)

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set, run: direnv allow")
	}
	slug := os.Getenv("COUNTDOWN_SLUG")
	if slug == "" {
		slug = "launch"
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	countdowns := usecase.NewCountdownUsecase(postgres.NewCountdownRepository(pool), slug, time.Second)
	target := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Hour)
	cd, err := countdowns.Set(ctx, slug, "Kumo launch", target)
	if err != nil {
		log.Fatalf("set countdown: %v", err)
	}

	if err := postgres.NewUserRepository(pool).Upsert(ctx, seedUserID, seedEmail); err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	profiles := usecase.NewProfileUsecase(postgres.NewProfileRepository(pool), nil, time.Second, quiet)
	profile, err := profiles.Save(ctx, usecase.SaveProfileInput{
		UserID:          seedUserID,
		Username:        seedUsername,
		DisplayName:     "Kumo Demo",
		Bio:             "Watching too much, reading even more.",
		Theme:           domain.DefaultThemeName,
		AniListUsername: "Kumo",
		Links: []domain.SocialLink{
			{Platform: "github", URL: "https://github.com/kumo-app"},
			{Platform: "website", URL: "https://kumo.app"},
		},
	})
	if err != nil {
		log.Fatalf("save profile: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Countdown: %s  (%q, ends %s)\n", cd.Slug, cd.Label, cd.TargetAt.Format(time.RFC3339))
	fmt.Printf("  User ID:   %s\n", seedUserID)
	fmt.Printf("  Profile:   /%s\n", profile.Username)
	fmt.Println()
}
