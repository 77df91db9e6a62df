package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/email"
	"github.com/ErlanBelekov/kumo-site/internal/metrics"
	"github.com/ErlanBelekov/kumo-site/internal/repository"
	"github.com/go-playground/validator/v10"
)

const maxSourceLen = 64

type WaitlistUsecase struct {
	repo     repository.WaitlistRepository
	email    email.Sender
	validate *validator.Validate
	siteName string
	siteURL  string
	logger   *slog.Logger
}

func NewWaitlistUsecase(repo repository.WaitlistRepository, sender email.Sender, siteName, siteURL string, logger *slog.Logger) *WaitlistUsecase {
	return &WaitlistUsecase{
		repo:     repo,
		email:    sender,
		validate: validator.New(),
		siteName: siteName,
		siteURL:  siteURL,
		logger:   logger,
	}
}

// Join adds an email to the launch waitlist. Joining twice is not an error,
// and only first-time signups get the welcome email.
func (u *WaitlistUsecase) Join(ctx context.Context, addr, source string) error {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if err := u.validate.Var(addr, "required,email,max=254"); err != nil {
		return domain.ErrInvalidEmail
	}
	source = truncateRunes(strings.TrimSpace(strings.ToValidUTF8(source, "")), maxSourceLen)
	if source == "" {
		source = "landing"
	}

	created, err := u.repo.Add(ctx, addr, source)
	if err != nil {
		return fmt.Errorf("join waitlist: %w", err)
	}
	if !created {
		return nil
	}
	metrics.WaitlistSignupsTotal.Inc()

	msg := email.Message{
		To:      addr,
		Subject: fmt.Sprintf("You're on the %s waitlist", u.siteName),
		HTML: fmt.Sprintf(
			`<p>Thanks for signing up! We'll email you the moment %s launches.</p><p><a href="%s">%s</a></p>`,
			u.siteName, u.siteURL, u.siteURL,
		),
		Text: fmt.Sprintf("Thanks for signing up! We'll email you the moment %s launches.\n%s", u.siteName, u.siteURL),
		Tags: map[string]string{"category": "waitlist"},
	}
	if err := u.email.Send(ctx, msg); err != nil {
		u.logger.ErrorContext(ctx, "welcome email failed", slog.Any("error", err))
	}
	return nil
}

func (u *WaitlistUsecase) Count(ctx context.Context) (int64, error) {
	n, err := u.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count waitlist: %w", err)
	}
	return n, nil
}

// truncateRunes cuts s to at most n runes, never inside a rune.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
