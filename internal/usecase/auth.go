package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/go-playground/validator/v10"
)

const minPasswordLen = 8

// AuthProvider is implemented by the Supabase auth client.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignUp(ctx context.Context, email, password string) (confirmationRequired bool, err error)
}

type AuthUsecase struct {
	provider AuthProvider
	validate *validator.Validate
}

func NewAuthUsecase(provider AuthProvider) *AuthUsecase {
	return &AuthUsecase{provider: provider, validate: validator.New()}
}

func (u *AuthUsecase) SignIn(ctx context.Context, addr, password string) (*domain.Session, error) {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := u.provider.SignIn(ctx, addr, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return session, nil
}

// SignUp registers an account. The returned flag is true when the user has
// to confirm their email before a session is issued.
func (u *AuthUsecase) SignUp(ctx context.Context, addr, password string) (bool, error) {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if err := u.validate.Var(addr, "required,email"); err != nil {
		return false, domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return false, domain.ErrWeakPassword
	}

	confirm, err := u.provider.SignUp(ctx, addr, password)
	if err != nil {
		return false, fmt.Errorf("sign up: %w", err)
	}
	return confirm, nil
}
