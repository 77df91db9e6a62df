package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
)

func TestSignIn_NormalizesEmail(t *testing.T) {
	var got string
	provider := &fakeAuthProvider{
		signIn: func(_ context.Context, addr, _ string) (*domain.Session, error) {
			got = addr
			return &domain.Session{AccessToken: "tok"}, nil
		},
	}
	session, err := usecase.NewAuthUsecase(provider).SignIn(context.Background(), " Fan@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fan@example.com" || session.AccessToken != "tok" {
		t.Errorf("got email %q, session %+v", got, session)
	}
}

func TestSignIn_EmptyCredentials(t *testing.T) {
	_, err := usecase.NewAuthUsecase(&fakeAuthProvider{}).SignIn(context.Background(), "fan@example.com", "")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignIn_ProviderRejects(t *testing.T) {
	provider := &fakeAuthProvider{
		signIn: func(_ context.Context, _, _ string) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	_, err := usecase.NewAuthUsecase(provider).SignIn(context.Background(), "fan@example.com", "wrong-password")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignUp_Validation(t *testing.T) {
	uc := usecase.NewAuthUsecase(&fakeAuthProvider{})
	if _, err := uc.SignUp(context.Background(), "nope", "long-enough-pw"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := uc.SignUp(context.Background(), "fan@example.com", "short"); !errors.Is(err, domain.ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestSignUp_ConfirmationRequired(t *testing.T) {
	provider := &fakeAuthProvider{
		signUp: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
	}
	confirm, err := usecase.NewAuthUsecase(provider).SignUp(context.Background(), "fan@example.com", "long-enough-pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !confirm {
		t.Error("expected confirmation to be required")
	}
}
