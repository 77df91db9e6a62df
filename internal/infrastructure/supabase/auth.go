package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/metrics"
	"github.com/supabase-community/gotrue-go/types"
	supa "github.com/supabase-community/supabase-go"
)

// GoTrue is the subset of the Supabase auth client we call.
// Satisfied by supabase.Client.Auth.
type GoTrue interface {
	SignInWithEmailPassword(email, password string) (*types.TokenResponse, error)
	Signup(req types.SignupRequest) (*types.SignupResponse, error)
}

// Auth signs users in and up against Supabase Auth.
type Auth struct {
	api GoTrue
}

func NewAuth(api GoTrue) *Auth {
	return &Auth{api: api}
}

// NewClient builds an Auth backed by a real Supabase project.
func NewClient(url, anonKey string) (*Auth, error) {
	if url == "" || anonKey == "" {
		return nil, errors.New("supabase url and anon key are required")
	}
	client, err := supa.NewClient(url, anonKey, &supa.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return NewAuth(client.Auth), nil
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	// gotrue-go has no context support; honour cancellation before the call at least.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := a.api.SignInWithEmailPassword(email, password)
	metrics.UpstreamRequestDuration.WithLabelValues("supabase", "sign_in", metrics.Outcome(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		if isClientError(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("supabase sign in: %w", err)
	}

	return &domain.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

// SignUp registers a new user. confirmationRequired is true when the project
// requires email confirmation and no session was issued.
func (a *Auth) SignUp(ctx context.Context, email, password string) (confirmationRequired bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	start := time.Now()
	resp, err := a.api.Signup(types.SignupRequest{Email: email, Password: password})
	metrics.UpstreamRequestDuration.WithLabelValues("supabase", "sign_up", metrics.Outcome(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already registered") {
			return false, domain.ErrEmailTaken
		}
		return false, fmt.Errorf("supabase sign up: %w", err)
	}

	return resp.AccessToken == "", nil
}

// gotrue-go reports HTTP failures as "response status code <n>: <body>".
const statusPrefix = "response status code "

// statusCode extracts the HTTP status from a gotrue error, or 0.
func statusCode(err error) int {
	msg := err.Error()
	i := strings.Index(msg, statusPrefix)
	if i < 0 {
		return 0
	}
	digits, _, _ := strings.Cut(msg[i+len(statusPrefix):], ":")
	code, convErr := strconv.Atoi(strings.TrimSpace(digits))
	if convErr != nil {
		return 0
	}
	return code
}

// isClientError reports whether gotrue rejected the credentials themselves
// rather than failing to serve the request.
func isClientError(err error) bool {
	switch statusCode(err) {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return true
	}
	return false
}
