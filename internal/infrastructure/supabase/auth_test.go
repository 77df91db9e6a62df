package supabase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/infrastructure/supabase"
	"github.com/supabase-community/gotrue-go/types"
)

type fakeGoTrue struct {
	signIn func(email, password string) (*types.TokenResponse, error)
	signup func(req types.SignupRequest) (*types.SignupResponse, error)
}

func (f *fakeGoTrue) SignInWithEmailPassword(email, password string) (*types.TokenResponse, error) {
	return f.signIn(email, password)
}

func (f *fakeGoTrue) Signup(req types.SignupRequest) (*types.SignupResponse, error) {
	return f.signup(req)
}

func TestSignIn_ReturnsSession(t *testing.T) {
	api := &fakeGoTrue{
		signIn: func(email, password string) (*types.TokenResponse, error) {
			if email != "yuki@example.com" || password != "hunter22" {
				t.Errorf("unexpected credentials %q/%q", email, password)
			}
			resp := &types.TokenResponse{}
			resp.AccessToken = "access"
			resp.RefreshToken = "refresh"
			resp.ExpiresIn = 3600
			return resp, nil
		},
	}

	s, err := supabase.NewAuth(api).SignIn(context.Background(), "yuki@example.com", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.Session{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600}
	if *s != want {
		t.Errorf("session = %+v, want %+v", *s, want)
	}
}

func TestSignIn_BadCredentials(t *testing.T) {
	api := &fakeGoTrue{
		signIn: func(_, _ string) (*types.TokenResponse, error) {
			return nil, errors.New(`response status code 400: {"error":"invalid_grant","error_description":"Invalid login credentials"}`)
		},
	}

	_, err := supabase.NewAuth(api).SignIn(context.Background(), "yuki@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestSignIn_UpstreamFailure(t *testing.T) {
	api := &fakeGoTrue{
		signIn: func(_, _ string) (*types.TokenResponse, error) {
			return nil, errors.New("response status code 503: upstream unavailable")
		},
	}

	_, err := supabase.NewAuth(api).SignIn(context.Background(), "yuki@example.com", "pw")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want wrapped upstream error, got %v", err)
	}
}

func TestSignIn_StatusDigitsInBodyAreNotClientErrors(t *testing.T) {
	api := &fakeGoTrue{
		signIn: func(_, _ string) (*types.TokenResponse, error) {
			return nil, errors.New(`response status code 500: {"msg":"internal error","request_id":"req-401-400"}`)
		},
	}

	_, err := supabase.NewAuth(api).SignIn(context.Background(), "yuki@example.com", "pw")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want wrapped upstream error, got %v", err)
	}
}

func TestSignIn_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := supabase.NewAuth(&fakeGoTrue{}).SignIn(ctx, "a@b.c", "pw")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestSignUp(t *testing.T) {
	api := &fakeGoTrue{
		signup: func(req types.SignupRequest) (*types.SignupResponse, error) {
			if req.Email != "new@example.com" {
				t.Errorf("email = %q", req.Email)
			}
			return &types.SignupResponse{}, nil
		},
	}

	confirm, err := supabase.NewAuth(api).SignUp(context.Background(), "new@example.com", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !confirm {
		t.Error("expected confirmation to be required when no session is returned")
	}
}

func TestSignUp_AlreadyRegistered(t *testing.T) {
	api := &fakeGoTrue{
		signup: func(_ types.SignupRequest) (*types.SignupResponse, error) {
			return nil, errors.New(`response status code 422: {"msg":"User already registered"}`)
		},
	}

	_, err := supabase.NewAuth(api).SignUp(context.Background(), "taken@example.com", "hunter22")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("want ErrEmailTaken, got %v", err)
	}
}
