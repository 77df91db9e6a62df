package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// User mirrors a Supabase auth user. ID is the JWT "sub" claim.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}
