package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrInvalidUsername  = errors.New("username must be 3-30 characters of a-z, 0-9, _ or - and start with a letter or digit")
	ErrReservedUsername = errors.New("username is reserved")
	ErrInvalidLinks     = errors.New("invalid social links")
	ErrBioTooLong       = errors.New("bio is too long")
	ErrNameTooLong      = errors.New("display name is too long")
	ErrInvalidCursor    = errors.New("invalid cursor")
	ErrInvalidTheme     = errors.New("unknown theme")
	ErrInvalidAvatar    = errors.New("avatar must be an absolute http(s) URL")
	ErrInvalidAniList   = errors.New("anilist username must be 2-20 letters or digits")
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MaxBioRunes    = 280
	MaxNameRunes   = 64
	MaxLinks       = 10
	maxPlatformLen = 32
)

// reservedUsernames collide with top-level routes or are otherwise off limits.
var reservedUsernames = map[string]struct{}{
	"api":      {},
	"blog":     {},
	"static":   {},
	"admin":    {},
	"login":    {},
	"signup":   {},
	"settings": {},
	"about":    {},
	"privacy":  {},
	"terms":    {},
	"metrics":  {},
	"healthz":  {},
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Profile is the public "link-in-bio" record rendered at /:username.
type Profile struct {
	ID              string
	UserID          string
	Username        string
	DisplayName     string
	AvatarURL       string
	Bio             string
	Theme           string
	AniListUsername string
	Links           []SocialLink
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Name returns the display name, or the username when none is set.
func (p *Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}

func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateUsername expects an already normalized username.
func ValidateUsername(s string) error {
	if len(s) < MinUsernameLen || len(s) > MaxUsernameLen {
		return ErrInvalidUsername
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case (r == '_' || r == '-') && i > 0:
		default:
			return ErrInvalidUsername
		}
	}
	if _, ok := reservedUsernames[s]; ok {
		return ErrReservedUsername
	}
	return nil
}

func ValidateLinks(links []SocialLink) error {
	if len(links) > MaxLinks {
		return fmt.Errorf("%w: at most %d links allowed", ErrInvalidLinks, MaxLinks)
	}
	for i, l := range links {
		platform := strings.TrimSpace(l.Platform)
		if platform == "" || utf8.RuneCountInString(platform) > maxPlatformLen {
			return fmt.Errorf("%w: link %d has an invalid platform", ErrInvalidLinks, i)
		}
		if !IsHTTPURL(l.URL) {
			return fmt.Errorf("%w: link %d must be an absolute http(s) URL", ErrInvalidLinks, i)
		}
	}
	return nil
}

func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidateAniListName accepts an empty name (no AniList account linked).
func ValidateAniListName(name string) error {
	if name == "" {
		return nil
	}
	if len(name) < 2 || len(name) > 20 {
		return ErrInvalidAniList
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ErrInvalidAniList
		}
	}
	return nil
}

func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioRunes {
		return ErrBioTooLong
	}
	return nil
}

func ValidateDisplayName(name string) error {
	if utf8.RuneCountInString(name) > MaxNameRunes {
		return ErrNameTooLong
	}
	return nil
}
