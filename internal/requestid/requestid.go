// Package requestid carries per-request identifiers through a context so
// every log line for a request can be correlated.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

type (
	requestIDKey struct{}
	userIDKey    struct{}
)

const Header = "X-Request-ID"

// maxLen bounds client-supplied IDs before they reach logs and headers.
const maxLen = 128

func New() string {
	return uuid.NewString()
}

// Sanitize returns id when it is a plausible client-supplied request ID,
// or a fresh one otherwise.
func Sanitize(id string) string {
	if id == "" || len(id) > maxLen {
		return New()
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return New()
		}
	}
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// FromContext returns "" if no request ID is attached.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithUserID attaches the authenticated Supabase user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
