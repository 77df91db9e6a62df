package repository

import "context"

type WaitlistRepository interface {
	// Add returns created=false when the email is already on the list.
	Add(ctx context.Context, email, source string) (created bool, err error)
	Count(ctx context.Context) (int64, error)
}
