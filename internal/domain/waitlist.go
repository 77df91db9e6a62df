package domain

import (
	"errors"
	"time"
)

var ErrInvalidEmail = errors.New("invalid email address")

type Subscriber struct {
	ID        string
	Email     string
	Source    string
	CreatedAt time.Time
}
