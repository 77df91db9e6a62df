package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")

type Post struct {
	Slug        string
	Title       string
	Summary     string
	Author      string
	PublishedAt time.Time
	Tags        []string
	Body        []string // paragraphs
	Draft       bool
}
