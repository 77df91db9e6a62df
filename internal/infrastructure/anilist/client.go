package anilist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/metrics"
	"github.com/machinebox/graphql"
)

const DefaultEndpoint = "https://graphql.anilist.co"

// errNotFound is what AniList answers for a missing Media or User.
var errNotFound = errors.New("anilist: not found")

// Client is a read-only client for the AniList GraphQL API.
type Client struct {
	gql    *graphql.Client
	logger *slog.Logger
}

func NewClient(endpoint string, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	httpClient := &http.Client{Timeout: 10 * time.Second}
	return &Client{
		gql:    graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
		logger: logger.With("component", "anilist"),
	}
}

type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

func (c *Client) query(ctx context.Context, op, query string, variables map[string]any, result any) error {
	req := graphql.NewRequest(query)
	for key, value := range variables {
		req.Var(key, value)
	}

	start := time.Now()
	err := c.gql.Run(ctx, req, result)
	metrics.UpstreamRequestDuration.WithLabelValues("anilist", op, metrics.Outcome(err)).Observe(time.Since(start).Seconds())
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "Not Found") {
		return errNotFound
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		c.logger.WarnContext(ctx, "anilist unreachable", "operation", op, "error", err)
		return NetworkError{Err: err}
	}
	return fmt.Errorf("anilist %s: %w", op, err)
}
