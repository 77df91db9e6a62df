package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/metrics"
)

const apiVersion = "2022-11-28"

// Client reads release and repository data for the app's public repo.
type Client struct {
	client  *http.Client
	baseURL string
	repo    string // owner/name
	token   string
}

func NewClient(baseURL, repo, token string) *Client {
	return &Client{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		repo:    repo,
		token:   token,
	}
}

type releaseResponse struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	Prerelease  bool      `json:"prerelease"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		Size               int64  `json:"size"`
	} `json:"assets"`
}

type repoResponse struct {
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	OpenIssuesCount int    `json:"open_issues_count"`
}

// LatestRelease returns the most recent non-draft, non-prerelease release.
func (c *Client) LatestRelease(ctx context.Context) (*domain.Release, error) {
	var r releaseResponse
	status, err := c.get(ctx, "latest_release", "/repos/"+c.repo+"/releases/latest", &r)
	if status == http.StatusNotFound {
		return nil, domain.ErrNoRelease
	}
	if err != nil {
		return nil, err
	}

	rel := &domain.Release{
		TagName:     r.TagName,
		Name:        r.Name,
		HTMLURL:     r.HTMLURL,
		PublishedAt: r.PublishedAt,
		Prerelease:  r.Prerelease,
		Assets:      make([]domain.ReleaseAsset, 0, len(r.Assets)),
	}
	for _, a := range r.Assets {
		rel.Assets = append(rel.Assets, domain.ReleaseAsset{
			Name:        a.Name,
			DownloadURL: a.BrowserDownloadURL,
			Size:        a.Size,
		})
	}
	return rel, nil
}

func (c *Client) Repo(ctx context.Context) (*domain.RepoStats, error) {
	var r repoResponse
	if _, err := c.get(ctx, "repo", "/repos/"+c.repo, &r); err != nil {
		return nil, err
	}
	return &domain.RepoStats{
		FullName:   r.FullName,
		HTMLURL:    r.HTMLURL,
		Stars:      r.StargazersCount,
		Forks:      r.ForksCount,
		OpenIssues: r.OpenIssuesCount,
	}, nil
}

// get decodes a 2xx JSON response into out. The status code is returned even
// when err is non-nil so callers can special-case 404.
func (c *Client) get(ctx context.Context, op, path string, out any) (int, error) {
	start := time.Now()
	status, err := c.do(ctx, path, out)
	metrics.UpstreamRequestDuration.WithLabelValues("github", op, metrics.Outcome(err)).Observe(time.Since(start).Seconds())
	return status, err
}

func (c *Client) do(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body) // drain so the connection can be reused by the pool
		return resp.StatusCode, fmt.Errorf("github %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
	}
	return resp.StatusCode, nil
}
