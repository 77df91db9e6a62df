package domain

import (
	"errors"
	"time"
)

var ErrNoRelease = errors.New("no published release")

type ReleaseAsset struct {
	Name        string
	DownloadURL string
	Size        int64
}

type Release struct {
	TagName     string
	Name        string
	HTMLURL     string
	PublishedAt time.Time
	Prerelease  bool
	Assets      []ReleaseAsset
}

type RepoStats struct {
	FullName   string
	HTMLURL    string
	Stars      int
	Forks      int
	OpenIssues int
}
