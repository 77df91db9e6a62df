// Package blog serves the site's static blog posts.
package blog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed posts.yaml
var defaultPosts []byte

type postFile struct {
	Posts []struct {
		Slug        string    `yaml:"slug"`
		Title       string    `yaml:"title"`
		Summary     string    `yaml:"summary"`
		Author      string    `yaml:"author"`
		PublishedAt time.Time `yaml:"published_at"`
		Tags        []string  `yaml:"tags"`
		Body        []string  `yaml:"body"`
		Draft       bool      `yaml:"draft"`
	} `yaml:"posts"`
}

// Store holds published posts sorted newest first. It is read-only after
// construction and safe for concurrent use.
type Store struct {
	posts  []*domain.Post
	bySlug map[string]*domain.Post
}

// Load parses the posts bundled with the binary.
func Load() (*Store, error) {
	return Parse(defaultPosts)
}

func Parse(data []byte) (*Store, error) {
	var f postFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse posts: %w", err)
	}

	s := &Store{bySlug: make(map[string]*domain.Post, len(f.Posts))}
	for i, p := range f.Posts {
		switch {
		case p.Slug == "":
			return nil, fmt.Errorf("post %d: missing slug", i)
		case p.Title == "":
			return nil, fmt.Errorf("post %q: missing title", p.Slug)
		case p.PublishedAt.IsZero():
			return nil, fmt.Errorf("post %q: missing published_at", p.Slug)
		}
		if _, dup := s.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("post %q: duplicate slug", p.Slug)
		}

		post := &domain.Post{
			Slug:        p.Slug,
			Title:       p.Title,
			Summary:     p.Summary,
			Author:      p.Author,
			PublishedAt: p.PublishedAt,
			Tags:        p.Tags,
			Body:        p.Body,
			Draft:       p.Draft,
		}
		s.bySlug[p.Slug] = post
		if !post.Draft {
			s.posts = append(s.posts, post)
		}
	}

	sort.SliceStable(s.posts, func(i, j int) bool {
		return s.posts[i].PublishedAt.After(s.posts[j].PublishedAt)
	})
	return s, nil
}

// List returns every published post, newest first.
func (s *Store) List() []*domain.Post {
	out := make([]*domain.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *Store) Recent(n int) []*domain.Post {
	if n > len(s.posts) {
		n = len(s.posts)
	}
	if n < 0 {
		n = 0
	}
	out := make([]*domain.Post, n)
	copy(out, s.posts[:n])
	return out
}

func (s *Store) Get(slug string) (*domain.Post, error) {
	p, ok := s.bySlug[slug]
	if !ok || p.Draft {
		return nil, domain.ErrPostNotFound
	}
	return p, nil
}

func (s *Store) ByTag(tag string) []*domain.Post {
	var out []*domain.Post
	for _, p := range s.posts {
		for _, t := range p.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
