package web_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
	"github.com/ErlanBelekov/kumo-site/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

var site = web.Site{Name: "Kumo", URL: "https://kumo.example"}

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestProfilePage_EscapesUserContent(t *testing.T) {
	page := &usecase.ProfilePage{
		Profile: &domain.Profile{
			Username:    "hikari",
			DisplayName: `<script>alert("x")</script>`,
			Bio:         "I <3 anime & manga",
			Links: []domain.SocialLink{
				{Platform: `"><img src=x>`, URL: `https://example.com/?a=1&b="2"`},
			},
		},
		Theme: domain.ThemeByName("midnight"),
	}

	html := render(t, web.ProfilePage(site, page))

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "I &lt;3 anime &amp; manga")
	assert.NotContains(t, html, `"><img src=x>`)
	assert.Contains(t, html, `rel="noopener noreferrer me"`)
	assert.Contains(t, html, `target="_blank"`)
}

func TestProfilePage_AppliesTheme(t *testing.T) {
	theme := domain.ThemeByName("matcha")
	page := &usecase.ProfilePage{
		Profile: &domain.Profile{Username: "hikari"},
		Theme:   theme,
	}

	html := render(t, web.ProfilePage(site, page))

	assert.Contains(t, html, "--bg:"+theme.Background)
	assert.Contains(t, html, "--accent:"+theme.Accent)
	assert.Contains(t, html, "theme-matcha")
	assert.Contains(t, html, "<title>hikari · Kumo</title>")
}

func TestProfilePage_StatsCard(t *testing.T) {
	page := &usecase.ProfilePage{
		Profile: &domain.Profile{Username: "hikari", AniListUsername: "Hikari"},
		Theme:   domain.ThemeByName(""),
	}
	assert.NotContains(t, render(t, web.ProfilePage(site, page)), "Episodes")

	page.Stats = &domain.AniListStats{Name: "Hikari", AnimeCount: 12, EpisodesWatched: 300}
	html := render(t, web.ProfilePage(site, page))
	assert.Contains(t, html, "Episodes")
	assert.Contains(t, html, "https://anilist.co/user/Hikari")
	assert.Contains(t, html, "300")
}

func TestLandingPage_Sections(t *testing.T) {
	target := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	data := &usecase.LandingData{
		SiteName: "Kumo",
		Countdown: &usecase.CountdownView{
			Countdown: &domain.Countdown{Slug: "launch", Label: "Launch day", TargetAt: target},
			Remaining: domain.Remaining{Days: 3, Hours: 4, Minutes: 5, Seconds: 6},
		},
		Trending: []*domain.Media{{ID: 1, Title: domain.MediaTitle{Romaji: "Sousou no Frieren"}, SiteURL: "https://anilist.co/anime/1"}},
		Release:  &domain.Release{TagName: "v1.2.0", HTMLURL: "https://github.com/kumo-app/kumo/releases/v1.2.0"},
		Posts:    []*domain.Post{{Slug: "hello", Title: "Hello <world>", PublishedAt: target}},
	}

	html := render(t, web.LandingPage(site, data))

	assert.Contains(t, html, `data-target="2026-11-01T00:00:00Z"`)
	assert.Contains(t, html, "Sousou no Frieren")
	assert.Contains(t, html, "v1.2.0")
	assert.Contains(t, html, "Hello &lt;world&gt;")
	assert.Contains(t, html, `action="/api/waitlist"`)
}

func TestLandingPage_MissingSections(t *testing.T) {
	html := render(t, web.LandingPage(site, &usecase.LandingData{SiteName: "Kumo", Failed: []string{"countdown", "trending"}}))

	assert.NotContains(t, html, "data-target")
	assert.NotContains(t, html, "Trending on AniList")
	assert.Contains(t, html, "waitlist-form")
}

func TestLandingPage_ExpiredCountdown(t *testing.T) {
	data := &usecase.LandingData{
		Countdown: &usecase.CountdownView{
			Countdown: &domain.Countdown{Label: "Launch", TargetAt: time.Now().Add(-time.Hour)},
			Remaining: domain.Remaining{Expired: true},
		},
	}
	assert.Contains(t, render(t, web.LandingPage(site, data)), "Launch is here!")
}

func TestBlogPost_RendersParagraphs(t *testing.T) {
	post := &domain.Post{
		Slug:        "season-preview",
		Title:       "Season preview",
		Author:      "Kumo team",
		PublishedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"anime"},
		Body:        []string{"First paragraph.", "Second <b>paragraph</b>."},
	}
	html := render(t, web.BlogPost(site, post))

	assert.Contains(t, html, "<p>First paragraph.</p>")
	assert.Contains(t, html, "Second &lt;b&gt;paragraph&lt;/b&gt;.")
	assert.Contains(t, html, "September 1, 2026")
	assert.Contains(t, html, "#anime")
}

func TestBlogIndex_Empty(t *testing.T) {
	assert.Contains(t, render(t, web.BlogIndex(site, nil)), "No posts yet.")
}

func TestNotFoundPage(t *testing.T) {
	html := render(t, web.NotFoundPage(site))
	assert.Contains(t, html, "404")
	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
}
