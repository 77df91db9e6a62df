package web

import (
	"fmt"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const profileCSS = `
.profile{min-height:100vh;background:var(--bg);color:var(--text);padding:3rem 1rem}
.profile .inner{max-width:560px;margin:0 auto;text-align:center}
.profile .avatar{width:96px;height:96px;border-radius:50%;object-fit:cover;border:3px solid var(--accent)}
.profile .links{list-style:none;padding:0;margin:2rem 0;display:flex;flex-direction:column;gap:.75rem}
.profile .links a{display:block;padding:.9rem 1rem;background:var(--surface);color:var(--text);text-decoration:none;border:2px solid var(--accent);border-radius:var(--radius)}
.profile .stats{background:var(--surface);border-radius:1rem;padding:1rem;display:grid;grid-template-columns:repeat(2,1fr);gap:.5rem}
.profile .stats strong{display:block;font-size:1.4rem;color:var(--accent)}
.profile .bio{white-space:pre-line}
`

func themeStyle(t domain.Theme) string {
	radius := "999px"
	if t.ButtonShape == domain.ButtonSquare {
		radius = ".5rem"
	}
	return fmt.Sprintf("--bg:%s;--surface:%s;--text:%s;--accent:%s;--radius:%s",
		t.Background, t.Surface, t.Text, t.Accent, radius)
}

// ProfilePage renders a public link-in-bio page in the profile's theme.
func ProfilePage(site Site, page *usecase.ProfilePage) Node {
	p := page.Profile
	return Layout(site, p.Name(),
		StyleEl(Raw(profileCSS)),
		Main(Class("profile theme-"+page.Theme.Name), Style(themeStyle(page.Theme)),
			Div(Class("inner"),
				If(p.AvatarURL != "", Img(Class("avatar"), Src(p.AvatarURL), Alt(p.Name()))),
				H1(Text(p.Name())),
				P(Class("muted"), Text("@"+p.Username)),
				If(p.Bio != "", P(Class("bio"), Text(p.Bio))),
				If(len(p.Links) > 0, Ul(Class("links"), Map(p.Links, socialLink))),
				statsCard(p.AniListUsername, page.Stats),
				P(Class("muted"),
					Text("Made with "),
					A(Href(site.URL), Text(site.Name)),
				),
			),
		),
	)
}

func socialLink(l domain.SocialLink) Node {
	return Li(
		A(Href(l.URL), Rel("noopener noreferrer me"), Target("_blank"), Text(l.Platform)),
	)
}

func statsCard(anilistName string, s *domain.AniListStats) Node {
	if s == nil {
		return nil
	}
	link := s.SiteURL
	if link == "" {
		link = "https://anilist.co/user/" + anilistName
	}
	return Section(
		H2(A(Href(link), Rel("noopener noreferrer me"), Target("_blank"), Text("AniList"))),
		Div(Class("stats"),
			stat("Anime", s.AnimeCount),
			stat("Episodes", s.EpisodesWatched),
			stat("Manga", s.MangaCount),
			stat("Chapters", s.ChaptersRead),
		),
	)
}

func stat(label string, n int) Node {
	return Div(Strong(Textf("%d", n)), Span(Text(label)))
}
