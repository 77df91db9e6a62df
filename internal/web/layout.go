// Package web renders the server-side HTML pages.
package web

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Site carries the values every page shares.
type Site struct {
	Name string
	URL  string
}

const baseCSS = `
*{box-sizing:border-box}
body{margin:0;font-family:system-ui,-apple-system,"Segoe UI",sans-serif;line-height:1.5;color:#1d1b26;background:#fbfaff}
a{color:inherit}
.wrap{max-width:1080px;margin:0 auto;padding:0 1.25rem}
.site-header,.site-footer{padding:1rem 0}
.site-header nav{display:flex;gap:1.25rem;align-items:center}
.site-header .brand{font-weight:700;text-decoration:none;margin-right:auto}
.hero{padding:4rem 0 2rem;text-align:center}
.hero h1{font-size:2.75rem;margin:0 0 .5rem}
.countdown{display:flex;gap:1rem;justify-content:center;margin:1.5rem 0}
.countdown .unit{min-width:4.5rem;padding:.75rem;border-radius:.75rem;background:#fff;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.countdown .value{display:block;font-size:1.75rem;font-weight:700}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(150px,1fr));gap:1rem}
.card{background:#fff;border-radius:.75rem;overflow:hidden;box-shadow:0 1px 3px rgba(0,0,0,.08);text-decoration:none}
.card img{width:100%;aspect-ratio:2/3;object-fit:cover;display:block}
.card .meta{padding:.5rem .75rem;font-size:.9rem}
.section{padding:2rem 0}
.waitlist{display:flex;gap:.5rem;justify-content:center}
.waitlist input{padding:.6rem .9rem;border-radius:999px;border:1px solid #ccc;min-width:16rem}
.button{display:inline-block;padding:.6rem 1.2rem;border-radius:999px;border:0;background:#6c4cf5;color:#fff;text-decoration:none;cursor:pointer}
.posts li{margin-bottom:1rem}
.muted{color:#6b6880;font-size:.9rem}
.tags span{margin-right:.5rem}
`

// Layout wraps body in the shared document shell.
func Layout(site Site, title string, body ...Node) Node {
	pageTitle := site.Name
	if title != "" {
		pageTitle = title + " · " + site.Name
	}

	return Doctype(
		HTML(Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(pageTitle)),
				Meta(Attr("property", "og:title"), Content(pageTitle)),
				Meta(Attr("property", "og:site_name"), Content(site.Name)),
				StyleEl(Raw(baseCSS)),
			),
			Body(body...),
		),
	)
}

func siteHeader(site Site) Node {
	return Header(Class("site-header"),
		Div(Class("wrap"),
			Nav(
				A(Class("brand"), Href("/"), Text(site.Name)),
				A(Href("/blog"), Text("Blog")),
				A(Href("/#waitlist"), Text("Join the waitlist")),
			),
		),
	)
}

func siteFooter(site Site) Node {
	return Footer(Class("site-footer"),
		Div(Class("wrap muted"),
			Textf("%s · Anime and manga tracking, powered by ", site.Name),
			A(Href("https://anilist.co"), Rel("noopener noreferrer"), Target("_blank"), Text("AniList")),
		),
	)
}

// NotFoundPage is rendered for unknown routes and missing profiles.
func NotFoundPage(site Site) Node {
	return Layout(site, "Not found",
		siteHeader(site),
		Main(Class("wrap hero"),
			H1(Text("404")),
			P(Text("Nothing lives at this address yet.")),
			A(Class("button"), Href("/"), Text("Back home")),
		),
		siteFooter(site),
	)
}
