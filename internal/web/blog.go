package web

import (
	"github.com/ErlanBelekov/kumo-site/internal/domain"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const dateLayout = "January 2, 2006"

func BlogIndex(site Site, posts []*domain.Post) Node {
	return Layout(site, "Blog",
		siteHeader(site),
		Main(Class("wrap section"),
			H1(Text("Blog")),
			If(len(posts) == 0, P(Class("muted"), Text("No posts yet."))),
			Ul(Class("posts"), Map(posts, postSummary)),
		),
		siteFooter(site),
	)
}

func postSummary(p *domain.Post) Node {
	return Li(
		A(Href("/blog/"+p.Slug), Strong(Text(p.Title))),
		Div(Class("muted"), Textf("%s · %s", p.PublishedAt.Format(dateLayout), p.Author)),
		If(p.Summary != "", P(Text(p.Summary))),
	)
}

func BlogPost(site Site, p *domain.Post) Node {
	return Layout(site, p.Title,
		siteHeader(site),
		Main(Class("wrap section"),
			Article(
				H1(Text(p.Title)),
				P(Class("muted"), Textf("%s · %s", p.PublishedAt.Format(dateLayout), p.Author)),
				If(len(p.Tags) > 0, Div(Class("tags muted"), Map(p.Tags, func(tag string) Node {
					return Span(Text("#" + tag))
				}))),
				Map(p.Body, func(para string) Node { return P(Text(para)) }),
			),
			A(Href("/blog"), Text("← All posts")),
		),
		siteFooter(site),
	)
}
