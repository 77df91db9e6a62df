package web

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// countdownScript swaps the server-rendered values for live ones from the
// SSE stream. The page still reads correctly without it.
const countdownScript = `
(function(){
  var el = document.getElementById("countdown");
  if (!el || !window.EventSource) return;
  var es = new EventSource("/api/countdown/stream");
  function set(r){
    ["days","hours","minutes","seconds"].forEach(function(k){
      var v = el.querySelector("[data-unit=" + k + "]");
      if (v) v.textContent = r[k];
    });
  }
  es.addEventListener("tick", function(e){ set(JSON.parse(e.data)); });
  es.addEventListener("expired", function(){ el.classList.add("expired"); es.close(); });
})();
(function(){
  var form = document.getElementById("waitlist-form");
  if (!form || !window.fetch) return;
  form.addEventListener("submit", function(e){
    e.preventDefault();
    var msg = document.getElementById("waitlist-msg");
    fetch(form.action, {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({email: form.email.value, source: "landing"})
    }).then(function(r){
      msg.textContent = r.ok ? "You're on the list. See you at launch!" : "Please check your email address.";
    });
  });
})();
`

func LandingPage(site Site, data *usecase.LandingData) Node {
	return Layout(site, "",
		siteHeader(site),
		Main(Class("wrap"),
			landingHero(site, data.Countdown),
			If(len(data.Trending) > 0, trendingSection(data.Trending)),
			If(data.Release != nil || data.Repo != nil, releaseSection(data.Release, data.Repo)),
			If(len(data.Posts) > 0, recentPostsSection(data.Posts)),
			waitlistSection(),
		),
		siteFooter(site),
		Script(Raw(countdownScript)),
	)
}

func landingHero(site Site, cd *usecase.CountdownView) Node {
	return Section(Class("hero"),
		H1(Text(site.Name)),
		P(Class("muted"), Text("Track every episode and chapter. Share your list with one link.")),
		countdownBlock(cd),
	)
}

func countdownBlock(cd *usecase.CountdownView) Node {
	if cd == nil {
		return nil
	}
	r := cd.Remaining
	if r.Expired {
		return Div(ID("countdown"), Class("countdown expired"),
			Attr("data-target", cd.Countdown.TargetAt.UTC().Format(time.RFC3339)),
			Strong(Textf("%s is here!", cd.Countdown.Label)),
		)
	}
	return Div(
		P(Text(cd.Countdown.Label)),
		Div(ID("countdown"), Class("countdown"),
			Attr("data-target", cd.Countdown.TargetAt.UTC().Format(time.RFC3339)),
			countdownUnit("days", r.Days),
			countdownUnit("hours", r.Hours),
			countdownUnit("minutes", r.Minutes),
			countdownUnit("seconds", r.Seconds),
		),
	)
}

func countdownUnit(name string, v int64) Node {
	return Div(Class("unit"),
		Span(Class("value"), Attr("data-unit", name), Text(strconv.FormatInt(v, 10))),
		Span(Class("muted"), Text(name)),
	)
}

func trendingSection(media []*domain.Media) Node {
	return Section(Class("section"),
		H2(Text("Trending on AniList")),
		Div(Class("grid"), Map(media, mediaCard)),
	)
}

func mediaCard(m *domain.Media) Node {
	return A(Class("card"), Href(m.SiteURL), Rel("noopener noreferrer"), Target("_blank"),
		If(m.CoverImage != "", Img(Src(m.CoverImage), Alt(m.DisplayTitle()), Attr("loading", "lazy"))),
		Div(Class("meta"),
			Strong(Text(m.DisplayTitle())),
			If(m.AverageScore > 0, Div(Class("muted"), Textf("%d%%", m.AverageScore))),
		),
	)
}

func releaseSection(rel *domain.Release, repo *domain.RepoStats) Node {
	return Section(Class("section"),
		H2(Text("Download")),
		releaseBlock(rel),
		repoBlock(repo),
	)
}

func releaseBlock(rel *domain.Release) Node {
	if rel == nil {
		return nil
	}
	return Div(
		P(
			Text("Latest release: "),
			A(Href(rel.HTMLURL), Rel("noopener noreferrer"), Target("_blank"), Text(releaseName(rel))),
			If(!rel.PublishedAt.IsZero(), Span(Class("muted"), Textf(" · %s", rel.PublishedAt.Format("Jan 2, 2006")))),
		),
		If(len(rel.Assets) > 0, Ul(Map(rel.Assets, func(a domain.ReleaseAsset) Node {
			return Li(A(Class("button"), Href(a.DownloadURL), Text(a.Name)))
		}))),
	)
}

func repoBlock(repo *domain.RepoStats) Node {
	if repo == nil {
		return nil
	}
	return P(Class("muted"),
		A(Href(repo.HTMLURL), Rel("noopener noreferrer"), Target("_blank"), Text(repo.FullName)),
		Textf(" · ★ %d · %d forks", repo.Stars, repo.Forks),
	)
}

func releaseName(rel *domain.Release) string {
	if rel.Name != "" {
		return rel.Name
	}
	return rel.TagName
}

func recentPostsSection(posts []*domain.Post) Node {
	return Section(Class("section"),
		H2(Text("From the blog")),
		Ul(Class("posts"), Map(posts, postSummary)),
		A(Href("/blog"), Text("All posts →")),
	)
}

func waitlistSection() Node {
	return Section(ID("waitlist"), Class("section hero"),
		H2(Text("Be first in line")),
		Form(ID("waitlist-form"), Class("waitlist"), Action("/api/waitlist"), Method("post"),
			Input(Type("email"), Name("email"), Placeholder("you@example.com"), Required()),
			Input(Type("hidden"), Name("source"), Value("landing")),
			Button(Class("button"), Type("submit"), Text("Join the waitlist")),
		),
		P(ID("waitlist-msg"), Class("muted")),
	)
}
