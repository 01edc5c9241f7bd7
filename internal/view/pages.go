package view

import (
	"strconv"
	"time"

	"github.com/blog-cms-api/internal/models"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// articleHref prefers the alias when one is set
func articleHref(a *models.Article) string {
	if a.Alias != "" {
		return "/article/" + a.Alias
	}
	return "/article/" + strconv.FormatInt(a.ID, 10)
}

func formatDate(ts int64) string {
	return time.Unix(ts, 0).Format("2006-01-02")
}

func articleCard(a *models.Article) g.Node {
	return Div(Class("card article-card"),
		g.If(a.Cover != "", Img(Src(a.Cover), Alt(a.Title))),
		H2(A(Href(articleHref(a)), g.Text(a.Title))),
		g.If(!a.Published, Span(Class("tag is-draft"), g.Text("draft"))),
		P(Class("teaser"), g.Text(a.Teaser)),
		Small(g.Text(formatDate(a.CreatedAt))),
	)
}

// HomePage lists the given articles, newest first
func HomePage(props LayoutProps, articles []*models.Article) g.Node {
	cards := make([]g.Node, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, articleCard(a))
	}

	return Layout(props,
		H1(g.Text("Articles")),
		g.If(len(articles) == 0, P(g.Text("Nothing published yet."))),
		Div(Class("articles"), g.Group(cards)),
	)
}

// ArticlePage shows one article with its paragraphs. Paragraph HTML is
// authored by the admin and written unescaped.
func ArticlePage(props LayoutProps, a *models.Article) g.Node {
	paragraphs := make([]g.Node, 0, len(a.Paragraphs))
	for i := range a.Paragraphs {
		p := &a.Paragraphs[i]
		paragraphs = append(paragraphs,
			Section(Class("paragraph"), ID("p"+strconv.FormatInt(p.ID, 10)),
				g.If(p.Title != "", H3(g.Text(p.Title))),
				g.Raw(p.Display()),
			),
		)
	}

	return Layout(props,
		Article(Class("article"),
			H1(g.Text(a.Title)),
			Small(g.Textf("Published %s", formatDate(a.CreatedAt))),
			g.If(a.Cover != "", Img(Class("cover"), Src(a.Cover), Alt(a.Title))),
			g.If(a.Teaser != "", P(Class("teaser"), g.Text(a.Teaser))),
			g.Group(paragraphs),
		),
	)
}

// AboutPage is the static about page
func AboutPage(props LayoutProps) g.Node {
	return Layout(props,
		H1(g.Text("About")),
		P(g.Text("A personal blog about software and the things around it.")),
		contactForm(),
	)
}

// DonatePage is the static donation page
func DonatePage(props LayoutProps) g.Node {
	return Layout(props,
		H1(g.Text("Donate")),
		P(g.Text("If an article helped you, consider supporting the blog.")),
	)
}

func contactForm() g.Node {
	return FormEl(Method("post"), Action("/api/contact"), Class("contact"),
		H2(g.Text("Contact")),
		Input(Type("email"), Name("email"), ID("email"), Placeholder("Email"), Required()),
		Input(Type("text"), Name("subject"), ID("subject"), Placeholder("Subject")),
		Textarea(Name("message"), ID("message"), Rows("6"), Placeholder("Message"), Required()),
		Button(Type("submit"), g.Text("Send")),
	)
}

// ErrorPage renders a status message
func ErrorPage(props LayoutProps, status int, message string) g.Node {
	return Layout(props,
		H1(g.Textf("%d", status)),
		P(g.Text(message)),
		A(Href("/"), g.Text("Back to the articles")),
	)
}
