package view

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

type LayoutProps struct {
	Title   string
	IsAdmin bool
}

func NavbarComponent(props LayoutProps) g.Node {
	return Nav(Class("nav"),
		Div(Class("nav-left"),
			Div(Class("brand"), A(Href("/"), g.Text("Blog"))),
		),
		Div(Class("nav-links nav-right"),
			A(Href("/"), g.Text("Articles")),
			A(Href("/about"), g.Text("About")),
			A(Href("/donate"), g.Text("Donate")),
			g.If(props.IsAdmin,
				A(Href("/api/logout"), g.Text("Logout")),
			),
		),
	)
}

func FooterComponent() g.Node {
	return Footer(Class("footer"),
		P(Small(g.Text("Written by hand, served by Go."))),
	)
}

func Layout(props LayoutProps, children ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Link(Rel("stylesheet"), Href("/static/css/main.css")),
				TitleEl(g.Text(props.Title)),
			),
			Body(
				Div(Class("container"),
					NavbarComponent(props),
					Main(
						g.Group(children),
					),
				),
				FooterComponent(),
			),
		),
	)
}
