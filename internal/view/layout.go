package view

import (
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/gofiber/fiber/v2"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const chartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"

// PageProps describes the shell around a page body.
type PageProps struct {
	Title    string
	Identity *backend.Identity
	Flashes  Flashes
	Scripts  []string
}

// CalculateTitle returns the document title for a page.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - Compta Online"
	}
	return "Compta Online"
}

// Page wraps body in the application layout.
func Page(p PageProps, body ...cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(CalculateTitle(p.Title))),
				cmp.Map(p.Scripts, func(src string) cmp.Node {
					return g.Script(g.Src(src))
				}),
			),
			g.Body(
				g.Class("bg-gray-50 text-gray-900"),
				navBar(p.Identity),
				g.Main(
					g.Class("container mx-auto p-8"),
					flashMessages(p.Flashes),
					cmp.Group(body),
				),
			),
		),
	)
}

// ChartScripts are the scripts a page with charts needs.
func ChartScripts() []string {
	return []string{chartJSURL}
}

func navBar(id *backend.Identity) cmp.Node {
	if id == nil {
		return g.Nav(
			g.Class("flex gap-4 p-4 bg-indigo-700 text-white"),
			g.A(g.Href("/"), cmp.Text("Sign in")),
			g.A(g.Href("/register"), cmp.Text("Register")),
		)
	}

	return g.Nav(
		g.Class("flex gap-4 p-4 bg-indigo-700 text-white"),
		g.A(g.Href("/dashboard"), cmp.Text("Dashboard")),
		g.A(g.Href("/documents"), cmp.Text("Documents")),
		g.Span(g.Class("ml-auto"), cmp.Textf("%s (%s)", displayName(id), id.Role)),
		g.Form(
			g.Method("post"), g.Action("/logout"),
			g.Button(g.Type("submit"), cmp.Text("Sign out")),
		),
	)
}

func displayName(id *backend.Identity) string {
	if id.Identite != "" {
		return id.Identite
	}
	return id.Email
}

func flashMessages(f Flashes) cmp.Node {
	return cmp.Group{
		cmp.If(f.Success != "", g.P(g.Class("flash flash-success text-green-700"), cmp.Text(f.Success))),
		cmp.If(f.Error != "", g.P(g.Class("flash flash-error text-red-600"), cmp.Text(f.Error))),
	}
}

// ErrorLine renders an inline error message, or nothing.
func ErrorLine(msg string) cmp.Node {
	return cmp.If(msg != "", g.P(g.Class("error text-red-600"), g.Role("alert"), cmp.Text(msg)))
}

// Render writes node as an HTML response.
func Render(c *fiber.Ctx, status int, node cmp.Node) error {
	c.Status(status)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return node.Render(c)
}
