package documents

import (
	"fmt"
	"net/url"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/MuhamadAgungGumelar/compta-web/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// ListProps is the data behind the document list page.
type ListProps struct {
	Query     string
	Page      Page
	Comptable bool
	Error     string
	ImageURL  func(backend.Document) string
}

// ListPage renders the searchable document table.
func ListPage(p ListProps) cmp.Node {
	return g.Div(
		g.Class("card"),
		g.H2(g.Class("titre text-center"), cmp.Text("Documents for management")),
		view.ErrorLine(p.Error),
		g.Div(
			g.Class("flex justify-between items-center mb-4"),
			g.Form(
				g.Method("get"), g.Action("/documents"),
				g.Input(g.Type("search"), g.Name("q"), g.Value(p.Query), g.Placeholder("Search..."), g.Class("form-control")),
			),
			cmp.If(p.Comptable, g.Div(
				g.Class("flex gap-2"),
				g.A(g.Href(exportHref("xlsx", p.Query)), g.Class("btn btn-dark"), cmp.Text("Export Excel")),
				g.A(g.Href(exportHref("pdf", p.Query)), g.Class("btn btn-dark"), cmp.Text("Export PDF")),
			)),
		),
		g.Table(
			g.Class("table table-sm"),
			g.THead(g.Tr(
				g.Th(cmp.Text("Date")),
				g.Th(cmp.Text("Nature")),
				g.Th(cmp.Text("Designation")),
				g.Th(cmp.Text("Recipient")),
				g.Th(cmp.Text("Priority")),
				g.Th(cmp.Text("Observations")),
				g.Th(),
			)),
			g.TBody(
				cmp.Map(p.Page.Items, func(d backend.Document) cmp.Node {
					return documentRow(d, p.ImageURL(d) != "")
				}),
			),
		),
		cmp.If(p.Page.Total == 0 && p.Error == "", g.P(g.Class("empty-state"), cmp.Text("No documents found."))),
		pager(p.Page, p.Query),
	)
}

func documentRow(d backend.Document, hasImage bool) cmp.Node {
	id := url.PathEscape(d.ID.String())

	return g.Tr(
		g.Td(cmp.Text(FormatDate(d.Date))),
		g.Td(cmp.Text(d.Nature)),
		g.Td(cmp.Text(d.Designation)),
		g.Td(cmp.Text(d.Destinataire)),
		g.Td(cmp.Text(d.Priorite)),
		g.Td(cmp.Text(d.Observations)),
		g.Td(cmp.If(hasImage, cmp.Group{
			g.A(g.Href("/documents/"+id+"/preview"), g.Target("_blank"), cmp.Text("View")),
			cmp.Text(" "),
			g.A(g.Href("/documents/"+id+"/qr"), g.Target("_blank"), cmp.Text("QR")),
		})),
	)
}

func pager(p Page, query string) cmp.Node {
	if p.Count <= 1 {
		return nil
	}

	link := func(number int, label string) cmp.Node {
		return g.A(g.Href(pageHref(number, query)), g.Class("page-link"), cmp.Text(label))
	}

	return g.Nav(
		g.Class("pagination flex gap-2 mt-4"),
		cmp.If(p.HasPrev(), link(p.Number-1, "Previous")),
		g.Span(cmp.Textf("Page %d of %d", p.Number+1, p.Count)),
		cmp.If(p.HasNext(), link(p.Number+1, "Next")),
	)
}

func pageHref(number int, query string) string {
	v := url.Values{}
	v.Set("page", fmt.Sprintf("%d", number+1))
	if query != "" {
		v.Set("q", query)
	}
	return "/documents?" + v.Encode()
}

func exportHref(format, query string) string {
	v := url.Values{}
	v.Set("format", format)
	if query != "" {
		v.Set("q", query)
	}
	return "/documents/export?" + v.Encode()
}

// PreviewModal renders the image preview fragment.
func PreviewModal(d backend.Document, imageURL string) cmp.Node {
	return g.Div(
		g.Class("modal show"), g.Role("dialog"),
		g.Div(
			g.Class("modal-content"),
			g.Div(
				g.Class("modal-header"),
				g.H5(g.Class("modal-title"), cmp.Text(d.Designation)),
				g.A(g.Href("/documents"), g.Class("close"), cmp.Text("Close")),
			),
			g.Div(
				g.Class("modal-body"),
				g.Img(g.Src(imageURL), g.Alt(d.Designation), g.Class("img-fluid")),
			),
		),
	)
}
