package dashboard

import (
	"encoding/json"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/compta-web/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// chartBoot draws every canvas carrying a data-chart attribute.
const chartBoot = `document.querySelectorAll("canvas[data-chart]").forEach(function (el) {
  var c = JSON.parse(el.dataset.chart);
  var datasets = c.values ? [{label: c.title, data: c.values, backgroundColor: c.colors}]
    : c.data.map(function (s) { return {label: s.name, data: s.values, backgroundColor: s.colors}; });
  new Chart(el, {type: c.type, data: {labels: c.labels, datasets: datasets},
    options: {responsive: true, plugins: {legend: {display: true}}}});
});`

// Page renders the dashboard body for v.
func Page(v View) cmp.Node {
	return g.Div(
		g.Class("card"),
		g.H2(g.Class("text-center mb-5"), cmp.Text("Dashboard")),
		view.ErrorLine(v.Error),
		cmp.If(len(v.Cards) > 0, statCards(v.Cards)),
		cmp.Iff(v.Statistics != nil, func() cmp.Node { return chartCanvas("statistics-chart", v.Statistics) }),
		cmp.Iff(v.OrdersPerPeriod != nil, func() cmp.Node { return chartCanvas("orders-chart", v.OrdersPerPeriod) }),
		cmp.Iff(v.Roles != nil, func() cmp.Node { return chartCanvas("roles-chart", v.Roles) }),
		cmp.If(v.Notice != "", g.P(g.Class("empty-state text-gray-500"), cmp.Text(v.Notice))),
		g.Script(cmp.Raw(chartBoot)),
	)
}

func statCards(cards []analytics.StatCard) cmp.Node {
	return g.Div(
		g.Class("grid grid-cols-4 gap-4"),
		cmp.Map(cards, func(card analytics.StatCard) cmp.Node {
			return g.Div(
				g.Class("p-4 rounded shadow"),
				g.Style("border-top: 4px solid "+card.Color),
				g.Div(g.Class("text-sm text-gray-500"), cmp.Text(card.Title)),
				g.Div(g.Class("text-2xl font-bold"), cmp.Text(card.Value)),
			)
		}),
	)
}

func chartCanvas(id string, chart interface{}) cmp.Node {
	data, err := json.Marshal(chart)
	if err != nil {
		return nil
	}
	return g.Div(
		g.Class("mt-5"),
		g.Canvas(g.ID(id), g.Data("chart", string(data))),
	)
}
