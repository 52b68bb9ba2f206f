package analytics

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
)

// StatisticsLabels are the bar labels of the statistics chart, in order.
var StatisticsLabels = []string{"Users", "Orders", "Deliveries", "Unpaid Invoices"}

// RoleLabels are the slice labels of the role breakdown chart, in order.
var RoleLabels = []string{"Administrators", "Users", "Accountants"}

// StatisticsBarChart converts aggregate statistics to a four-bar chart.
func StatisticsBarChart(s backend.AggregateStatistics) ChartData {
	values := []float64{
		float64(s.TotalUsers),
		float64(s.TotalOrders),
		float64(s.TotalDeliveries),
		float64(s.UnpaidInvoices),
	}

	labels := make([]string, len(StatisticsLabels))
	copy(labels, StatisticsLabels)

	return ChartData{
		Type:   "bar",
		Title:  "Statistics",
		Labels: labels,
		Data: []ChartSeries{
			{
				Name:   "Statistics",
				Values: values,
				Colors: colorsFor(len(values)),
			},
		},
	}
}

// OrdersPerPeriodBarChart converts a period series to a bar chart. Points
// keep the order the server sent them in.
func OrdersPerPeriodBarChart(points []backend.PeriodOrderPoint) ChartData {
	labels := make([]string, len(points))
	values := make([]float64, len(points))

	for i, p := range points {
		labels[i] = p.PeriodLabel
		values[i] = float64(p.Count)
	}

	return ChartData{
		Type:   "bar",
		Title:  "Orders per period",
		Labels: labels,
		Data: []ChartSeries{
			{
				Name:   "Orders",
				Values: values,
				Colors: colorsFor(len(values)),
			},
		},
	}
}

// RoleBreakdownPieChart converts the per-role user counts to a doughnut.
func RoleBreakdownPieChart(r backend.RoleBreakdown) PieChartData {
	labels := make([]string, len(RoleLabels))
	copy(labels, RoleLabels)

	return PieChartData{
		Type:   "doughnut",
		Title:  "Users by role",
		Labels: labels,
		Values: []float64{
			float64(r.AdminUsers),
			float64(r.StandardUsers),
			float64(r.ManagerUsers),
		},
		Colors: colorsFor(len(labels)),
	}
}

// StatisticsCards renders the counters as summary cards, sharing colors with
// the bars of StatisticsBarChart.
func StatisticsCards(s backend.AggregateStatistics) []StatCard {
	values := []int64{s.TotalUsers, s.TotalOrders, s.TotalDeliveries, s.UnpaidInvoices}

	cards := make([]StatCard, len(values))
	for i, v := range values {
		cards[i] = StatCard{
			Title: StatisticsLabels[i],
			Value: formatCount(v),
			Color: PaletteColor(i),
		}
	}
	return cards
}

func formatCount(n int64) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
