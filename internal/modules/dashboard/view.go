package dashboard

import (
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/session"
)

const (
	emptySeriesMessage = "No orders recorded for any period yet."
	noDataMessage      = "There is no dashboard data for your role."
)

// View is what the render surfaces consume. Charts are derived from State
// on every call and never cached.
type View struct {
	Phase     Phase             `json:"phase"`
	Identity  *backend.Identity `json:"identity,omitempty"`
	Loading   bool              `json:"loading"`
	Error     string            `json:"error,omitempty"`
	ErrorKind backend.ErrorKind `json:"errorKind,omitempty"`
	Redirect  string            `json:"redirect,omitempty"`

	Cards           []analytics.StatCard    `json:"cards,omitempty"`
	Statistics      *analytics.ChartData    `json:"statistics,omitempty"`
	Roles           *analytics.PieChartData `json:"roles,omitempty"`
	OrdersPerPeriod *analytics.ChartData    `json:"ordersPerPeriod,omitempty"`

	// OrdersEmpty is set when the series loaded fine but has no points.
	OrdersEmpty bool `json:"ordersEmpty"`
	// Notice is the empty-state text, if any.
	Notice string `json:"notice,omitempty"`
}

// BuildView turns a snapshot into chart-ready data.
func BuildView(s State) View {
	v := View{
		Phase:     s.Phase,
		Identity:  s.Identity,
		Loading:   s.Loading,
		Error:     s.Error,
		ErrorKind: s.ErrorKind,
	}

	if s.Phase == PhaseUnauthenticated {
		v.Redirect = session.SignInPath
		return v
	}

	if s.Statistics != nil && hasStatistics(s.Fetches) {
		chart := analytics.StatisticsBarChart(*s.Statistics)
		v.Statistics = &chart
		v.Cards = analytics.StatisticsCards(*s.Statistics)
		if s.Statistics.Roles != nil {
			pie := analytics.RoleBreakdownPieChart(*s.Statistics.Roles)
			v.Roles = &pie
		}
	}

	if s.Series != nil && hasSeries(s.Fetches) {
		if len(s.Series) == 0 {
			v.OrdersEmpty = true
			v.Notice = emptySeriesMessage
		} else {
			chart := analytics.OrdersPerPeriodBarChart(s.Series)
			v.OrdersPerPeriod = &chart
		}
	}

	if s.Phase == PhaseReady && len(s.Fetches) == 0 {
		v.Notice = noDataMessage
	}
	return v
}
