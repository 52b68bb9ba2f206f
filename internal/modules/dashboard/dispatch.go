package dashboard

import "github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"

// Fetch names one data request the dashboard can issue.
type Fetch string

const (
	FetchStatistics Fetch = "statistics"
	// FetchOrdersPerPeriod loads the series across all users.
	FetchOrdersPerPeriod Fetch = "orders_per_period"
	// FetchUserOrdersPerPeriod loads the series of the signed-in user only.
	FetchUserOrdersPerPeriod Fetch = "user_orders_per_period"
)

// DispatchTable maps a role to the fetches its dashboard needs. A role that
// is absent or maps to an empty list gets no data fetch at all.
type DispatchTable map[backend.Role][]Fetch

// DefaultDispatch is the production role mapping.
func DefaultDispatch() DispatchTable {
	return DispatchTable{
		backend.RoleComptable:   {FetchStatistics, FetchOrdersPerPeriod},
		backend.RoleUtilisateur: {FetchUserOrdersPerPeriod},
		backend.RoleAdmin:       {},
	}
}

// For returns the fetches for role, never nil.
func (t DispatchTable) For(role backend.Role) []Fetch {
	fetches := t[role]
	out := make([]Fetch, len(fetches))
	copy(out, fetches)
	return out
}

func hasStatistics(fetches []Fetch) bool {
	for _, f := range fetches {
		if f == FetchStatistics {
			return true
		}
	}
	return false
}

func hasSeries(fetches []Fetch) bool {
	for _, f := range fetches {
		if f == FetchOrdersPerPeriod || f == FetchUserOrdersPerPeriod {
			return true
		}
	}
	return false
}
