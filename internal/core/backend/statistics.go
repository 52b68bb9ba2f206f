package backend

import (
	"context"
	"net/http"
)

// FetchStatistics retrieves the aggregate counters. The token is optional
// for this endpoint; it is sent when present.
func (c *Client) FetchStatistics(ctx context.Context, token string) (AggregateStatistics, error) {
	body, err := c.do(ctx, "fetch statistics", http.MethodGet, "/api/statistics", token, nil)
	if err != nil {
		return AggregateStatistics{}, err
	}
	return ParseStatistics(body)
}

// ParseStatistics validates a statistics payload. All four counters must be
// present; the role breakdown is all-or-nothing.
func ParseStatistics(body []byte) (AggregateStatistics, error) {
	var p statisticsPayload
	if err := decodePayload("fetch statistics", body, &p); err != nil {
		return AggregateStatistics{}, err
	}

	stats := AggregateStatistics{
		TotalUsers:      *p.TotalUsers,
		TotalOrders:     *p.TotalOrders,
		TotalDeliveries: *p.TotalDeliveries,
		UnpaidInvoices:  *p.UnpaidInvoices,
	}
	if p.AdminUsers != nil {
		stats.Roles = &RoleBreakdown{
			AdminUsers:    *p.AdminUsers,
			StandardUsers: *p.StandardUsers,
			ManagerUsers:  *p.ManagerUsers,
		}
	}
	return stats, nil
}

// Ping issues an unauthenticated statistics request and discards the body.
// It is used by the reachability monitor.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "ping", http.MethodGet, "/api/statistics", "", nil)
	return err
}
