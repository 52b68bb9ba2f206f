package backend

import (
	"context"
	"net/http"
	"net/url"
)

// FetchOrdersPerPeriod retrieves the orders time series. An empty userID
// asks for the series across all users.
func (c *Client) FetchOrdersPerPeriod(ctx context.Context, token, userID string) ([]PeriodOrderPoint, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	path := "/api/orders-per-period"
	if userID != "" {
		path += "/" + url.PathEscape(userID)
	}

	body, err := c.do(ctx, "fetch orders per period", http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return ParseOrdersPerPeriod(body)
}

// ParseOrdersPerPeriod validates a time-series payload. One bad element
// rejects the whole response so a chart is never silently truncated.
// Ordering is preserved as received.
func ParseOrdersPerPeriod(body []byte) ([]PeriodOrderPoint, error) {
	const op = "fetch orders per period"

	var p ordersPayload
	if err := decodePayload(op, body, &p); err != nil {
		return nil, err
	}

	points := make([]PeriodOrderPoint, len(p.OrdersPerPeriod))
	for i, item := range p.OrdersPerPeriod {
		points[i] = PeriodOrderPoint{PeriodLabel: *item.Label, Count: *item.Count}
	}
	if err := payloadValidator.Var(points, "unique=PeriodLabel"); err != nil {
		return nil, malformed(op, "period labels must be unique")
	}
	return points, nil
}
