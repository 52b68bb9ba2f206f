package backend

import (
	"context"
	"net/http"
)

// ResolveIdentity asks the API who owns token. A missing token fails
// without issuing a request.
func (c *Client) ResolveIdentity(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}

	body, err := c.do(ctx, "resolve identity", http.MethodGet, "/api/home", token, nil)
	if err != nil {
		return Identity{}, err
	}
	return ParseIdentity(body)
}

// ParseIdentity validates a GET /api/home payload.
func ParseIdentity(body []byte) (Identity, error) {
	var p homePayload
	if err := decodePayload("resolve identity", body, &p); err != nil {
		return Identity{}, err
	}
	return *p.User, nil
}
