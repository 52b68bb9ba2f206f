package backend

import (
	"context"
	"encoding/json"
	"net/http"
)

// FetchDocuments lists the documents addressed to management.
func (c *Client) FetchDocuments(ctx context.Context, token string) ([]Document, error) {
	const op = "fetch documents"

	if token == "" {
		return nil, ErrUnauthenticated
	}
	body, err := c.do(ctx, op, http.MethodGet, "/api/documents_direction", token, nil)
	if err != nil {
		return nil, err
	}

	var docs []Document
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, malformed(op, "expected an array of documents: %v", err)
	}
	if docs == nil {
		return nil, malformed(op, "expected an array, got null")
	}
	return docs, nil
}
