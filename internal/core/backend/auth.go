package backend

import (
	"context"
	"encoding/json"
	"net/http"
)

type loginRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"mot_de_passe"`
}

// Login exchanges credentials for a bearer token. Rejected credentials are
// reported as ErrUnauthenticated.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	const op = "login"

	body, err := c.do(ctx, op, http.MethodPost, "/api/login", "", loginRequest{Email: email, MotDePasse: password})
	if err != nil {
		return LoginResult{}, err
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return LoginResult{}, malformed(op, "invalid body: %v", err)
	}
	if result.Token == "" {
		return LoginResult{}, malformed(op, "missing token")
	}
	return result, nil
}

// Register creates an account. Server-side rejections come back as
// *TransportError with Message set to the server's explanation.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	_, err := c.do(ctx, "register", http.MethodPost, "/api/register", "", req)
	return err
}

// FetchEnterpriseCodes lists the enterprises an accountant can attach to.
func (c *Client) FetchEnterpriseCodes(ctx context.Context) ([]EnterpriseCode, error) {
	const op = "fetch enterprise codes"

	body, err := c.do(ctx, op, http.MethodGet, "/api/code_entreprises", "", nil)
	if err != nil {
		return nil, err
	}
	var codes []EnterpriseCode
	if err := json.Unmarshal(body, &codes); err != nil {
		return nil, malformed(op, "expected an array: %v", err)
	}
	return codes, nil
}

// FetchAccountants lists registered accountants.
func (c *Client) FetchAccountants(ctx context.Context) ([]Accountant, error) {
	const op = "fetch accountants"

	body, err := c.do(ctx, op, http.MethodGet, "/api/comptables", "", nil)
	if err != nil {
		return nil, err
	}
	var accountants []Accountant
	if err := json.Unmarshal(body, &accountants); err != nil {
		return nil, malformed(op, "expected an array: %v", err)
	}
	return accountants, nil
}
