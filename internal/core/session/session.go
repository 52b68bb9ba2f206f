package session

import (
	"context"
	"fmt"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
)

// Session carries the credential and, once resolved, the identity it
// belongs to. It is passed explicitly to everything that needs it.
type Session struct {
	Token    string
	Identity *backend.Identity
}

// IdentityResolver resolves the identity behind a token.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (backend.Identity, error)
}

// Authenticated reports whether a credential is present. It says nothing
// about whether the server still accepts it.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Refresh re-resolves the identity from the server and stores it on the
// session. On failure the cached identity is dropped.
func (s *Session) Refresh(ctx context.Context, r IdentityResolver) (backend.Identity, error) {
	if !s.Authenticated() {
		return backend.Identity{}, backend.ErrUnauthenticated
	}

	id, err := r.ResolveIdentity(ctx, s.Token)
	if err != nil {
		s.Identity = nil
		return backend.Identity{}, fmt.Errorf("refresh session: %w", err)
	}
	s.Identity = &id
	return id, nil
}

// Role returns the resolved role, or "" before the first refresh.
func (s *Session) Role() backend.Role {
	if s == nil || s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}
