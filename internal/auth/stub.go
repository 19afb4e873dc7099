package auth

import (
	"context"
	"net/http"

	"github.com/expensely/expensely-be/internal/models"
)

// StubAuthenticator accepts any bearer token and resolves a fixed identity.
// It exists for local development and handler tests; production deployments
// select the token verifier instead.
type StubAuthenticator struct {
	Identity models.Identity
}

var _ Authenticator = (*StubAuthenticator)(nil)

// NewStubAuthenticator returns a stub resolving the default development
// identity.
func NewStubAuthenticator() *StubAuthenticator {
	return &StubAuthenticator{
		Identity: models.Identity{
			UserID:   "user-123",
			Email:    "test@example.com",
			Username: "testuser",
		},
	}
}

// Authenticate still requires a bearer token to be present so that the
// missing-credential path behaves like production.
func (s *StubAuthenticator) Authenticate(_ context.Context, header http.Header) (models.Identity, error) {
	if _, err := BearerToken(header); err != nil {
		return models.Identity{}, err
	}
	return s.Identity, nil
}
