// Package auth verifies bearer credentials and resolves caller identity.
// Results are never cached; every request re-verifies.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/expensely/expensely-be/internal/models"
)

var (
	ErrNoAuthHeader = errors.New("no authorization header provided")
	ErrNoToken      = errors.New("no token provided")
)

// Authenticator resolves the identity behind a request's bearer credential.
type Authenticator interface {
	Authenticate(ctx context.Context, header http.Header) (models.Identity, error)
}

// BearerToken extracts the bearer token from request headers.
func BearerToken(header http.Header) (string, error) {
	raw := header.Get("Authorization")
	if raw == "" {
		return "", ErrNoAuthHeader
	}
	token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
