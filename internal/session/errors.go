// Package session owns the authenticated identity for a client session:
// rehydration from a durable slot, the login/logout lifecycle, and the
// credential lookup boundary.
package session

import (
	"context"
	"errors"

	"github.com/placementhub/placementhub/internal/domain"
)

// Store errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials or user not found")
	ErrLoginInFlight      = errors.New("another login attempt is in progress")
)

// ErrNoMatch is returned by a CredentialSource when no record matches the
// email+role pair. The store reports it to callers as ErrInvalidCredentials.
var ErrNoMatch = errors.New("no matching credential record")

// CredentialSource resolves an email+role pair to an identity. The match is
// exact and case-sensitive. Implementations must return ErrNoMatch when no
// record matches; any other error is treated as a lookup failure.
type CredentialSource interface {
	Lookup(ctx context.Context, email string, role domain.Role) (*domain.Identity, error)
}
