package auth

import (
	"context"
	"errors"
	"time"
)

// ErrTokenNotFound indicates the token does not exist or has expired.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore persists issued bearer tokens. A token maps to the owning
// user's ID and expires after its TTL; logout deletes it eagerly.
type TokenStore interface {
	// Save stores a token for a user with the given TTL.
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error

	// Resolve returns the user ID a token belongs to.
	// Returns ErrTokenNotFound for unknown, revoked, or expired tokens.
	Resolve(ctx context.Context, token string) (int64, error)

	// Delete revokes a token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
