package auth

import (
	"context"

	"github.com/nutrisnack/catalog/internal/domain"
)

// userContextKey is the context key for the resolved caller.
type userContextKey struct{}

// WithUser returns a context carrying the resolved caller.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the resolved caller from a request context.
// Returns nil when the request is unauthenticated.
func UserFromContext(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(userContextKey{}).(*domain.User); ok {
		return user
	}
	return nil
}

// RequireUser is a helper to get the caller or fail with
// domain.ErrNotAuthenticated.
func RequireUser(ctx context.Context) (*domain.User, error) {
	user := UserFromContext(ctx)
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}
