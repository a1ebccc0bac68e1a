package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nutrisnack/catalog/internal/domain"
)

// AuthorizationHeader is the header carrying the bearer token.
const AuthorizationHeader = "Authorization"

// bearerPrefix is the expected scheme prefix, matched case-insensitively.
const bearerPrefix = "bearer "

// UserLoader loads the user a resolved token belongs to.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Middleware creates the bearer-token authentication middleware.
//
// Requests without an Authorization header pass through anonymously so
// public routes keep working; route groups that need a caller enforce
// it with RequireAuthenticated. A header that is present but does not
// resolve to a user fails the request immediately with 401, even on
// public routes.
func Middleware(store TokenStore, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(AuthorizationHeader)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := parseBearerToken(header)
			if err != nil {
				writeAuthError(w)
				return
			}

			userID, err := store.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, ErrTokenNotFound) {
					log.Error().Err(err).Msg("token resolution failed")
				}
				writeAuthError(w)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				// The token outlived its user. Treat it as invalid.
				log.Debug().Int64("user_id", userID).Msg("token references missing user")
				writeAuthError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAuthenticated rejects anonymous requests with 401. It must be
// mounted after Middleware.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			writeAuthError(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TokenFromRequest extracts the bearer token from a request. Used by
// logout, which needs the raw token to revoke it.
func TokenFromRequest(r *http.Request) (string, error) {
	return parseBearerToken(r.Header.Get(AuthorizationHeader))
}

// parseBearerToken extracts the token from an Authorization header.
func parseBearerToken(header string) (string, error) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", domain.ErrInvalidToken
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", domain.ErrInvalidToken
	}
	return token, nil
}

// writeAuthError writes a 401 JSON error response.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthenticated"})
}
