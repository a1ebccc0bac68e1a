// Package handler provides the HTTP handlers for the NutriSnack
// catalog API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nutrisnack/catalog/internal/domain"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Error().Err(err).Msg("failed to encode response")
		}
	}
}

// errorResponse is the uniform error payload.
type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// writeError maps a service error onto its HTTP status and payload.
// Every handler funnels errors through here so the status mapping
// stays in one place.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Message: "validation failed",
			Errors:  ve.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "unauthenticated"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Message: "invalid credentials",
			Errors:  map[string]string{"email": "these credentials do not match our records"},
		})
	case errors.Is(err, domain.ErrNotAdmin):
		writeJSON(w, http.StatusForbidden, errorResponse{Message: "admin role required"})
	case errors.Is(err, domain.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "product not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "user not found"})
	case errors.Is(err, domain.ErrCommentNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "comment not found"})
	case errors.Is(err, domain.ErrUpstream):
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: "upstream dependency failed"})
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

// decodeJSON parses a JSON request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		v := domain.NewValidationError()
		v.Add("body", "request body must be valid JSON")
		return v
	}
	return nil
}
