// Package domain contains the core business entities for the NutriSnack catalog.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same email exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates authentication failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ===========================================
	// Authentication/Authorization Errors
	// ===========================================

	// ErrNotAuthenticated indicates the request carries no valid caller.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotAdmin indicates a valid caller lacking the admin role.
	ErrNotAdmin = errors.New("admin role required")

	// ErrInvalidToken indicates the bearer token is missing, malformed,
	// expired, or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ===========================================
	// Product Errors
	// ===========================================

	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ===========================================
	// Comment Errors
	// ===========================================

	// ErrCommentNotFound indicates the requested comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")

	// ===========================================
	// External Dependency Errors
	// ===========================================

	// ErrUpstream indicates an external dependency failure that is
	// surfaced to the caller (the blob store). The quote provider never
	// surfaces this error; it falls back instead.
	ErrUpstream = errors.New("upstream dependency failed")
)

// ValidationError carries field-level validation failures. It maps to
// HTTP 422 at the API boundary and is always detected before any store
// mutation.
type ValidationError struct {
	// Fields maps a field name to its human-readable failure message.
	Fields map[string]string
}

// NewValidationError creates an empty ValidationError ready to collect
// field failures.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a failure for a field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any field failed validation.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error itself when failures were recorded, nil
// otherwise. Lets validators end with `return v.ErrOrNil()`.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
