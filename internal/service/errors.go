// Package service provides business logic services for the NutriSnack
// catalog. Services validate input, consult the authorization policy
// before any mutation, and translate repository errors into domain
// errors.
package service

import "errors"

// ErrInternalError wraps infrastructure failures the caller cannot act
// on. Handlers map it to HTTP 500; the underlying cause is logged, not
// exposed.
var ErrInternalError = errors.New("internal server error")
