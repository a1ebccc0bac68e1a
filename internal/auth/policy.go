// Package auth provides bearer-token authentication and the catalog
// authorization policy.
package auth

import (
	"github.com/nutrisnack/catalog/internal/domain"
)

// Action is a mutating operation gated by the authorization policy.
type Action string

const (
	ActionCreateProduct Action = "create-product"
	ActionUpdateProduct Action = "update-product"
	ActionDeleteProduct Action = "delete-product"
	ActionUploadImage   Action = "upload-image"
)

// Authorize decides whether the caller may perform the action. It is a
// pure decision function with no side effects, and it must be consulted
// before any store mutation: a deny short-circuits the request with no
// partial writes.
//
// Returns nil to allow, domain.ErrNotAuthenticated when there is no
// valid caller, and domain.ErrNotAdmin when the caller lacks the admin
// role. Read operations are never gated.
func Authorize(action Action, caller *domain.User) error {
	if caller == nil {
		return domain.ErrNotAuthenticated
	}

	switch action {
	case ActionCreateProduct, ActionUpdateProduct, ActionDeleteProduct, ActionUploadImage:
		if caller.Role() != domain.RoleAdmin {
			return domain.ErrNotAdmin
		}
		return nil
	default:
		// Unknown actions are denied outright rather than silently allowed.
		return domain.ErrNotAdmin
	}
}
