// Package domain contains the core business entities for the NutriSnack
// catalog. These are pure Go structs with no external dependencies,
// representing the fundamental concepts of the product catalog.
package domain

import (
	"time"
)

// Role is the access level carried by a resolved caller.
type Role string

const (
	// RoleCustomer is the default role: browse, favorite, comment.
	RoleCustomer Role = "customer"

	// RoleAdmin may additionally create, update and delete products
	// and upload product images.
	RoleAdmin Role = "admin"
)

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Name is the display name shown next to comments.
	Name string `json:"name"`

	// Email is the unique email address used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This must never be exposed in API responses.
	PasswordHash string `json:"-"`

	// IsAdmin indicates whether the user may mutate the catalog.
	// It is never settable through the public API; use catalog-admin.
	IsAdmin bool `json:"is_admin"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with default values.
func NewUser(name, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Role returns the access role derived from the admin flag.
func (u *User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

// Ref returns the {id, name} projection embedded in comment responses.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name}
}

// UserRef is the denormalized user projection carried by comments.
type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
