package domain

import (
	"time"
)

// Favorite is a pure membership row in the user-favorites-product
// relation. It has no identity beyond the (UserID, ProductID) pair,
// which is unique at all times.
type Favorite struct {
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ToggleStatus is the outcome of a favorite toggle.
type ToggleStatus string

const (
	// ToggleAdded means the pair transitioned from absent to present.
	ToggleAdded ToggleStatus = "added"

	// ToggleRemoved means the pair transitioned from present to absent.
	ToggleRemoved ToggleStatus = "removed"
)
