package domain

import (
	"time"
)

// MaxProductNameLength is the maximum length of a product name.
const MaxProductNameLength = 255

// Product represents an item in the public catalog.
type Product struct {
	// ID is the unique identifier for the product (auto-generated).
	ID int64 `json:"id"`

	// Name is the display name. Required, at most 255 characters.
	Name string `json:"name"`

	// Description is an optional free-form description.
	Description string `json:"description"`

	// Price is the unit price. Never negative.
	Price float64 `json:"price"`

	// ImageURL is an optional public URL for the product image. It is
	// set either directly or from an upload-image call.
	ImageURL string `json:"image_url"`

	// IsActive controls visibility in the public catalog and in
	// favorites listings. Defaults to true.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the product was created.
	// Catalog listings are ordered by this field, descending.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the product was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProduct creates a new Product with default values.
func NewProduct(name, description string, price float64) *Product {
	now := time.Now().UTC()
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
