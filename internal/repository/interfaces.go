// Package repository defines data access interfaces for the NutriSnack
// catalog. These interfaces abstract database operations, allowing for
// different implementations (SQLite, PostgreSQL, in-memory for testing)
// while keeping the service layer clean.
package repository

import (
	"context"

	"github.com/nutrisnack/catalog/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user and fills in its generated ID.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *domain.User) error

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// =============================================================================
// Product Repository (Catalog Store)
// =============================================================================

// ProductRepository defines the interface for product data access.
// Listings are always ordered by created_at descending.
type ProductRepository interface {
	// Create creates a new product and fills in its generated ID.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List returns products ordered by created_at descending.
	// When activeOnly is true, inactive products are filtered out.
	List(ctx context.Context, activeOnly bool) ([]*domain.Product, error)

	// Update persists all fields of an existing product.
	Update(ctx context.Context, product *domain.Product) error

	// Delete hard-deletes a product. Dependent favorite and comment
	// rows are removed with it.
	Delete(ctx context.Context, id int64) error
}

// =============================================================================
// Favorite Repository (Favorites Index)
// =============================================================================

// FavoriteRepository defines the interface for the user-favorites-product
// relation. The (user_id, product_id) pair is unique at all times.
type FavoriteRepository interface {
	// Toggle atomically flips the membership state for the pair and
	// reports the resulting state: added is true when the pair
	// transitioned from absent to present. Concurrent toggles for the
	// same pair serialize through the unique constraint; at most one
	// row per pair exists at any point.
	Toggle(ctx context.Context, userID, productID int64) (added bool, err error)

	// Exists reports whether the pair is currently present.
	Exists(ctx context.Context, userID, productID int64) (bool, error)

	// ListProducts returns the user's favorited products that are
	// currently active, ordered by favorited-at descending. The
	// is_active filter is applied at read time.
	ListProducts(ctx context.Context, userID int64) ([]*domain.Product, error)

	// CountByProduct returns the number of favorite rows for a product.
	CountByProduct(ctx context.Context, productID int64) (int64, error)
}

// =============================================================================
// Comment Repository (Comment Log)
// =============================================================================

// CommentRepository defines the interface for the append-only comment log.
type CommentRepository interface {
	// Create appends a comment and fills in its generated ID.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByProduct returns a product's comments ordered by created_at
	// descending, each with the commenting user's {id, name} joined in.
	ListByProduct(ctx context.Context, productID int64) ([]*domain.Comment, error)

	// CountByProduct returns the number of comments for a product.
	CountByProduct(ctx context.Context, productID int64) (int64, error)
}

// =============================================================================
// Aggregate
// =============================================================================

// Repositories holds all repository instances for one database backend.
type Repositories struct {
	Users     UserRepository
	Products  ProductRepository
	Favorites FavoriteRepository
	Comments  CommentRepository
}

// DatabaseHealth is an interface for database health checks and shutdown.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Close() error
}
