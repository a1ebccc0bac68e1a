package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nutrisnack/catalog/internal/domain"
	"github.com/nutrisnack/catalog/internal/repository"
)

// favoriteRepository implements repository.FavoriteRepository for PostgreSQL.
type favoriteRepository struct {
	db *DB
}

// NewFavoriteRepository creates a new PostgreSQL favorite repository.
func NewFavoriteRepository(db *DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

// errToggleRaced signals that a concurrent toggle inserted the row
// between our delete and insert. The caller retries once; the retry
// observes the row and removes it.
var errToggleRaced = errors.New("favorite toggle raced")

// Toggle atomically flips the membership state for (userID, productID).
// The delete-then-insert runs in one transaction; the primary key on the
// pair guarantees at most one row survives any interleaving.
func (r *favoriteRepository) Toggle(ctx context.Context, userID, productID int64) (bool, error) {
	added, err := r.toggleOnce(ctx, userID, productID)
	if errors.Is(err, errToggleRaced) {
		added, err = r.toggleOnce(ctx, userID, productID)
	}
	if err != nil {
		return false, err
	}
	return added, nil
}

func (r *favoriteRepository) toggleOnce(ctx context.Context, userID, productID int64) (bool, error) {
	var added bool

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`,
			userID, productID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete favorite: %w", err)
		}

		if tag.RowsAffected() > 0 {
			added = false
			return nil
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO favorites (user_id, product_id, created_at) VALUES ($1, $2, $3)`,
			userID, productID, time.Now().UTC(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return errToggleRaced
			}
			if isForeignKeyViolation(err) {
				return domain.ErrProductNotFound
			}
			return fmt.Errorf("failed to insert favorite: %w", err)
		}

		added = true
		return nil
	})

	return added, err
}

// Exists reports whether the pair is currently present.
func (r *favoriteRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite existence: %w", err)
	}
	return exists, nil
}

// ListProducts returns the user's active favorited products, most
// recently favorited first.
func (r *favoriteRepository) ListProducts(ctx context.Context, userID int64) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.image_url, p.is_active, p.created_at, p.updated_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1 AND p.is_active
		ORDER BY f.created_at DESC, p.id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// CountByProduct returns the number of favorite rows for a product.
func (r *favoriteRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

// Ensure favoriteRepository implements repository.FavoriteRepository.
var _ repository.FavoriteRepository = (*favoriteRepository)(nil)
