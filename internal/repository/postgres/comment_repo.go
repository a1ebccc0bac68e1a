package postgres

import (
	"context"
	"fmt"

	"github.com/nutrisnack/catalog/internal/domain"
	"github.com/nutrisnack/catalog/internal/repository"
)

// commentRepository implements repository.CommentRepository for PostgreSQL.
type commentRepository struct {
	db *DB
}

// NewCommentRepository creates a new PostgreSQL comment repository.
func NewCommentRepository(db *DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// Create appends a comment.
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (user_id, product_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		comment.UserID,
		comment.ProductID,
		comment.Content,
		comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByProduct returns a product's comments most recent first, with the
// commenting user's {id, name} joined in.
func (r *commentRepository) ListByProduct(ctx context.Context, productID int64) ([]*domain.Comment, error) {
	query := `
		SELECT c.id, c.user_id, c.product_id, c.content, c.created_at, u.id, u.name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.product_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		comment := &domain.Comment{User: &domain.UserRef{}}

		err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.ProductID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.User.ID,
			&comment.User.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}

		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// CountByProduct returns the number of comments for a product.
func (r *commentRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

// Ensure commentRepository implements repository.CommentRepository.
var _ repository.CommentRepository = (*commentRepository)(nil)
