package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/domain"
	"github.com/nutrisnack/catalog/internal/repository"
)

// CommentService handles the append-only per-product comment log.
type CommentService struct {
	commentRepo repository.CommentRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, productRepo repository.ProductRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "comment").Logger(),
	}
}

// ListByProduct returns a product's comments, most recent first, each
// carrying the commenting user's {id, name}.
func (s *CommentService) ListByProduct(ctx context.Context, productID int64) ([]*domain.Comment, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to check product")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	comments, err := s.commentRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to list comments")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return comments, nil
}

// Append posts a comment on a product as the caller. Comments are
// immutable once written.
func (s *CommentService) Append(ctx context.Context, caller *domain.User, productID int64, content string) (*domain.Comment, error) {
	if caller == nil {
		return nil, domain.ErrNotAuthenticated
	}

	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to check product")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	comment := domain.NewComment(caller, productID, content)

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error().Err(err).
			Int64("user_id", caller.ID).
			Int64("product_id", productID).
			Msg("failed to create comment")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Debug().
		Int64("comment_id", comment.ID).
		Int64("user_id", caller.ID).
		Int64("product_id", productID).
		Msg("comment posted")

	return comment, nil
}

// validateCommentContent enforces the 1..200 character bounds. Length
// is counted in characters, not bytes.
func validateCommentContent(content string) error {
	v := domain.NewValidationError()

	length := utf8.RuneCountInString(content)
	if length == 0 {
		v.Add("content", "content is required")
	} else if length > domain.MaxCommentLength {
		v.Add("content", "content must be at most 200 characters")
	}

	return v.ErrOrNil()
}
