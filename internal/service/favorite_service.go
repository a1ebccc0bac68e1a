package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/domain"
	"github.com/nutrisnack/catalog/internal/repository"
)

// FavoriteService handles the per-user favorites relation.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, productRepo repository.ProductRepository, logger zerolog.Logger) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "favorite").Logger(),
	}
}

// ToggleOutput describes the outcome of a favorite toggle.
type ToggleOutput struct {
	Status    domain.ToggleStatus `json:"status"`
	Message   string              `json:"message"`
	ProductID int64               `json:"product_id"`
}

// Toggle flips the caller's favorite state for a product. Adding and
// removing share this single entry point; the response reports which
// transition happened.
func (s *FavoriteService) Toggle(ctx context.Context, caller *domain.User, productID int64) (*ToggleOutput, error) {
	if caller == nil {
		return nil, domain.ErrNotAuthenticated
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to check product")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	added, err := s.favoriteRepo.Toggle(ctx, caller.ID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error().Err(err).
			Int64("user_id", caller.ID).
			Int64("product_id", productID).
			Msg("failed to toggle favorite")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	out := &ToggleOutput{ProductID: productID}
	if added {
		out.Status = domain.ToggleAdded
		out.Message = "Producto agregado a favoritos"
	} else {
		out.Status = domain.ToggleRemoved
		out.Message = "Producto eliminado de favoritos"
	}

	s.logger.Debug().
		Int64("user_id", caller.ID).
		Int64("product_id", productID).
		Str("status", string(out.Status)).
		Msg("favorite toggled")

	return out, nil
}

// List returns the caller's favorited products, newest favorite first.
// Products deactivated after being favorited are filtered out at read
// time; the favorite row itself stays.
func (s *FavoriteService) List(ctx context.Context, caller *domain.User) ([]*domain.Product, error) {
	if caller == nil {
		return nil, domain.ErrNotAuthenticated
	}

	products, err := s.favoriteRepo.ListProducts(ctx, caller.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", caller.ID).Msg("failed to list favorites")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return products, nil
}
