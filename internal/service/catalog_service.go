package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/auth"
	"github.com/nutrisnack/catalog/internal/domain"
	"github.com/nutrisnack/catalog/internal/repository"
	"github.com/nutrisnack/catalog/internal/storage"
)

// CatalogService handles product reads and admin-gated catalog
// mutations. Reads are public; every mutation consults the
// authorization policy before touching the store.
type CatalogService struct {
	productRepo repository.ProductRepository
	blobs       storage.Backend
	logger      zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repository.ProductRepository, blobs storage.Backend, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		blobs:       blobs,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// List returns catalog products, newest first. By default only active
// products are returned; includeInactive exposes the full catalog.
func (s *CatalogService) List(ctx context.Context, includeInactive bool) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, !includeInactive)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return products, nil
}

// Get retrieves a single product by ID, active or not.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return product, nil
}

// CreateProductInput contains the data needed to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	IsActive    *bool
}

// Create adds a product to the catalog. Admin only.
func (s *CatalogService) Create(ctx context.Context, caller *domain.User, input CreateProductInput) (*domain.Product, error) {
	if err := auth.Authorize(auth.ActionCreateProduct, caller); err != nil {
		return nil, err
	}

	if err := validateProductFields(input.Name, input.Price, true); err != nil {
		return nil, err
	}

	product := domain.NewProduct(input.Name, input.Description, input.Price)
	product.ImageURL = input.ImageURL
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Int64("admin_id", caller.ID).
		Msg("product created")

	return product, nil
}

// UpdateProductInput contains the fields to change on a product. Nil
// fields keep their current value.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	IsActive    *bool
}

// Update applies a partial update to a product. Admin only.
func (s *CatalogService) Update(ctx context.Context, caller *domain.User, id int64, input UpdateProductInput) (*domain.Product, error) {
	if err := auth.Authorize(auth.ActionUpdateProduct, caller); err != nil {
		return nil, err
	}

	if err := s.validateUpdateInput(input); err != nil {
		return nil, err
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Int64("admin_id", caller.ID).
		Msg("product updated")

	return product, nil
}

// Delete removes a product from the catalog. Admin only. Favorites and
// comments referencing the product are removed with it.
func (s *CatalogService) Delete(ctx context.Context, caller *domain.User, id int64) error {
	if err := auth.Authorize(auth.ActionDeleteProduct, caller); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.ErrProductNotFound
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("product_id", id).
		Int64("admin_id", caller.ID).
		Msg("product deleted")

	return nil
}

// UploadImageInput contains an image upload.
type UploadImageInput struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// UploadImage stores an image in the blob store and returns its public
// URL. Admin only. The URL is meant to be set on a product in a
// follow-up create or update call. A blob store failure surfaces as
// ErrUpstream.
func (s *CatalogService) UploadImage(ctx context.Context, caller *domain.User, input UploadImageInput) (string, error) {
	if err := auth.Authorize(auth.ActionUploadImage, caller); err != nil {
		return "", err
	}

	if !strings.HasPrefix(input.ContentType, "image/") {
		v := domain.NewValidationError()
		v.Add("image", "file must be an image")
		return "", v
	}

	url, err := s.blobs.Store(ctx, input.Reader, input.Size, input.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrBlobTooLarge) {
			v := domain.NewValidationError()
			v.Add("image", "image exceeds the maximum allowed size")
			return "", v
		}
		s.logger.Error().Err(err).Msg("blob store failed")
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	s.logger.Info().
		Str("image_url", url).
		Int64("admin_id", caller.ID).
		Msg("image uploaded")

	return url, nil
}

// validateProductFields checks name and price constraints. required
// applies the presence check used on create.
func validateProductFields(name string, price float64, required bool) error {
	v := domain.NewValidationError()

	if required && name == "" {
		v.Add("name", "name is required")
	}
	if len(name) > domain.MaxProductNameLength {
		v.Add("name", "name must be at most 255 characters")
	}
	if price < 0 {
		v.Add("price", "price must not be negative")
	}

	return v.ErrOrNil()
}

// validateUpdateInput checks only the fields present in a partial update.
func (s *CatalogService) validateUpdateInput(input UpdateProductInput) error {
	v := domain.NewValidationError()

	if input.Name != nil {
		if *input.Name == "" {
			v.Add("name", "name must not be empty")
		} else if len(*input.Name) > domain.MaxProductNameLength {
			v.Add("name", "name must be at most 255 characters")
		}
	}
	if input.Price != nil && *input.Price < 0 {
		v.Add("price", "price must not be negative")
	}

	return v.ErrOrNil()
}
