package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/auth"
	"github.com/nutrisnack/catalog/internal/domain"
	"github.com/nutrisnack/catalog/internal/service"
)

// ProductHandler handles catalog reads and admin product mutations.
type ProductHandler struct {
	catalogService *service.CatalogService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalogService *service.CatalogService, maxUploadBytes int64, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("handler", "product").Logger(),
	}
}

// RegisterPublicRoutes registers the routes reachable without a token.
func (h *ProductHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/products", h.handleList)
	r.Get("/products/{id}", h.handleGet)
}

// RegisterProtectedRoutes registers the routes requiring a valid token.
// The admin gate itself lives in the service layer.
func (h *ProductHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/products", h.handleCreate)
	r.Put("/products/{id}", h.handleUpdate)
	r.Delete("/products/{id}", h.handleDelete)
	r.Post("/products/upload-image", h.handleUploadImage)
}

// productID parses the {id} route parameter.
func productID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrProductNotFound
	}
	return id, nil
}

func (h *ProductHandler) handleList(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("all") == "1"

	products, err := h.catalogService.List(r.Context(), includeInactive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.catalogService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

type productRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}

func (h *ProductHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	input := service.CreateProductInput{IsActive: req.IsActive}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Price != nil {
		input.Price = *req.Price
	}
	if req.ImageURL != nil {
		input.ImageURL = *req.ImageURL
	}

	product, err := h.catalogService.Create(r.Context(), auth.UserFromContext(r.Context()), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.catalogService.Update(r.Context(), auth.UserFromContext(r.Context()), id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.catalogService.Delete(r.Context(), auth.UserFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	// The extra headroom lets the size check in the service produce a
	// 422 instead of an opaque body-read failure.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		v := domain.NewValidationError()
		v.Add("image", "image exceeds the maximum allowed size")
		writeError(w, v)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		v := domain.NewValidationError()
		v.Add("image", "image file is required")
		writeError(w, v)
		return
	}
	defer file.Close()

	url, err := h.catalogService.UploadImage(r.Context(), auth.UserFromContext(r.Context()), service.UploadImageInput{
		Reader:      file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Imagen subida correctamente.",
		"url":     url,
	})
}
