package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/auth"
	"github.com/nutrisnack/catalog/internal/service"
)

// FavoriteHandler handles the caller's favorites.
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
	logger          zerolog.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favoriteService *service.FavoriteService, logger zerolog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		logger:          logger.With().Str("handler", "favorite").Logger(),
	}
}

// RegisterProtectedRoutes registers the routes requiring a valid token.
func (h *FavoriteHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/favorites", h.handleList)
	r.Post("/products/{id}/favorite", h.handleToggle)
}

func (h *FavoriteHandler) handleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.favoriteService.List(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *FavoriteHandler) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.favoriteService.Toggle(r.Context(), auth.UserFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
