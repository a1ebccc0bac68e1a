package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/service"
)

// QuoteHandler serves the motivational quote endpoint.
type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       zerolog.Logger
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService *service.QuoteService, logger zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger.With().Str("handler", "quote").Logger(),
	}
}

// RegisterPublicRoutes registers the routes reachable without a token.
func (h *QuoteHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/motivation", h.handleGet)
}

// handleGet always answers 200: provider failures are absorbed by the
// service and replaced with the fallback quote.
func (h *QuoteHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	quote := h.quoteService.Get(r.Context())
	writeJSON(w, http.StatusOK, quote)
}
