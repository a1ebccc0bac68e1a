package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/auth"
	"github.com/nutrisnack/catalog/internal/service"
)

// CommentHandler handles per-product comments.
type CommentHandler struct {
	commentService *service.CommentService
	logger         zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *service.CommentService, logger zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger.With().Str("handler", "comment").Logger(),
	}
}

// RegisterPublicRoutes registers the routes reachable without a token.
func (h *CommentHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/products/{id}/comments", h.handleList)
}

// RegisterProtectedRoutes registers the routes requiring a valid token.
func (h *CommentHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/products/{id}/comments", h.handleCreate)
}

func (h *CommentHandler) handleList(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	comments, err := h.commentService.ListByProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.commentService.Append(r.Context(), auth.UserFromContext(r.Context()), id, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
