package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/metrics"
)

// Router assembles the HTTP surface of the catalog server.
type Router struct {
	authHandler     *AuthHandler
	productHandler  *ProductHandler
	favoriteHandler *FavoriteHandler
	commentHandler  *CommentHandler
	quoteHandler    *QuoteHandler
	authMiddleware  func(http.Handler) http.Handler
	requireAuth     func(http.Handler) http.Handler
	metrics         *metrics.Metrics
	imageDir        string
	logger          zerolog.Logger
}

// RouterConfig contains the dependencies for the router.
type RouterConfig struct {
	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	FavoriteHandler *FavoriteHandler
	CommentHandler  *CommentHandler
	QuoteHandler    *QuoteHandler

	// AuthMiddleware resolves bearer tokens into callers.
	AuthMiddleware func(http.Handler) http.Handler

	// RequireAuth rejects anonymous requests on protected groups.
	RequireAuth func(http.Handler) http.Handler

	// Metrics instruments handled requests. Optional.
	Metrics *metrics.Metrics

	// ImageDir, when set, is served read-only under /storage/ for the
	// filesystem image backend.
	ImageDir string

	Logger zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		authHandler:     cfg.AuthHandler,
		productHandler:  cfg.ProductHandler,
		favoriteHandler: cfg.FavoriteHandler,
		commentHandler:  cfg.CommentHandler,
		quoteHandler:    cfg.QuoteHandler,
		authMiddleware:  cfg.AuthMiddleware,
		requireAuth:     cfg.RequireAuth,
		metrics:         cfg.Metrics,
		imageDir:        cfg.ImageDir,
		logger:          cfg.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(rt.logRequests)
	r.Use(middleware.Recoverer)
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
	}

	r.Get("/health", rt.handleHealth)

	if rt.imageDir != "" {
		rt.mountImageServer(r)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(rt.authMiddleware)

		// Public routes: catalog reads, comments read, quote, register,
		// login. A token, when present, is still resolved so handlers
		// can see the caller.
		r.Group(func(r chi.Router) {
			rt.authHandler.RegisterPublicRoutes(r)
			rt.productHandler.RegisterPublicRoutes(r)
			rt.commentHandler.RegisterPublicRoutes(r)
			rt.quoteHandler.RegisterPublicRoutes(r)
		})

		// Protected routes: everything that acts as a caller.
		r.Group(func(r chi.Router) {
			r.Use(rt.requireAuth)
			rt.authHandler.RegisterProtectedRoutes(r)
			rt.productHandler.RegisterProtectedRoutes(r)
			rt.favoriteHandler.RegisterProtectedRoutes(r)
			rt.commentHandler.RegisterProtectedRoutes(r)
		})
	})

	return r
}

// mountImageServer serves stored product images from disk.
func (rt *Router) mountImageServer(r chi.Router) {
	dir, err := filepath.Abs(rt.imageDir)
	if err != nil {
		rt.logger.Error().Err(err).Str("dir", rt.imageDir).Msg("failed to resolve image directory")
		return
	}

	fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(dir)))
	r.Get("/storage/*", func(w http.ResponseWriter, req *http.Request) {
		fs.ServeHTTP(w, req)
	})

	rt.logger.Info().Str("dir", dir).Msg("serving images under /storage/")
}

// logRequests writes one access log line per handled request.
func (rt *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		rt.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// handleHealth handles liveness checks.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
