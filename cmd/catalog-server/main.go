// Package main is the entry point for the NutriSnack catalog server.
// The server exposes a public product catalog with per-user favorites,
// per-product comments, and a motivational quote endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nutrisnack/catalog/internal/auth"
	"github.com/nutrisnack/catalog/internal/config"
	"github.com/nutrisnack/catalog/internal/handler"
	"github.com/nutrisnack/catalog/internal/metrics"
	"github.com/nutrisnack/catalog/internal/repository"
	"github.com/nutrisnack/catalog/internal/repository/postgres"
	"github.com/nutrisnack/catalog/internal/repository/sqlite"
	"github.com/nutrisnack/catalog/internal/service"
	"github.com/nutrisnack/catalog/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	logger := setupLogger(cfg.Logging)
	log.Logger = logger

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting catalog server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	repos, dbHealth, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer dbHealth.Close()

	// Token store
	tokens, closeTokens, err := setupTokenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeTokens()

	// Image blob store
	blobs, err := setupBlobStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Metrics
	m := metrics.New()

	// Services
	authService := service.NewAuthService(repos.Users, tokens, cfg.Auth.TokenTTL, logger)
	catalogService := service.NewCatalogService(repos.Products, blobs, logger)
	favoriteService := service.NewFavoriteService(repos.Favorites, repos.Products, logger)
	commentService := service.NewCommentService(repos.Comments, repos.Products, logger)
	quoteService := service.NewQuoteService(cfg.Quote, m, logger)

	// Router
	imageDir := ""
	if cfg.Storage.Backend == "filesystem" {
		imageDir = cfg.Storage.DataDir
	}

	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler:     handler.NewAuthHandler(authService, logger),
		ProductHandler:  handler.NewProductHandler(catalogService, cfg.Storage.MaxUploadBytes, logger),
		FavoriteHandler: handler.NewFavoriteHandler(favoriteService, logger),
		CommentHandler:  handler.NewCommentHandler(commentService, logger),
		QuoteHandler:    handler.NewQuoteHandler(quoteService, logger),
		AuthMiddleware:  auth.Middleware(tokens, repos.Users),
		RequireAuth:     auth.RequireAuthenticated,
		Metrics:         m,
		ImageDir:        imageDir,
		Logger:          logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("API server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("API server failed: %w", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = m.Server(cfg.Metrics, logger)
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("metrics server failed: %w", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("API server shutdown failed")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown failed")
		}
	}

	logger.Info().Msg("shutdown complete")
	return nil
}

// setupLogger builds the root logger from configuration.
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// setupDatabase connects to the configured backend and runs migrations.
func setupDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*repository.Repositories, repository.DatabaseHealth, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		sqliteCfg := sqlite.DefaultConfig(cfg.Database.Path)
		sqliteCfg.JournalMode = cfg.Database.JournalMode
		sqliteCfg.BusyTimeout = cfg.Database.BusyTimeout
		sqliteCfg.SynchronousMode = cfg.Database.SynchronousMode

		db, err := sqlite.NewDB(ctx, sqliteCfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to SQLite: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return sqlite.NewRepositories(db), db, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return postgres.NewRepositories(db), db, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// setupTokenStore picks the Redis or in-memory token store.
func setupTokenStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (auth.TokenStore, func(), error) {
	if cfg.Redis.Enabled {
		store, err := auth.NewRedisTokenStore(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	}

	logger.Info().Msg("using in-memory token store")
	store := auth.NewMemoryTokenStore()
	return store, store.Stop, nil
}

// setupBlobStore picks the filesystem or S3 image backend.
func setupBlobStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.Backend, error) {
	switch cfg.Storage.Backend {
	case "filesystem":
		return storage.NewFilesystemBackend(
			cfg.Storage.DataDir,
			cfg.Server.PublicBaseURL,
			cfg.Storage.MaxUploadBytes,
			logger,
		)
	case "s3":
		return storage.NewS3Backend(ctx, cfg.Storage, logger)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}
