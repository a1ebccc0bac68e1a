package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productImagePrefix is the directory and URL prefix for product images.
const productImagePrefix = "products"

// FilesystemBackend stores images on the local filesystem. Files are
// written under DataDir and served back by the API server under
// /storage/.
type FilesystemBackend struct {
	dataDir  string
	baseURL  string
	maxBytes int64
	logger   zerolog.Logger
}

// NewFilesystemBackend creates a filesystem backend rooted at dataDir.
// baseURL is the public base URL of the API server, used to build
// image URLs.
func NewFilesystemBackend(dataDir, baseURL string, maxBytes int64, logger zerolog.Logger) (*FilesystemBackend, error) {
	dir := filepath.Join(dataDir, productImagePrefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	return &FilesystemBackend{
		dataDir:  dataDir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		logger:   logger.With().Str("component", "fs_storage").Logger(),
	}, nil
}

// Store writes the image to disk and returns its public URL.
// The write goes through a temporary file renamed into place, so a
// partially written image is never visible.
func (b *FilesystemBackend) Store(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	if size > b.maxBytes {
		return "", ErrBlobTooLarge
	}

	key := uuid.New().String() + extensionFor(contentType)
	finalPath := filepath.Join(b.dataDir, productImagePrefix, key)

	tmp, err := os.CreateTemp(filepath.Dir(finalPath), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, io.LimitReader(reader, b.maxBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if written > b.maxBytes {
		_ = os.Remove(tmpPath)
		return "", ErrBlobTooLarge
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize image: %w", err)
	}

	b.logger.Debug().Str("key", key).Int64("bytes", written).Msg("stored image")

	return b.baseURL + "/storage/" + path.Join(productImagePrefix, key), nil
}

// extensionFor maps an image MIME type to a file extension.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

// Ensure FilesystemBackend implements Backend.
var _ Backend = (*FilesystemBackend)(nil)
