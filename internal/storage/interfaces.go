// Package storage defines the blob storage backends for product images.
// The storage layer persists raw image bytes and hands back a publicly
// reachable URL; it knows nothing about products.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrBlobTooLarge indicates the upload exceeded the configured size cap.
var ErrBlobTooLarge = errors.New("blob exceeds maximum allowed size")

// Backend defines the interface for image storage backends.
// Implementations include the local filesystem and S3-compatible object
// stores. The interface is stateless so backends can be swapped by
// configuration alone.
type Backend interface {
	// Store persists the content of reader and returns the public URL
	// where the stored image can be fetched.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeouts
	//   - reader: Source of the image bytes
	//   - size: Expected size in bytes (-1 if unknown)
	//   - contentType: MIME type of the image, used to pick the file extension
	//
	// Returns:
	//   - url: Public URL of the stored image
	//   - err: ErrBlobTooLarge if size exceeds the cap, or other error
	Store(ctx context.Context, reader io.Reader, size int64, contentType string) (url string, err error)
}
