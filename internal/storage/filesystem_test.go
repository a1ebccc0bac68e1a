package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestBackend(t *testing.T, maxBytes int64) (*FilesystemBackend, string) {
	t.Helper()

	dir := t.TempDir()
	backend, err := NewFilesystemBackend(dir, "http://localhost:8000/", maxBytes, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	return backend, dir
}

func TestFilesystemBackend_Store(t *testing.T) {
	backend, dir := newTestBackend(t, 1024)

	payload := []byte("fake png bytes")
	url, err := backend.Store(context.Background(), bytes.NewReader(payload), int64(len(payload)), "image/png")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:8000/storage/products/") {
		t.Errorf("unexpected URL: %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("expected .png extension, got %q", url)
	}

	key := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, "products", key))
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("stored bytes differ from input")
	}
}

func TestFilesystemBackend_Store_TooLarge(t *testing.T) {
	backend, dir := newTestBackend(t, 8)

	// Declared size over the cap is rejected up front.
	_, err := backend.Store(context.Background(), bytes.NewReader(make([]byte, 16)), 16, "image/png")
	if !errors.Is(err, ErrBlobTooLarge) {
		t.Errorf("expected ErrBlobTooLarge, got %v", err)
	}

	// A reader longer than its declared size is caught after the copy.
	_, err = backend.Store(context.Background(), bytes.NewReader(make([]byte, 16)), 4, "image/png")
	if !errors.Is(err, ErrBlobTooLarge) {
		t.Errorf("expected ErrBlobTooLarge, got %v", err)
	}

	// No image and no temp file survives a rejected upload.
	entries, err := os.ReadDir(filepath.Join(dir, "products"))
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty image directory, found %d entries", len(entries))
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"image/gif":       ".gif",
		"image/webp":      ".webp",
		"image/x-unknown": ".bin",
	}
	for contentType, want := range cases {
		if got := extensionFor(contentType); got != want {
			t.Errorf("extensionFor(%q) = %q, want %q", contentType, got, want)
		}
	}
}
