package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryTokenStore_SaveResolve(t *testing.T) {
	store := NewMemoryTokenStore()
	defer store.Stop()

	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", 42, time.Hour); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	userID, err := store.Resolve(ctx, "tok-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user 42, got %d", userID)
	}
}

func TestMemoryTokenStore_UnknownToken(t *testing.T) {
	store := NewMemoryTokenStore()
	defer store.Stop()

	_, err := store.Resolve(context.Background(), "never-issued")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestMemoryTokenStore_Expiry(t *testing.T) {
	store := NewMemoryTokenStore()
	defer store.Stop()

	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", 42, 10*time.Millisecond); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	_, err := store.Resolve(ctx, "tok-1")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound after expiry, got %v", err)
	}
}

func TestMemoryTokenStore_Delete(t *testing.T) {
	store := NewMemoryTokenStore()
	defer store.Stop()

	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", 42, time.Hour); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.Resolve(ctx, "tok-1"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound after delete, got %v", err)
	}

	// Deleting an unknown token is not an error.
	if err := store.Delete(ctx, "never-issued"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMemoryTokenStore_Cleanup(t *testing.T) {
	store := NewMemoryTokenStore()
	defer store.Stop()

	ctx := context.Background()

	_ = store.Save(ctx, "expired", 1, -time.Second)
	_ = store.Save(ctx, "valid", 2, time.Hour)

	store.cleanup()

	store.mu.RLock()
	_, expiredExists := store.tokens["expired"]
	_, validExists := store.tokens["valid"]
	store.mu.RUnlock()

	if expiredExists {
		t.Error("expired token should have been cleaned up")
	}
	if !validExists {
		t.Error("valid token should have survived cleanup")
	}
}
