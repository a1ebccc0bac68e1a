package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryTokenStore implements TokenStore using in-memory storage.
// Suitable for single-node deployments and tests where Redis is not
// available. NOT suitable for distributed deployments.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	tokens  map[string]*tokenEntry
	stopCh  chan struct{}
	stopped bool
}

// tokenEntry represents a single issued token.
type tokenEntry struct {
	userID    int64
	expiresAt time.Time
}

// isExpired checks if the token has expired.
func (e *tokenEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewMemoryTokenStore creates a new in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	s := &MemoryTokenStore{
		tokens: make(map[string]*tokenEntry),
		stopCh: make(chan struct{}),
	}

	// Start cleanup goroutine.
	go s.cleanupLoop()

	return s
}

// cleanupLoop periodically removes expired tokens.
func (s *MemoryTokenStore) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired tokens.
func (s *MemoryTokenStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, entry := range s.tokens {
		if entry.isExpired() {
			delete(s.tokens, token)
		}
	}
}

// Stop stops the cleanup goroutine.
func (s *MemoryTokenStore) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stopped {
		close(s.stopCh)
		s.stopped = true
	}
}

// Save stores a token for a user with the given TTL.
func (s *MemoryTokenStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = &tokenEntry{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Resolve returns the user ID a token belongs to.
func (s *MemoryTokenStore) Resolve(ctx context.Context, token string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.tokens[token]
	if !exists || entry.isExpired() {
		return 0, ErrTokenNotFound
	}
	return entry.userID, nil
}

// Delete revokes a token.
func (s *MemoryTokenStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
	return nil
}

// Ensure MemoryTokenStore implements TokenStore.
var _ TokenStore = (*MemoryTokenStore)(nil)
