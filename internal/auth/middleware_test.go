package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nutrisnack/catalog/internal/domain"
)

// stubUserLoader serves users from a fixed map.
type stubUserLoader struct {
	users map[int64]*domain.User
}

func (s *stubUserLoader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func newMiddlewareFixture(t *testing.T) (http.Handler, *MemoryTokenStore, *stubUserLoader) {
	t.Helper()

	store := NewMemoryTokenStore()
	t.Cleanup(store.Stop)

	users := &stubUserLoader{users: map[int64]*domain.User{
		1: {ID: 1, Name: "Ana", Email: "ana@example.com"},
	}}

	// Echoes whether a caller was resolved.
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := UserFromContext(r.Context()); user != nil {
			w.Header().Set("X-Caller", user.Name)
		}
		w.WriteHeader(http.StatusOK)
	})

	return Middleware(store, users)(inner), store, users
}

func TestMiddleware_NoHeaderPassesThroughAnonymously(t *testing.T) {
	h, _, _ := newMiddlewareFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Caller") != "" {
		t.Error("anonymous request must not resolve a caller")
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	h, store, _ := newMiddlewareFixture(t)
	_ = store.Save(context.Background(), "tok-1", 1, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(AuthorizationHeader, "Bearer tok-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Caller") != "Ana" {
		t.Errorf("expected caller Ana, got %q", rec.Header().Get("X-Caller"))
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "unknown token", header: "Bearer never-issued"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "empty token", header: "Bearer "},
		{name: "scheme only", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newMiddlewareFixture(t)

			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			req.Header.Set(AuthorizationHeader, tt.header)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestMiddleware_TokenForDeletedUser(t *testing.T) {
	h, store, users := newMiddlewareFixture(t)
	_ = store.Save(context.Background(), "tok-1", 1, time.Hour)
	delete(users.users, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(AuthorizationHeader, "Bearer tok-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMiddleware_CaseInsensitiveScheme(t *testing.T) {
	h, store, _ := newMiddlewareFixture(t)
	_ = store.Save(context.Background(), "tok-1", 1, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(AuthorizationHeader, "bearer tok-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for lowercase scheme, got %d", rec.Code)
	}
}

func TestRequireAuthenticated(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := RequireAuthenticated(inner)

	t.Run("anonymous rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("caller allowed", func(t *testing.T) {
		user := &domain.User{ID: 1, Name: "Ana"}
		req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
		req = req.WithContext(WithUser(req.Context(), user))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

func TestRequireUser(t *testing.T) {
	if _, err := RequireUser(context.Background()); err == nil {
		t.Error("expected error for empty context")
	}

	user := &domain.User{ID: 1}
	ctx := WithUser(context.Background(), user)
	got, err := RequireUser(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("expected user 1, got %d", got.ID)
	}
}
