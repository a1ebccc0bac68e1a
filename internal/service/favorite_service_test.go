package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/domain"
)

func newFavoriteFixture(t *testing.T) (*FavoriteService, *MockProductRepository, *MockFavoriteRepository) {
	t.Helper()
	products := NewMockProductRepository()
	favorites := NewMockFavoriteRepository(products)
	svc := NewFavoriteService(favorites, products, zerolog.Nop())
	return svc, products, favorites
}

func addProduct(t *testing.T, products *MockProductRepository, name string, active bool) *domain.Product {
	t.Helper()
	p := domain.NewProduct(name, "", 1.0)
	p.IsActive = active
	if err := products.Create(context.Background(), p); err != nil {
		t.Fatalf("failed to add product: %v", err)
	}
	return p
}

func TestFavoriteService_Toggle(t *testing.T) {
	svc, products, _ := newFavoriteFixture(t)
	mango := addProduct(t, products, "Mango", true)
	user := testCustomer()

	// First toggle adds.
	out, err := svc.Toggle(context.Background(), user, mango.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.ToggleAdded {
		t.Errorf("expected status %q, got %q", domain.ToggleAdded, out.Status)
	}
	if out.ProductID != mango.ID {
		t.Errorf("expected product_id %d, got %d", mango.ID, out.ProductID)
	}
	if out.Message == "" {
		t.Error("expected a message")
	}

	// Second toggle removes.
	out, err = svc.Toggle(context.Background(), user, mango.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.ToggleRemoved {
		t.Errorf("expected status %q, got %q", domain.ToggleRemoved, out.Status)
	}

	// Third toggle adds again: toggle is an involution.
	out, err = svc.Toggle(context.Background(), user, mango.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.ToggleAdded {
		t.Errorf("expected status %q, got %q", domain.ToggleAdded, out.Status)
	}
}

func TestFavoriteService_Toggle_Errors(t *testing.T) {
	svc, products, _ := newFavoriteFixture(t)
	mango := addProduct(t, products, "Mango", true)

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.Toggle(context.Background(), nil, mango.ID)
		if !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := svc.Toggle(context.Background(), testCustomer(), 999)
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})
}

func TestFavoriteService_List_FiltersInactive(t *testing.T) {
	svc, products, _ := newFavoriteFixture(t)
	user := testCustomer()

	mango := addProduct(t, products, "Mango", true)
	platano := addProduct(t, products, "Platano", true)

	if _, err := svc.Toggle(context.Background(), user, mango.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), user, platano.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	// Deactivate one favorited product. The favorite row stays but the
	// listing hides it.
	platano.IsActive = false

	list, err := svc.List(context.Background(), user)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != mango.ID {
		t.Fatalf("expected only the active favorite, got %d entries", len(list))
	}

	// Reactivating makes it visible again without re-favoriting.
	platano.IsActive = true

	list, err = svc.List(context.Background(), user)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 favorites after reactivation, got %d", len(list))
	}
}

func TestFavoriteService_List_Anonymous(t *testing.T) {
	svc, _, _ := newFavoriteFixture(t)

	_, err := svc.List(context.Background(), nil)
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestFavoriteService_TogglesAreIndependentPerUser(t *testing.T) {
	svc, products, favorites := newFavoriteFixture(t)
	mango := addProduct(t, products, "Mango", true)

	ana := &domain.User{ID: 10, Name: "Ana"}
	luis := &domain.User{ID: 11, Name: "Luis"}

	if _, err := svc.Toggle(context.Background(), ana, mango.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), luis, mango.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	// Removing Ana's favorite leaves Luis's intact.
	if _, err := svc.Toggle(context.Background(), ana, mango.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	count, err := favorites.CountByProduct(context.Background(), mango.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 remaining favorite, got %d", count)
	}
}
