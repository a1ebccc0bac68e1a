package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nutrisnack/catalog/internal/domain"
)

func TestProductRepository_CreateAndGet(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	product := domain.NewProduct("Mango", "Mango deshidratado", 3.5)
	product.ImageURL = "http://localhost/storage/products/mango.jpg"

	if err := repos.Products.Create(ctx, product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.ID == 0 {
		t.Fatal("expected generated ID")
	}

	got, err := repos.Products.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if got.Name != "Mango" || got.Description != "Mango deshidratado" {
		t.Errorf("unexpected product: %+v", got)
	}
	if got.Price != 3.5 {
		t.Errorf("expected price 3.5, got %v", got.Price)
	}
	if got.ImageURL != product.ImageURL {
		t.Errorf("expected image URL %q, got %q", product.ImageURL, got.ImageURL)
	}
	if !got.IsActive {
		t.Error("new products default to active")
	}
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.Products.GetByID(context.Background(), 999)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_List_Ordering(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	names := []string{"Primero", "Segundo", "Tercero"}
	for i, name := range names {
		p := domain.NewProduct(name, "", 1.0)
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		p.UpdatedAt = p.CreatedAt
		if err := repos.Products.Create(ctx, p); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	list, err := repos.Products.List(ctx, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 products, got %d", len(list))
	}
	// Newest first.
	if list[0].Name != "Tercero" || list[2].Name != "Primero" {
		t.Errorf("wrong order: %s, %s, %s", list[0].Name, list[1].Name, list[2].Name)
	}
}

func TestProductRepository_List_ActiveOnly(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	active := seedProduct(t, repos, "Visible", 1.0)
	hidden := seedProduct(t, repos, "Oculto", 1.0)
	hidden.IsActive = false
	if err := repos.Products.Update(ctx, hidden); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	list, err := repos.Products.List(ctx, true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != active.ID {
		t.Errorf("expected only the active product, got %d entries", len(list))
	}

	all, err := repos.Products.List(ctx, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both products, got %d", len(all))
	}
}

func TestProductRepository_Update(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	product := seedProduct(t, repos, "Mango", 3.5)
	product.Name = "Mango Premium"
	product.Price = 4.5
	product.UpdatedAt = time.Now().UTC()

	if err := repos.Products.Update(ctx, product); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := repos.Products.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Mango Premium" || got.Price != 4.5 {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	repos := newTestRepos(t)

	ghost := domain.NewProduct("Fantasma", "", 1.0)
	ghost.ID = 999

	err := repos.Products.Update(context.Background(), ghost)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_Delete(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	product := seedProduct(t, repos, "Mango", 3.5)

	if err := repos.Products.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repos.Products.GetByID(ctx, product.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := repos.Products.Delete(ctx, product.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound on second delete, got %v", err)
	}
}
