package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/domain"
	"github.com/nutrisnack/catalog/internal/repository"
)

// newTestDB opens a migrated in-memory database.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := DefaultConfig(":memory:")
	db, err := NewDB(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// newTestRepos opens a migrated in-memory database with repositories.
func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	return NewRepositories(newTestDB(t))
}

// seedUser inserts a user and returns it.
func seedUser(t *testing.T, repos *repository.Repositories, name, email string) *domain.User {
	t.Helper()
	user := domain.NewUser(name, email, "hash")
	if err := repos.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// seedProduct inserts a product and returns it.
func seedProduct(t *testing.T, repos *repository.Repositories, name string, price float64) *domain.Product {
	t.Helper()
	product := domain.NewProduct(name, "", price)
	if err := repos.Products.Create(context.Background(), product); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// Running migrations again must be a no-op.
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

// TestDB_ForeignKeysSurviveConnectionRecycle forces the pool to replace
// its connection and checks that cascade rules still hold. The pragmas
// travel in the DSN, so a replacement connection must come up with
// foreign keys enforced, not just the first one. A file-backed database
// is required here: an in-memory one would vanish with the connection.
func TestDB_ForeignKeysSurviveConnectionRecycle(t *testing.T) {
	ctx := context.Background()

	cfg := DefaultConfig(filepath.Join(t.TempDir(), "catalog.db"))
	cfg.ConnMaxLifetime = 50 * time.Millisecond

	db, err := NewDB(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	repos := NewRepositories(db)

	user := seedUser(t, repos, "Ana", "ana@example.com")
	product := seedProduct(t, repos, "Mango", 3.5)

	if _, err := repos.Favorites.Toggle(ctx, user.ID, product.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := repos.Comments.Create(ctx, domain.NewComment(user, product.ID, "Delicioso")); err != nil {
		t.Fatalf("comment create failed: %v", err)
	}

	// Outlive the connection lifetime, then force a round trip so the
	// pool discards the expired connection and opens a fresh one.
	time.Sleep(3 * cfg.ConnMaxLifetime)
	if err := db.Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	var fkEnabled int
	if err := db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fkEnabled); err != nil {
		t.Fatalf("pragma query failed: %v", err)
	}
	if fkEnabled != 1 {
		t.Fatalf("foreign_keys = %d on recycled connection, want 1", fkEnabled)
	}

	if err := repos.Products.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err := repos.Favorites.Exists(ctx, user.ID, product.ID)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Error("favorite row survived product delete on recycled connection")
	}

	count, err := repos.Comments.CountByProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("comment rows survived product delete, %d remain", count)
	}
}

func TestDB_Ping(t *testing.T) {
	db := newTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		t.Errorf("ping failed: %v", err)
	}
}
