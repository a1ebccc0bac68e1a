package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/nutrisnack/catalog/internal/domain"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	user := domain.NewUser("Ana", "ana@example.com", "hash")
	if err := repos.Users.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected generated ID")
	}

	byID, err := repos.Users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get by ID failed: %v", err)
	}
	if byID.Email != "ana@example.com" || byID.Name != "Ana" {
		t.Errorf("unexpected user: %+v", byID)
	}
	if byID.IsAdmin {
		t.Error("new users are not admins")
	}

	byEmail, err := repos.Users.GetByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected ID %d, got %d", user.ID, byEmail.ID)
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	seedUser(t, repos, "Ana", "ana@example.com")

	dup := domain.NewUser("Otra Ana", "ana@example.com", "hash2")
	err := repos.Users.Create(ctx, dup)
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.Users.GetByID(context.Background(), 999)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Update(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	user := seedUser(t, repos, "Ana", "ana@example.com")
	user.IsAdmin = true

	if err := repos.Users.Update(ctx, user); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := repos.Users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !got.IsAdmin {
		t.Error("admin flag not persisted")
	}
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	seedUser(t, repos, "Ana", "ana@example.com")

	exists, err := repos.Users.ExistsByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Error("expected user to exist")
	}

	exists, err = repos.Users.ExistsByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Error("expected user to not exist")
	}
}
