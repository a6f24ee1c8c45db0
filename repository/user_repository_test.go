package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"floodFriend/internal/db"
	"floodFriend/models"
)

// openTestDB opens a migrated in-memory database private to the test.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	d.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func mustCreateUser(t *testing.T, repo *UserRepository, username string, role models.Role) *models.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create %s: %v", username, err)
	}
	return u
}

func TestUserRepository_CRUDAndQueries(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	// Create with default role
	u, err := repo.Create(ctx, &models.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Username != "alice" || u.Role != models.RoleUser {
		t.Fatalf("unexpected created user: %+v", u)
	}

	// GetByID
	g, err := repo.GetByID(ctx, u.ID)
	if err != nil || g == nil || g.Username != "alice" || g.PasswordHash != "h" {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	// GetByUsername / GetByEmail
	g2, err := repo.GetByUsername(ctx, "alice")
	if err != nil || g2 == nil || g2.ID != u.ID {
		t.Fatalf("get by username: %v %+v", err, g2)
	}
	g3, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil || g3 == nil || g3.ID != u.ID {
		t.Fatalf("get by email: %v %+v", err, g3)
	}

	// Missing rows are nil, nil
	missing, err := repo.GetByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing user, got %+v err=%v", missing, err)
	}

	// List
	mustCreateUser(t, repo, "bob", models.RoleViewer)
	list, err := repo.List(ctx, 10, 0)
	if err != nil || len(list) != 2 || list[0].ID != u.ID {
		t.Fatalf("list: %v %+v", err, list)
	}
	page2, err := repo.List(ctx, 1, 1)
	if err != nil || len(page2) != 1 || page2[0].Username != "bob" {
		t.Fatalf("list offset: %v %+v", err, page2)
	}

	// UpdateRole
	if err := repo.UpdateRole(ctx, u.ID, models.RoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	g4, _ := repo.GetByID(ctx, u.ID)
	if g4.Role != models.RoleAdmin {
		t.Fatalf("role not updated: %+v", g4)
	}
	if err := repo.UpdateRole(ctx, 9999, models.RoleAdmin); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("update missing user: want sql.ErrNoRows, got %v", err)
	}
	if err := repo.UpdateRole(ctx, u.ID, models.Role("root")); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestUserRepository_UniqueUsernameAndEmail(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()
	mustCreateUser(t, repo, "alice", models.RoleUser)

	_, err := repo.Create(ctx, &models.User{Username: "alice", Email: "other@x.com", PasswordHash: "h"})
	if !errors.Is(err, ErrDuplicate) || !strings.Contains(err.Error(), "username") {
		t.Fatalf("duplicate username: got %v", err)
	}
	_, err = repo.Create(ctx, &models.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "h"})
	if !errors.Is(err, ErrDuplicate) || !strings.Contains(err.Error(), "email") {
		t.Fatalf("duplicate email: got %v", err)
	}
	list, _ := repo.List(ctx, 10, 0)
	if len(list) != 1 {
		t.Fatalf("failed inserts must not create rows, have %d", len(list))
	}
}

func TestUserRepository_RoleConstraint(t *testing.T) {
	d := openTestDB(t)
	if _, err := d.Exec(`INSERT INTO users (username, email, password_hash, role) VALUES ('x','x@x','h','root')`); err == nil {
		t.Fatalf("expected CHECK constraint to reject role 'root'")
	}
}
