package testutil

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/metadata"

	"floodFriend/internal/db"
	"floodFriend/models"
	"floodFriend/repository"
)

// OpenInMemoryDB opens a migrated in-memory SQLite database private to t.
// The database is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	// shared cache keeps one database across pooled connections; the name
	// is unique per test so parallel tests do not see each other's rows
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// one connection avoids table-level lock errors under shared cache
	d.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// CreateUser inserts a user with the given role and password "pw-<username>".
// It hashes with the minimum bcrypt cost to keep tests fast.
func CreateUser(t *testing.T, users repository.UserRepositoryI, username string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password(username)), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	u, err := users.Create(ctx, &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// Password is the password CreateUser assigns to username.
func Password(username string) string {
	return "pw-" + username
}

// CtxWithBearer returns a context containing gRPC metadata Authorization header with the given token.
func CtxWithBearer(ctx context.Context, token string) context.Context {
	md := metadata.Pairs("authorization", "Bearer "+token)
	return metadata.NewIncomingContext(ctx, md)
}
