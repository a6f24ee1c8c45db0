package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/grpc/metadata"

	"floodFriend/internal/testutil"
	"floodFriend/models"
)

var issuedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return issuedAt.Add(time.Minute) }

func testSession() *models.Session {
	return &models.Session{ID: "sess-1", UserID: 42, CreatedAt: issuedAt, ExpiresAt: issuedAt.Add(time.Hour)}
}

func TestBearerFromMD_Valid(t *testing.T) {
	ctx := testutil.CtxWithBearer(context.Background(), "abc.def")
	tok, err := BearerFromMD(ctx)
	if err != nil {
		t.Fatalf("BearerFromMD: %v", err)
	}
	if tok != "abc.def" {
		t.Fatalf("token mismatch: %q", tok)
	}
}

func TestBearerFromMD_MissingHeader(t *testing.T) {
	if _, err := BearerFromMD(context.Background()); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-other", "1"))
	if _, err := BearerFromMD(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestBearerFromMD_InvalidScheme(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Token abc"))
	_, err := BearerFromMD(ctx)
	if err == nil || errors.Is(err, ErrNoToken) {
		t.Fatalf("expected invalid header error, got %v", err)
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	tok, err := signToken([]byte(testSecret), testSession())
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	sid, uid, err := parseToken(tok, []byte(testSecret), fixedNow)
	if err != nil {
		t.Fatalf("parseToken: %v", err)
	}
	if sid != "sess-1" || uid != 42 {
		t.Fatalf("claims mismatch: sid=%q uid=%d", sid, uid)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	tok, err := signToken([]byte(testSecret), testSession())
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	if _, _, err := parseToken(tok, []byte("wrong"), fixedNow); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
	late := func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, _, err := parseToken(tok, []byte(testSecret), late); err == nil {
		t.Fatalf("expected error for expired token")
	}
	if _, _, err := parseToken(tok, nil, fixedNow); err == nil {
		t.Fatalf("expected error for empty secret")
	}

	noID := testSession()
	noID.ID = ""
	tok, err = signToken([]byte(testSecret), noID)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	if _, _, err := parseToken(tok, []byte(testSecret), fixedNow); err == nil {
		t.Fatalf("expected invalid claims error")
	}
}
