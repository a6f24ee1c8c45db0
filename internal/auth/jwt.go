package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"

	"floodFriend/models"
)

// ErrNoToken is returned by ParseFromMD when the call carries no authorization header.
var ErrNoToken = errors.New("missing authorization")

// Principal represents the authenticated caller: the live session and the
// user it belongs to, re-read from the store on every call.
type Principal struct {
	SessionID string
	User      *models.User
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// ActorFromContext returns the calling user, or nil for an anonymous caller.
func ActorFromContext(ctx context.Context) *models.User {
	if p, ok := FromContext(ctx); ok {
		return p.User
	}
	return nil
}

// BearerFromMD extracts the Bearer token from gRPC metadata.
// Returns ErrNoToken when no authorization header is present.
func BearerFromMD(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", ErrNoToken
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return "", ErrNoToken
	}
	parts := strings.SplitN(vals[0], " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", errors.New("empty bearer token")
	}
	return tok, nil
}

// tokenClaims carries the session id (jti) and the user id (sub).
type tokenClaims struct {
	jwt.RegisteredClaims
}

// signToken issues an HS256 token for the session.
func signToken(secret []byte, s *models.Session) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	c := tokenClaims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        s.ID,
		Subject:   strconv.FormatInt(s.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
}

// parseToken validates a token and returns its session id and user id.
func parseToken(tokenStr string, secret []byte, now func() time.Time) (string, int64, error) {
	if len(secret) == 0 {
		return "", 0, errors.New("jwt secret is empty")
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return "", 0, err
	}
	c, _ := tok.Claims.(*tokenClaims)
	if c == nil || c.ID == "" || c.Subject == "" {
		return "", 0, errors.New("invalid claims")
	}
	uid, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return "", 0, errors.New("invalid subject")
	}
	return c.ID, uid, nil
}
