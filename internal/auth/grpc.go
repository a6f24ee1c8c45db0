package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Resolver turns a bearer token into a principal.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Principal, error)
}

// NewUnaryAuthInterceptor returns a gRPC unary interceptor that resolves an
// optional Bearer token from incoming metadata and injects the Principal into
// the context. Calls without a token proceed anonymously and authorization is
// left to the policy; a token that is present but invalid fails the call.
// Methods listed in skip bypass token handling entirely (e.g., health checks).
func NewUnaryAuthInterceptor(r Resolver, skip ...string) grpc.UnaryServerInterceptor {
	bypass := make(map[string]struct{}, len(skip))
	for _, m := range skip {
		bypass[strings.TrimSpace(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := bypass[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		tok, err := BearerFromMD(ctx)
		if errors.Is(err, ErrNoToken) {
			return handler(ctx, req)
		}
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "auth error: %v", err)
		}
		p, err := r.Resolve(ctx, tok)
		if err != nil {
			if errors.Is(err, ErrInvalidSession) {
				return nil, status.Error(codes.Unauthenticated, ErrInvalidSession.Error())
			}
			return nil, status.Errorf(codes.Internal, "resolve session: %v", err)
		}
		return handler(WithPrincipal(ctx, p), req)
	}
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok || p.User == nil {
		return nil, status.Error(codes.Unauthenticated, "login required")
	}
	return p, nil
}
