package grpcserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"floodFriend/internal/auth"
	"floodFriend/internal/service"
	"floodFriend/models"
)

// Register creates a user account and logs it in.
func (s *Server) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	u, sess, err := s.Service.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return authResponse(u, sess), nil
}

// Login exchanges a username and password for a session token.
func (s *Server) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if !s.Throttle.Allow(req.Username) {
		s.Metrics.ObserveLogin("throttled")
		return nil, status.Error(codes.ResourceExhausted, "too many login attempts; try again later")
	}
	u, sess, err := s.Service.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return authResponse(u, sess), nil
}

// Logout ends the session the call was made with.
func (s *Server) Logout(ctx context.Context, _ *Empty) (*Empty, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Service.Logout(ctx, p.SessionID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &Empty{}, nil
}

// Me returns the calling user.
func (s *Server) Me(ctx context.Context, _ *Empty) (*UserResponse, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	return &UserResponse{User: p.User}, nil
}

func authResponse(u *models.User, sess *auth.Session) *AuthResponse {
	return &AuthResponse{User: u, Token: sess.Token, ExpiresAt: sess.ExpiresAt}
}
