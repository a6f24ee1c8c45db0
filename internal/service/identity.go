package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"floodFriend/internal/auth"
	"floodFriend/models"
	"floodFriend/repository"
)

// DefaultAdminUsername is the account seeded by EnsureDefaultAdmin.
const DefaultAdminUsername = "admin"

// Register creates an account with role user and opens a session for it.
// Fails with ErrConflict if the username or email is already taken, in which
// case no row is written.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, *auth.Session, error) {
	in, err := in.validate()
	if err != nil {
		return nil, nil, err
	}
	if err := s.ensureUnique(ctx, in.Username, in.Email); err != nil {
		return nil, nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}
	u, err := s.users.Create(ctx, &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, conflict(strings.TrimPrefix(err.Error(), repository.ErrDuplicate.Error()+": ") + " already exists")
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}
	sess, err := s.sessions.Issue(ctx, u)
	if err != nil {
		return nil, nil, fmt.Errorf("issue session: %w", err)
	}
	s.log.Info("user registered", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	return u, sess, nil
}

func (s *Service) ensureUnique(ctx context.Context, username, email string) error {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if existing != nil {
		return conflict("username already exists")
	}
	existing, err = s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if existing != nil {
		return conflict("email already exists")
	}
	return nil
}

// Authenticate checks a username/password pair and opens a session.
// An unknown username and a wrong password both yield ErrAuth.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, *auth.Session, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	hash := ""
	if u != nil {
		hash = u.PasswordHash
	}
	if !auth.CheckPassword(password, hash) {
		s.metrics.ObserveLogin("failure")
		return nil, nil, ErrAuth
	}
	sess, err := s.sessions.Issue(ctx, u)
	if err != nil {
		return nil, nil, fmt.Errorf("issue session: %w", err)
	}
	s.metrics.ObserveLogin("success")
	s.log.Info("user logged in", zap.Int64("user_id", u.ID))
	return u, sess, nil
}

// Logout tears the session down.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}

// PromoteToAdmin gives the target user the admin role. Promotion is one-way
// and a no-op when the target already is an admin.
func (s *Service) PromoteToAdmin(ctx context.Context, actor *models.User, targetID int64) (*models.User, error) {
	if !auth.Can(actor, auth.ActionPromoteUser) {
		return nil, forbidden("only admin can promote users")
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if target == nil {
		return nil, notFound("user", targetID)
	}
	if target.Role == models.RoleAdmin {
		return target, nil
	}
	if err := s.users.UpdateRole(ctx, target.ID, models.RoleAdmin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("user", targetID)
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	target.Role = models.RoleAdmin
	s.log.Info("user promoted to admin", zap.Int64("user_id", target.ID), zap.Int64("by", actor.ID))
	return target, nil
}

// ListUsers returns every account ordered by id. Admin only.
func (s *Service) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if !auth.Can(actor, auth.ActionListUsers) {
		return nil, forbidden("only admin can access user management")
	}
	var out []models.User
	const page = 100
	for offset := 0; ; offset += page {
		batch, err := s.users.List(ctx, page, offset)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		out = append(out, batch...)
		if len(batch) < page {
			return out, nil
		}
	}
}

// EnsureDefaultAdmin seeds the "admin" account when it does not exist.
// It reports whether an account was created.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, email, password string) (bool, error) {
	existing, err := s.users.GetByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		return false, fmt.Errorf("get admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	if password == "" {
		return false, errors.New("admin password is empty")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	u, err := s.users.Create(ctx, &models.User{
		Username:     DefaultAdminUsername,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	s.log.Warn("default admin account created; change its password", zap.Int64("user_id", u.ID))
	return true, nil
}
