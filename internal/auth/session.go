package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"floodFriend/models"
	"floodFriend/repository"
)

// ErrInvalidSession is returned by Resolve for any token that does not map to
// a live session of an existing user.
var ErrInvalidSession = errors.New("invalid or expired session")

// Session is what a caller receives after register or login.
type Session struct {
	ID        string    `json:"-"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionManager issues, resolves and revokes login sessions. Sessions are
// rows in the store; the token is an HS256 JWT whose jti is the row id, so
// deleting the row ends the session even if the token has not expired.
type SessionManager struct {
	secret   []byte
	ttl      time.Duration
	sessions repository.SessionRepositoryI
	users    repository.UserRepositoryI
	clock    clockwork.Clock
}

// NewSessionManager builds a SessionManager. A nil clock means real time.
func NewSessionManager(secret string, ttl time.Duration, sessions repository.SessionRepositoryI, users repository.UserRepositoryI, clock clockwork.Clock) *SessionManager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, sessions: sessions, users: users, clock: clock}
}

// Issue creates a session for u and returns its signed token.
func (m *SessionManager) Issue(ctx context.Context, u *models.User) (*Session, error) {
	if u == nil || u.ID == 0 {
		return nil, errors.New("cannot issue session for unsaved user")
	}
	now := m.clock.Now().UTC()
	row := &models.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.sessions.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	tok, err := signToken(m.secret, row)
	if err != nil {
		_ = m.sessions.Delete(ctx, row.ID)
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &Session{ID: row.ID, Token: tok, ExpiresAt: row.ExpiresAt}, nil
}

// Resolve validates a token and loads the principal behind it.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*Principal, error) {
	sid, uid, err := parseToken(token, m.secret, m.clock.Now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	row, err := m.sessions.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if row == nil || row.UserID != uid || !m.clock.Now().Before(row.ExpiresAt) {
		return nil, ErrInvalidSession
	}
	u, err := m.users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidSession
	}
	return &Principal{SessionID: sid, User: u}, nil
}

// Revoke ends a session. Revoking an unknown session is a no-op.
func (m *SessionManager) Revoke(ctx context.Context, sessionID string) error {
	return m.sessions.Delete(ctx, sessionID)
}

// PurgeExpired deletes sessions whose expiry has passed.
func (m *SessionManager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.sessions.DeleteExpired(ctx, m.clock.Now())
}
