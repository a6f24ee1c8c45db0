// Package service implements the flood-response core: identity, the alert
// and resource registers, the aid-request workflow and the analysis views.
// Every operation takes the acting user explicitly; nil means anonymous.
package service

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"floodFriend/internal/auth"
	"floodFriend/internal/observability"
	"floodFriend/models"
	"floodFriend/repository"
)

// SessionIssuer is the identity/session collaborator used at register and login.
type SessionIssuer interface {
	Issue(ctx context.Context, u *models.User) (*auth.Session, error)
	Revoke(ctx context.Context, sessionID string) error
}

// Deps bundles the collaborators of a Service.
type Deps struct {
	Users     repository.UserRepositoryI
	Alerts    repository.AlertRepositoryI
	Resources repository.ResourceRepositoryI
	Requests  repository.RequestRepositoryI
	Sessions  SessionIssuer

	Clock   clockwork.Clock        // nil means real time
	Logger  *zap.Logger            // nil means no logging
	Metrics *observability.Metrics // optional
}

// Service exposes the core operations.
type Service struct {
	users     repository.UserRepositoryI
	alerts    repository.AlertRepositoryI
	resources repository.ResourceRepositoryI
	requests  repository.RequestRepositoryI
	sessions  SessionIssuer
	clock     clockwork.Clock
	log       *zap.Logger
	metrics   *observability.Metrics
}

// New builds a Service. Repositories and Sessions are required.
func New(d Deps) *Service {
	if d.Users == nil || d.Alerts == nil || d.Resources == nil || d.Requests == nil || d.Sessions == nil {
		panic("service: repositories and session issuer are required")
	}
	s := &Service{
		users:     d.Users,
		alerts:    d.Alerts,
		resources: d.Resources,
		requests:  d.Requests,
		sessions:  d.Sessions,
		clock:     d.Clock,
		log:       d.Logger,
		metrics:   d.Metrics,
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}
