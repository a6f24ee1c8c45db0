package repository

import (
	"context"
	"iter"
	"time"

	"floodFriend/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
}

// AlertRepositoryI defines operations on Alert entities.
type AlertRepositoryI interface {
	Create(ctx context.Context, a *models.Alert) (*models.Alert, error)
	GetByID(ctx context.Context, id int64) (*models.Alert, error)
	Delete(ctx context.Context, id int64) error
	All(ctx context.Context, order Order) iter.Seq2[models.Alert, error]
	Recent(ctx context.Context, limit int) ([]models.Alert, error)
	CountBySeverity(ctx context.Context) ([]GroupCount, error)
}

// ResourceRepositoryI defines operations on Resource entities.
type ResourceRepositoryI interface {
	Create(ctx context.Context, r *models.Resource) (*models.Resource, error)
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	Delete(ctx context.Context, id int64) error
	All(ctx context.Context, order Order) iter.Seq2[models.Resource, error]
	CountByType(ctx context.Context) ([]GroupCount, error)
}

// RequestRepositoryI defines operations on AidRequest entities.
type RequestRepositoryI interface {
	Create(ctx context.Context, r *models.AidRequest) (*models.AidRequest, error)
	GetByID(ctx context.Context, id int64) (*models.AidRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.RequestStatus, approvedBy *int64) error
	All(ctx context.Context) iter.Seq2[models.AidRequest, error]
	ByRequester(ctx context.Context, userID int64) iter.Seq2[models.AidRequest, error]
}

// SessionRepositoryI defines operations on login sessions.
type SessionRepositoryI interface {
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Order selects how list queries are sorted.
type Order int

const (
	// Unordered leaves row order to the store (map and analysis views).
	Unordered Order = iota
	// NewestFirst sorts by timestamp descending, then id descending.
	NewestFirst
)

// GroupCount is one row of a GROUP BY projection.
type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}
