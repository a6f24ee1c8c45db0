package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"floodFriend/internal/auth"
	"floodFriend/models"
	"floodFriend/repository"
)

// AddAlert publishes a hazard alert authored by actor, stamped with the current UTC time.
func (s *Service) AddAlert(ctx context.Context, actor *models.User, in AlertInput) (*models.Alert, error) {
	if !auth.Can(actor, auth.ActionCreateAlert) {
		return nil, forbidden("only admin can add alerts")
	}
	f, err := in.validate()
	if err != nil {
		return nil, err
	}
	a, err := s.alerts.Create(ctx, &models.Alert{
		Title:       f.title,
		Location:    f.location,
		Severity:    f.severity,
		Description: f.description,
		Latitude:    f.lat,
		Longitude:   f.lng,
		Timestamp:   s.clock.Now().UTC(),
		AuthorID:    actor.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	s.log.Info("alert added", zap.Int64("alert_id", a.ID), zap.String("severity", a.Severity), zap.Int64("by", actor.ID))
	return a, nil
}

// DeleteAlert removes an alert permanently. An unknown id is reported before
// the policy is consulted.
func (s *Service) DeleteAlert(ctx context.Context, actor *models.User, id int64) error {
	a, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get alert: %w", err)
	}
	if a == nil {
		return notFound("alert", id)
	}
	if !auth.Can(actor, auth.ActionDeleteAlert) {
		return forbidden("only admin can delete alerts")
	}
	if err := s.alerts.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("alert", id)
		}
		return fmt.Errorf("delete alert: %w", err)
	}
	s.log.Info("alert deleted", zap.Int64("alert_id", id), zap.Int64("by", actor.ID))
	return nil
}

// Alerts returns a lazy, restartable sequence over every alert.
func (s *Service) Alerts(ctx context.Context, order repository.Order) iter.Seq2[models.Alert, error] {
	return s.alerts.All(ctx, order)
}
