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

// AddResource publishes an aid resource authored by actor.
func (s *Service) AddResource(ctx context.Context, actor *models.User, in ResourceInput) (*models.Resource, error) {
	if !auth.Can(actor, auth.ActionCreateResource) {
		return nil, forbidden("only admin can add resources")
	}
	f, err := in.validate()
	if err != nil {
		return nil, err
	}
	r, err := s.resources.Create(ctx, &models.Resource{
		Name:        f.name,
		Type:        f.kind,
		Location:    f.location,
		Description: f.description,
		Latitude:    f.lat,
		Longitude:   f.lng,
		Capacity:    f.capacity,
		Contact:     f.contact,
		AuthorID:    actor.ID,
		Timestamp:   s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	s.log.Info("resource added", zap.Int64("resource_id", r.ID), zap.String("type", r.Type), zap.Int64("by", actor.ID))
	return r, nil
}

// DeleteResource removes a resource permanently.
func (s *Service) DeleteResource(ctx context.Context, actor *models.User, id int64) error {
	r, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get resource: %w", err)
	}
	if r == nil {
		return notFound("resource", id)
	}
	if !auth.Can(actor, auth.ActionDeleteResource) {
		return forbidden("only admin can delete resources")
	}
	if err := s.resources.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("resource", id)
		}
		return fmt.Errorf("delete resource: %w", err)
	}
	s.log.Info("resource deleted", zap.Int64("resource_id", id), zap.Int64("by", actor.ID))
	return nil
}

// Resources returns a lazy, restartable sequence over every resource.
func (s *Service) Resources(ctx context.Context, order repository.Order) iter.Seq2[models.Resource, error] {
	return s.resources.All(ctx, order)
}
