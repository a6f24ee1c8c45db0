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
)

// CreateRequest files a pending aid request. Only accounts with role user may
// file; admins and viewers are refused.
func (s *Service) CreateRequest(ctx context.Context, actor *models.User, in RequestInput) (*models.AidRequest, error) {
	if !auth.Can(actor, auth.ActionCreateRequest) {
		return nil, forbidden("only users can request resources")
	}
	in, err := in.validate()
	if err != nil {
		return nil, err
	}
	req, err := s.requests.Create(ctx, &models.AidRequest{
		RequesterID:  actor.ID,
		ResourceType: in.ResourceType,
		Description:  in.Description,
		Status:       models.RequestStatusPending,
		Timestamp:    s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	s.log.Info("request created", zap.Int64("request_id", req.ID), zap.Int64("requester_id", actor.ID))
	return req, nil
}

// UpdateRequestStatus moves a request into status. Any status in the
// vocabulary may follow any other, backward moves included. Moving into
// approved, delivered or rejected records actor as ApprovedBy, replacing
// whoever acted before; moving back to pending keeps the previous value.
// Concurrent updates race and the last commit wins.
func (s *Service) UpdateRequestStatus(ctx context.Context, actor *models.User, id int64, status string) (*models.AidRequest, error) {
	if !auth.Can(actor, auth.ActionUpdateRequestStatus) {
		return nil, forbidden("only admin can update request status")
	}
	existing, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if existing == nil {
		return nil, notFound("request", id)
	}
	next := models.RequestStatus(status)
	if !next.Valid() {
		v := &ValidationError{}
		v.add("status", "must be one of pending, approved, delivered, rejected")
		return nil, v
	}

	var approvedBy *int64
	if next.StampsActor() {
		approvedBy = &actor.ID
	}
	if err := s.requests.UpdateStatus(ctx, id, next, approvedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("request", id)
		}
		return nil, fmt.Errorf("update request: %w", err)
	}
	updated, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if updated == nil {
		return nil, notFound("request", id)
	}

	s.metrics.ObserveTransition(string(next))
	s.log.Info("request status changed",
		zap.Int64("request_id", id),
		zap.String("from", string(existing.Status)),
		zap.String("to", string(next)),
		zap.Int64("by", actor.ID))
	return updated, nil
}

// ListRequests returns the requests visible to actor, newest first: all of
// them for an admin, the actor's own otherwise. Anonymous callers are refused.
func (s *Service) ListRequests(ctx context.Context, actor *models.User) (iter.Seq2[models.AidRequest, error], error) {
	if !auth.Can(actor, auth.ActionListOwnRequests) {
		return nil, forbidden("login required to view requests")
	}
	if auth.Can(actor, auth.ActionListAllRequests) {
		return s.requests.All(ctx), nil
	}
	return s.requests.ByRequester(ctx, actor.ID), nil
}
