package grpcserver

import (
	"context"
	"time"

	"floodFriend/internal/auth"
	"floodFriend/internal/service"
	"floodFriend/models"
	"floodFriend/repository"
)

// ListAlerts pages through alerts, newest first. Open to anonymous callers.
func (s *Server) ListAlerts(ctx context.Context, req *PageRequest) (*ListAlertsResponse, error) {
	list, next, err := page(s.Service.Alerts(ctx, repository.NewestFirst), req,
		func(a models.Alert) (time.Time, int64) { return a.Timestamp, a.ID })
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &ListAlertsResponse{Alerts: list, NextPageToken: next}, nil
}

// ListResources pages through resources, newest first. Open to anonymous callers.
func (s *Server) ListResources(ctx context.Context, req *PageRequest) (*ListResourcesResponse, error) {
	list, next, err := page(s.Service.Resources(ctx, repository.NewestFirst), req,
		func(r models.Resource) (time.Time, int64) { return r.Timestamp, r.ID })
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &ListResourcesResponse{Resources: list, NextPageToken: next}, nil
}

// CreateRequest files an aid request for the calling user.
func (s *Server) CreateRequest(ctx context.Context, req *CreateRequestRequest) (*AidRequestResponse, error) {
	r, err := s.Service.CreateRequest(ctx, auth.ActorFromContext(ctx), service.RequestInput{
		ResourceType: req.ResourceType,
		Description:  req.Description,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &AidRequestResponse{Request: r}, nil
}

// ListRequests pages through the requests visible to the caller, newest first.
func (s *Server) ListRequests(ctx context.Context, req *PageRequest) (*ListRequestsResponse, error) {
	seq, err := s.Service.ListRequests(ctx, auth.ActorFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	list, next, err := page(seq, req,
		func(r models.AidRequest) (time.Time, int64) { return r.Timestamp, r.ID })
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &ListRequestsResponse{Requests: list, NextPageToken: next}, nil
}

func (s *Server) GetAnalysis(ctx context.Context, _ *Empty) (*service.Analysis, error) {
	a, err := s.Service.Analysis(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return a, nil
}

func (s *Server) GetMap(ctx context.Context, _ *Empty) (*service.MapView, error) {
	v, err := s.Service.MapView(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return v, nil
}
