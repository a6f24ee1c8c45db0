package grpcserver

import (
	"context"

	"floodFriend/internal/auth"
	"floodFriend/internal/service"
)

// ListUsers returns every account. Admin only.
func (s *Server) ListUsers(ctx context.Context, _ *Empty) (*ListUsersResponse, error) {
	users, err := s.Service.ListUsers(ctx, auth.ActorFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &ListUsersResponse{Users: users}, nil
}

// PromoteUser gives another account the admin role.
func (s *Server) PromoteUser(ctx context.Context, req *PromoteUserRequest) (*UserResponse, error) {
	u, err := s.Service.PromoteToAdmin(ctx, auth.ActorFromContext(ctx), req.UserID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &UserResponse{User: u}, nil
}

func (s *Server) AddAlert(ctx context.Context, req *AddAlertRequest) (*AlertResponse, error) {
	a, err := s.Service.AddAlert(ctx, auth.ActorFromContext(ctx), service.AlertInput{
		Title:       req.Title,
		Location:    req.Location,
		Severity:    req.Severity,
		Description: req.Description,
		Latitude:    string(req.Latitude),
		Longitude:   string(req.Longitude),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &AlertResponse{Alert: a}, nil
}

func (s *Server) DeleteAlert(ctx context.Context, req *DeleteRequest) (*Empty, error) {
	if err := s.Service.DeleteAlert(ctx, auth.ActorFromContext(ctx), req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &Empty{}, nil
}

func (s *Server) AddResource(ctx context.Context, req *AddResourceRequest) (*ResourceResponse, error) {
	r, err := s.Service.AddResource(ctx, auth.ActorFromContext(ctx), service.ResourceInput{
		Name:        req.Name,
		Type:        req.Type,
		Location:    req.Location,
		Description: req.Description,
		Latitude:    string(req.Latitude),
		Longitude:   string(req.Longitude),
		Capacity:    string(req.Capacity),
		Contact:     req.Contact,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &ResourceResponse{Resource: r}, nil
}

func (s *Server) DeleteResource(ctx context.Context, req *DeleteRequest) (*Empty, error) {
	if err := s.Service.DeleteResource(ctx, auth.ActorFromContext(ctx), req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &Empty{}, nil
}

// UpdateRequestStatus moves an aid request to another status.
func (s *Server) UpdateRequestStatus(ctx context.Context, req *UpdateRequestStatusRequest) (*AidRequestResponse, error) {
	r, err := s.Service.UpdateRequestStatus(ctx, auth.ActorFromContext(ctx), req.ID, req.Status)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &AidRequestResponse{Request: r}, nil
}
