package grpcserver

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"floodFriend/internal/auth"
	"floodFriend/internal/service"
)

// toStatus maps a core error onto a gRPC status. Errors that are already
// statuses pass through; unclassified errors are logged and reported as
// Internal without their cause.
func (s *Server) toStatus(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return validationStatus(ve)
	case errors.Is(err, service.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrForbidden):
		if auth.ActorFromContext(ctx) == nil {
			return status.Error(codes.Unauthenticated, "login required")
		}
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrAuth):
		return status.Error(codes.Unauthenticated, err.Error())
	}

	method, _ := grpc.Method(ctx)
	s.logger().Error("internal error", zap.String("method", method), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

// validationStatus attaches one BadRequest field violation per rejected field.
func validationStatus(ve *service.ValidationError) error {
	st := status.New(codes.InvalidArgument, ve.Error())
	br := &errdetails.BadRequest{}
	for _, f := range ve.Fields {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       f.Field,
			Description: f.Reason,
		})
	}
	if ds, err := st.WithDetails(br); err == nil {
		return ds.Err()
	}
	return st.Err()
}
