package grpcserver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"floodFriend/internal/auth"
	"floodFriend/internal/observability"
)

// requestIDHeader carries the per-call id back to the client.
const requestIDHeader = "x-request-id"

// callLog collects what inner interceptors learn about a call.
type callLog struct {
	userID int64
}

type callLogKey struct{}

// accessLogInterceptor runs outermost: it times every call, including those
// the auth interceptor rejects, and writes one log line and one metric sample.
func accessLogInterceptor(log *zap.Logger, m *observability.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		id := uuid.NewString()
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, id))

		cl := &callLog{}
		resp, err := handler(context.WithValue(ctx, callLogKey{}, cl), req)

		elapsed := time.Since(start)
		code := status.Code(err)
		m.ObserveRPC(info.FullMethod, code.String(), elapsed.Seconds())

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", elapsed),
			zap.String("request_id", id),
		}
		if cl.userID != 0 {
			fields = append(fields, zap.Int64("user_id", cl.userID))
		}
		switch code {
		case codes.Internal, codes.Unknown, codes.DeadlineExceeded:
			log.Warn("rpc", fields...)
		default:
			log.Info("rpc", fields...)
		}
		return resp, err
	}
}

// actorTagInterceptor runs after auth and records the resolved user for the access log.
func actorTagInterceptor(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if cl, ok := ctx.Value(callLogKey{}).(*callLog); ok {
		if u := auth.ActorFromContext(ctx); u != nil {
			cl.userID = u.ID
		}
	}
	return handler(ctx, req)
}
