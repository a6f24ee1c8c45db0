package grpcserver

import (
	"context"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"floodFriend/internal/auth"
	"floodFriend/internal/config"
	"floodFriend/internal/observability"
	"floodFriend/internal/service"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// Server bundles dependencies and implements FloodFriendServer.
type Server struct {
	Service  *service.Service
	Throttle *auth.LoginThrottle    // nil disables login throttling
	Metrics  *observability.Metrics // optional
	Logger   *zap.Logger            // optional
}

var _ FloodFriendServer = (*Server)(nil)

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// NewGRPCServer builds a gRPC server with the FloodFriend and health services
// registered. Calls pass through the access log, then the auth interceptor.
func NewGRPCServer(s *Server, resolver auth.Resolver) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		accessLogInterceptor(s.logger(), s.Metrics),
		auth.NewUnaryAuthInterceptor(resolver, healthCheckMethod),
		actorTagInterceptor,
	))
	RegisterFloodFriendServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
// Plaintext only; terminate TLS in front of it.
func StartGRPC(cfg *config.Config, s *Server, resolver auth.Resolver) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv, hs := NewGRPCServer(s, resolver)
	go func() {
		if err := srv.Serve(lis); err != nil {
			s.logger().Error("grpc serve", zap.Error(err))
		}
	}()
	s.logger().Info("grpc server listening", zap.String("addr", lis.Addr().String()))

	return func(ctx context.Context) error {
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
