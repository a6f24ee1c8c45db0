package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"floodFriend/internal/auth"
	"floodFriend/internal/db"
	grpcserver "floodFriend/internal/grpc"
	"floodFriend/internal/httpserver"
	"floodFriend/internal/observability"
	"floodFriend/internal/service"
	"floodFriend/repository"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC API and the ops HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db.SetLogger(logger)
			d, err := db.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer func() {
				if err := d.Close(); err != nil {
					logger.Warn("close db", zap.Error(err))
				}
			}()

			users := repository.NewUserRepository(d)
			sessions := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL, repository.NewSessionRepository(d), users, nil)
			metrics := observability.NewMetrics()
			svc := service.New(service.Deps{
				Users:     users,
				Alerts:    repository.NewAlertRepository(d),
				Resources: repository.NewResourceRepository(d),
				Requests:  repository.NewRequestRepository(d),
				Sessions:  sessions,
				Logger:    logger,
				Metrics:   metrics,
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if _, err := svc.EnsureDefaultAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
				return err
			}
			if n, err := sessions.PurgeExpired(ctx); err != nil {
				logger.Warn("purge expired sessions", zap.Error(err))
			} else if n > 0 {
				logger.Info("purged expired sessions", zap.Int64("count", n))
			}

			shutdownGRPC, err := grpcserver.StartGRPC(cfg, &grpcserver.Server{
				Service:  svc,
				Throttle: auth.NewLoginThrottle(cfg.Auth.LoginRate, cfg.Auth.LoginBurst),
				Metrics:  metrics,
				Logger:   logger,
			}, sessions)
			if err != nil {
				return err
			}

			ops := httpserver.NewServer(cfg.HTTP.Address, db.Pinger{DB: d}, nil, logger)
			go func() {
				if err := ops.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server", zap.Error(err))
				}
			}()

			sigc := make(chan os.Signal, 1)
			signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigc
			logger.Info("shutting down", zap.String("signal", sig.String()))

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := ops.Shutdown(shutdownCtx); err != nil {
				logger.Warn("http shutdown", zap.Error(err))
			}
			if err := shutdownGRPC(shutdownCtx); err != nil {
				logger.Warn("grpc shutdown", zap.Error(err))
			}
			return nil
		},
	}
}
