package grpchealth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"foodshare/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

const (
	KeepaliveTime    = 5 * time.Minute
	KeepaliveTimeout = 3 * time.Second
	KeepaliveMinTime = 30 * time.Second
)

// Server отдает стандартный grpc.health.v1 для оркестратора.
// Статус "" относится ко всему процессу, service к конкретному компоненту.
type Server struct {
	log     logger.Logger
	addr    string
	service string
	grpc    *grpc.Server
	health  *health.Server
}

func New(log logger.Logger, port, service string) *Server {
	grpcServer := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    KeepaliveTime,
			Timeout: KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime: KeepaliveMinTime,
		}),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{
		log: log.With(
			logger.NewField("component", "grpc-health"),
			logger.NewField("port", port),
		),
		addr:    fmt.Sprintf(":%s", port),
		service: service,
		grpc:    grpcServer,
		health:  healthServer,
	}
}

// Serve блокирует до Stop. Отмена ctx не останавливает сервер.
func (s *Server) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	s.log.Info("gRPC health server starting")
	if err := s.grpc.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC health: %w", err)
	}
	return nil
}

func (s *Server) SetServing() {
	s.health.SetServingStatus(s.service, healthpb.HealthCheckResponse_SERVING)
}

// Shutdown переводит все сервисы в NOT_SERVING и ждет активные вызовы.
func (s *Server) Shutdown(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("gRPC health server stopped")
	case <-ctx.Done():
		s.log.Warn("gRPC health graceful stop timeout, forcing close")
		s.grpc.Stop()
	}
}
