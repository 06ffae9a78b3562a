// Package grpc hosts the gRPC health endpoint of the encoder result consumer.
package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/narwhalmedia/catalog/internal/infrastructure/grpc/interceptors"
)

// ConsumerService is the health service name reported for the consumer
const ConsumerService = "catalog.EncodingResultConsumer"

const checkInterval = 10 * time.Second

// Check probes one dependency
type Check func(ctx context.Context) error

// HealthServer serves grpc.health.v1 and keeps the consumer's status in
// line with its dependency checks.
type HealthServer struct {
	addr   string
	server *grpc.Server
	health *health.Server
	checks map[string]Check
	logger *zap.Logger
}

// NewHealthServer registers the health service on a new gRPC server
func NewHealthServer(port int, checks map[string]Check, logger *zap.Logger) *HealthServer {
	logger = logger.Named("grpc")
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.UnaryLoggingInterceptor(logger),
			interceptors.UnaryRecoveryInterceptor(logger),
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamLoggingInterceptor(logger),
			interceptors.StreamRecoveryInterceptor(logger),
		),
	)

	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, hs)

	return &HealthServer{
		addr:   fmt.Sprintf(":%d", port),
		server: server,
		health: hs,
		checks: checks,
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then stops gracefully
func (s *HealthServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.Refresh(ctx)
	go s.poll(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting gRPC health server", zap.String("addr", s.addr))
		errCh <- s.server.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.server.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *HealthServer) poll(ctx context.Context) {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh runs every check once and publishes the resulting statuses. The
// consumer and overall status are SERVING only when every check passes.
func (s *HealthServer) Refresh(ctx context.Context) {
	overall := grpc_health_v1.HealthCheckResponse_SERVING
	for name, check := range s.checks {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := check(checkCtx)
		cancel()

		st := grpc_health_v1.HealthCheckResponse_SERVING
		if err != nil {
			st = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			overall = st
			s.logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
		}
		s.health.SetServingStatus(name, st)
	}
	s.health.SetServingStatus(ConsumerService, overall)
	s.health.SetServingStatus("", overall)
}
