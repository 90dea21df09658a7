package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/config"
	"github.com/wekeepgrowing/semo-payment-gateway/pkg/logger"
)

// ServiceName is the health-check service name reported next to the overall ("") status
const ServiceName = "payment.Gateway"

const defaultCheckInterval = 15 * time.Second

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	server   *grpc.Server
	health   *health.Server
	pinger   Pinger
	interval time.Duration
	listener net.Listener
}

// NewServer builds the gRPC server exposing the standard health service. The serving
// status follows database reachability when pinger is set.
func NewServer(cfg *config.Config, log *zap.Logger, pinger Pinger) *Server {
	s := &Server{
		config:   cfg,
		logger:   log,
		server:   grpc.NewServer(logger.ServerOptions(log)...),
		health:   health.NewServer(),
		pinger:   pinger,
		interval: defaultCheckInterval,
	}

	healthpb.RegisterHealthServer(s.server, s.health)
	if cfg.Service.Environment != "production" {
		reflection.Register(s.server)
	}

	s.setStatus(healthpb.HealthCheckResponse_SERVING)
	return s
}

func (s *Server) Start() error {
	addr := s.config.Server.GRPC.Address()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.logger.Info("Starting gRPC server", zap.String("address", addr))
	return s.Serve(listener)
}

// Serve accepts connections on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	s.listener = listener
	return s.server.Serve(listener)
}

// MonitorDatabase updates the health status until ctx is done
func (s *Server) MonitorDatabase(ctx context.Context) {
	if s.pinger == nil {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.CheckDatabase(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// CheckDatabase pings the database once and records the result
func (s *Server) CheckDatabase(ctx context.Context) {
	if s.pinger == nil {
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.pinger.Ping(pingCtx); err != nil {
		s.logger.Warn("Database unreachable, reporting NOT_SERVING", zap.Error(err))
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
}

func (s *Server) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		s.server.Stop()
	}
	return nil
}
