// Package grpc runs the optional gRPC side of chefmenu.
//
// Features:
//   - Panic-recovery interceptor (returns INTERNAL instead of killing the process)
//   - Request logging interceptor (method, duration, status code)
//   - Prometheus metrics interceptor (chefmenu_grpc_server_handled_total, ..._handling_seconds)
//   - Standard gRPC health-check service (grpc.health.v1.Health)
//   - Graceful shutdown via Stop(ctx)
//
// Usage in server bootstrap:
//
//	srv := grpc.New()
//	if err := srv.Start(config.GRPCPort()); err != nil { ... }
//	defer srv.Stop(shutdownCtx)
package grpc

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/metrics"
)

// CatalogService is the health-check name reported for the menu catalog.
const CatalogService = "chefmenu.Catalog"

// ─── Prometheus metrics ───────────────────────────────────────────────────────

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chefmenu",
		Subsystem: "grpc_server",
		Name:      "handled_total",
		Help:      "Total number of gRPC calls completed by method and code.",
	}, []string{"grpc_method", "grpc_code"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chefmenu",
		Subsystem: "grpc_server",
		Name:      "handling_seconds",
		Help:      "Histogram of gRPC response latency in seconds.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"grpc_method"})
)

func init() {
	metrics.MustRegister(requestsTotal, requestDuration)
}

// ─── Interceptors ─────────────────────────────────────────────────────────────

// recoveryInterceptor turns a handler panic into codes.Internal.
func recoveryInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("grpc: panic recovered",
				"method", info.FullMethod,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

// loggingInterceptor logs each unary RPC with its duration and result.
func loggingInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	logger.Info("grpc: request",
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"code", status.Code(err).String(),
	)
	return resp, err
}

// metricsInterceptor records the handled counter and latency per RPC.
func metricsInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	requestsTotal.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	requestDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
	return resp, err
}

// ─── Server ───────────────────────────────────────────────────────────────────

// Server wraps a grpc.Server with the health service registered.
type Server struct {
	srv    *grpc.Server
	health *health.Server
}

// New builds the server. The overall health status and CatalogService both
// start as SERVING.
func New() *Server {
	srv := grpc.NewServer(
		// Outermost first: metrics see the recovered status, logs too.
		grpc.ChainUnaryInterceptor(
			metricsInterceptor,
			loggingInterceptor,
			recoveryInterceptor,
		),
		grpc.MaxRecvMsgSize(4*1024*1024), // 4 MB
		grpc.MaxSendMsgSize(4*1024*1024), // 4 MB
	)

	hs := health.NewServer()
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	hs.SetServingStatus(CatalogService, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(srv, hs)

	// Enable server reflection so tools like grpcurl work without proto files.
	reflection.Register(srv)

	return &Server{srv: srv, health: hs}
}

// Start listens on port and serves in the background.
func (s *Server) Start(port string) error {
	addr := ":" + port
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc: listen on %s: %w", addr, err)
	}
	logger.Info("gRPC server starting", "addr", lis.Addr().String())
	go func() {
		if err := s.Serve(lis); err != nil {
			logger.Error("grpc: serve error", "error", err)
		}
	}()
	return nil
}

// Serve blocks serving lis until Stop.
func (s *Server) Serve(lis net.Listener) error {
	if err := s.srv.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

// SetServing flips the health status of service.
func (s *Server) SetServing(service string, serving bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, st)
}

// Stop marks every service NOT_SERVING and waits for in-flight RPCs. When
// ctx expires first the remaining connections are closed.
func (s *Server) Stop(ctx context.Context) {
	if s == nil {
		return
	}
	logger.Info("gRPC server shutting down")
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.srv.Stop()
		<-done
	}
}
