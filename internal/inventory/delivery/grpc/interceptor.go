package grpc

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/tair/stock-tracker/pkg/logger"
)

// Metrics collects Prometheus metrics for gRPC calls
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
}

// NewMetrics creates the gRPC metrics and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_service_grpc_requests_total",
				Help: "Total number of gRPC requests",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventory_service_grpc_request_duration_seconds",
				Help:    "Duration of gRPC requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_service_grpc_errors_total",
				Help: "Total number of gRPC errors",
			},
			[]string{"method", "error_code"},
		),
	}

	reg.MustRegister(m.requestsTotal, m.requestDuration, m.errorsTotal)
	return m
}

// UnaryInterceptor records request count, latency and error codes
func (m *Metrics) UnaryInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	statusCode := status.Code(err).String()
	if err != nil {
		m.errorsTotal.WithLabelValues(info.FullMethod, statusCode).Inc()
	}

	m.requestsTotal.WithLabelValues(info.FullMethod, statusCode).Inc()
	m.requestDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())

	return resp, err
}

// LoggingInterceptor logs gRPC requests with structured logging
func LoggingInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	duration := time.Since(start)
	if err != nil {
		logger.Warn(ctx).
			Str("method", info.FullMethod).
			Str("protocol", "grpc").
			Dur("duration", duration).
			Int64("duration_ms", duration.Milliseconds()).
			Str("grpc_status", status.Code(err).String()).
			Err(err).
			Msg("gRPC request failed")
		return resp, err
	}

	logger.Info(ctx).
		Str("method", info.FullMethod).
		Str("protocol", "grpc").
		Dur("duration", duration).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("gRPC request completed")

	return resp, err
}

// NewServer builds an instrumented grpc.Server and registers the inventory
// service on it
func NewServer(srv InventoryServiceServer, metrics *Metrics, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor,
			metrics.UnaryInterceptor,
		),
	}, opts...)

	server := grpc.NewServer(opts...)
	RegisterInventoryServiceServer(server, srv)
	return server
}
