package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/reflection"

	_ "github.com/tair/stock-tracker/docs"
	"github.com/tair/stock-tracker/internal/config"
	"github.com/tair/stock-tracker/internal/inventory"
	httpDelivery "github.com/tair/stock-tracker/internal/inventory/delivery/http"
	"github.com/tair/stock-tracker/internal/inventory/domain"
	"github.com/tair/stock-tracker/internal/inventory/session"
	"github.com/tair/stock-tracker/kafka"
	"github.com/tair/stock-tracker/pkg/logger"
	"github.com/tair/stock-tracker/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("inventory-service", true)
		logger.Logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting inventory service")

	// Initialize tracing
	var tp trace.TracerProvider
	if cfg.TracingEnabled {
		tp, err = tracing.InitTracer(cfg.ServiceName, cfg.Version, cfg.JaegerEndpoint)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Tracing disabled")
			tp = nil
		}
	}

	// Event publisher
	var publisher domain.EventPublisher = kafka.NopPublisher{}
	var kafkaPublisher *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, item events will not be published")
		} else {
			publisher = kafkaPublisher
		}
	}

	// Optional audit consumer
	var consumer *kafka.Consumer
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if cfg.AuditConsumerEnabled {
		consumer, err = kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{cfg.KafkaTopic})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create audit consumer")
		}
		consumer.RegisterHandler(kafka.EventTypeItemAdded, kafka.LogItemEvent)
		consumer.RegisterHandler(kafka.EventTypeItemDeleted, kafka.LogItemEvent)
		consumer.Start(consumerCtx)
	}

	registry := session.NewRegistry(session.Config{
		TTL:             cfg.SessionTTL,
		CleanupInterval: cfg.SessionCleanupInterval,
		Seed:            cfg.SeedInventory,
	})

	// Initialize delivery with Wire DI
	handler, err := inventory.InitializeHTTPHandler(registry, publisher, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize HTTP handler")
	}

	grpcServer, err := inventory.InitializeGRPCServer(registry, publisher, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize gRPC server")
	}

	// Register reflection service (for grpcurl and grpc tools)
	reflection.Register(grpcServer)

	httpServer := newHTTPServer(handler, cfg)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", cfg.GRPCPort).Msg("Failed to listen")
	}

	go func() {
		logger.Logger.Info().Str("port", cfg.GRPCPort).Msg("gRPC server started")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Logger.Error().Err(err).Msg("gRPC server error")
		}
	}()

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()

	if consumer != nil {
		stopConsumer()
		if err := consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close audit consumer")
		}
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka publisher")
		}
	}

	registry.Shutdown()

	if tp != nil {
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}

	logger.Logger.Info().Msg("Server stopped")
}

func newHTTPServer(handler *httpDelivery.InventoryHandler, cfg *config.Config) *http.Server {
	router := mux.NewRouter()

	middlewareConfig := httpDelivery.DefaultMiddlewareConfig(cfg.RequestTimeout)
	middlewareConfig.EnableTracing = cfg.TracingEnabled
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpDelivery.SetupCORS(middlewareConfig)(router),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
