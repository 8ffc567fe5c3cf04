//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"

	grpcDelivery "github.com/tair/stock-tracker/internal/inventory/delivery/grpc"
	httpDelivery "github.com/tair/stock-tracker/internal/inventory/delivery/http"
	"github.com/tair/stock-tracker/internal/inventory/domain"
	"github.com/tair/stock-tracker/internal/inventory/session"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(registry *session.Registry, publisher domain.EventPublisher, reg prometheus.Registerer) (*httpDelivery.InventoryHandler, error) {
	wire.Build(
		AllHandlersSet,
		httpDelivery.NewInventoryHandler,
	)
	return nil, nil
}

// InitializeGRPCServer initializes the gRPC server with all dependencies
func InitializeGRPCServer(registry *session.Registry, publisher domain.EventPublisher, reg prometheus.Registerer) (*grpc.Server, error) {
	wire.Build(
		AllHandlersSet,
		grpcDelivery.NewInventoryGRPCServer,
		grpcDelivery.NewMetrics,
		ProvideGRPCServer,
	)
	return nil, nil
}
