package inventory

import (
	"github.com/google/wire"
	"google.golang.org/grpc"

	grpcDelivery "github.com/tair/stock-tracker/internal/inventory/delivery/grpc"
	"github.com/tair/stock-tracker/internal/inventory/domain"
	"github.com/tair/stock-tracker/internal/inventory/session"
	"github.com/tair/stock-tracker/internal/inventory/usecase/command"
	"github.com/tair/stock-tracker/internal/inventory/usecase/query"
)

// ProvideSessionStore exposes the registry as the session store
func ProvideSessionStore(registry *session.Registry) domain.SessionStore {
	return registry
}

// ProvideGRPCServer builds the instrumented gRPC server
func ProvideGRPCServer(srv *grpcDelivery.InventoryGRPCServer, metrics *grpcDelivery.Metrics) *grpc.Server {
	return grpcDelivery.NewServer(srv, metrics)
}

// Wire sets
var SessionSet = wire.NewSet(
	ProvideSessionStore,
)

var CommandHandlerSet = wire.NewSet(
	command.NewAddItemHandler,
	command.NewDeleteItemHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewListItemsHandler,
	query.NewGetItemHandler,
	query.NewGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	SessionSet,
	CommandHandlerSet,
	QueryHandlerSet,
)
