package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tair/stock-tracker/internal/inventory/domain"
	"github.com/tair/stock-tracker/internal/inventory/usecase/command"
	"github.com/tair/stock-tracker/internal/inventory/usecase/query"
	"github.com/tair/stock-tracker/pkg/logger"
)

const (
	// SessionMetadataKey selects the inventory a call operates on
	SessionMetadataKey = "x-session-id"

	// ValidationKindTrailer carries the validation kind of an InvalidArgument error
	ValidationKindTrailer = "x-validation-kind"
)

// InventoryGRPCServer implements the InventoryService gRPC server
type InventoryGRPCServer struct {
	// Command handlers
	addHandler    *command.AddItemHandler
	deleteHandler *command.DeleteItemHandler

	// Query handlers
	listHandler  *query.ListItemsHandler
	statsHandler *query.GetStatsHandler
}

// Verify interface compliance
var _ InventoryServiceServer = (*InventoryGRPCServer)(nil)

// NewInventoryGRPCServer creates a new gRPC server
func NewInventoryGRPCServer(
	addHandler *command.AddItemHandler,
	deleteHandler *command.DeleteItemHandler,
	listHandler *query.ListItemsHandler,
	statsHandler *query.GetStatsHandler,
) *InventoryGRPCServer {
	return &InventoryGRPCServer{
		addHandler:    addHandler,
		deleteHandler: deleteHandler,
		listHandler:   listHandler,
		statsHandler:  statsHandler,
	}
}

// AddItem validates and appends an item to the caller's inventory
func (s *InventoryGRPCServer) AddItem(ctx context.Context, req *AddItemRequest) (*AddItemResponse, error) {
	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	quantity, err := decodeQuantity(req.Quantity)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	item, err := s.addHandler.Handle(ctx, command.AddItemCommand{
		SessionID: sessionID,
		Name:      req.Name,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	result, err := s.listHandler.Handle(ctx, query.ListItemsQuery{SessionID: sessionID})
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &AddItemResponse{
		Item:          *item,
		TotalQuantity: result.TotalQuantity,
		ItemCount:     result.ItemCount,
	}, nil
}

// DeleteItem removes an item from the caller's inventory
func (s *InventoryGRPCServer) DeleteItem(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResponse, error) {
	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.deleteHandler.Handle(ctx, command.DeleteItemCommand{SessionID: sessionID, ID: req.ID}); err != nil {
		return nil, toStatus(ctx, err)
	}

	result, err := s.listHandler.Handle(ctx, query.ListItemsQuery{SessionID: sessionID})
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &DeleteItemResponse{
		TotalQuantity: result.TotalQuantity,
		ItemCount:     result.ItemCount,
	}, nil
}

// ListItems returns the caller's items in insertion order
func (s *InventoryGRPCServer) ListItems(ctx context.Context, req *ListItemsRequest) (*ListItemsResponse, error) {
	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.listHandler.Handle(ctx, query.ListItemsQuery{SessionID: sessionID})
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &ListItemsResponse{
		Items:         result.Items,
		TotalQuantity: result.TotalQuantity,
		ItemCount:     result.ItemCount,
	}, nil
}

// GetStats returns aggregates and the next id for the caller's inventory
func (s *InventoryGRPCServer) GetStats(ctx context.Context, req *GetStatsRequest) (*GetStatsResponse, error) {
	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsHandler.Handle(ctx, query.GetStatsQuery{SessionID: sessionID})
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &GetStatsResponse{
		ItemCount:     stats.ItemCount,
		TotalQuantity: stats.TotalQuantity,
		NextID:        stats.NextID,
		Empty:         stats.Empty,
	}, nil
}

// decodeQuantity accepts a number or numeric text, the same forms the HTTP
// API takes in its JSON body
func decodeQuantity(v *structpb.Value) (int, error) {
	if v == nil {
		return domain.DecodeQuantity(nil)
	}
	raw, err := protojson.Marshal(v)
	if err != nil {
		return 0, &domain.ValidationError{Kind: domain.InvalidQuantityType, Field: "quantity"}
	}
	return domain.DecodeQuantity(raw)
}

func sessionFromContext(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.InvalidArgument, "metadata not provided")
	}

	values := md.Get(SessionMetadataKey)
	if len(values) == 0 || values[0] == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s metadata is required", SessionMetadataKey)
	}
	return values[0], nil
}

// toStatus maps use case errors to gRPC status codes
func toStatus(ctx context.Context, err error) error {
	var verr *domain.ValidationError
	var nferr *domain.NotFoundError

	switch {
	case errors.As(err, &verr):
		_ = grpc.SetTrailer(ctx, metadata.Pairs(ValidationKindTrailer, string(verr.Kind)))
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.As(err, &nferr):
		return status.Error(codes.NotFound, nferr.Error())
	default:
		logger.Error(ctx).Err(err).Msg("gRPC: inventory call failed")
		return status.Error(codes.Internal, "internal error")
	}
}
