package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tair/stock-tracker/internal/inventory/domain"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "inventory.v1.InventoryService"

const (
	methodAddItem    = "/" + ServiceName + "/AddItem"
	methodDeleteItem = "/" + ServiceName + "/DeleteItem"
	methodListItems  = "/" + ServiceName + "/ListItems"
	methodGetStats   = "/" + ServiceName + "/GetStats"
)

// AddItemRequest carries the quantity as a google.protobuf.Value so callers
// may send either a number or numeric text
type AddItemRequest struct {
	Name     string
	Quantity *structpb.Value
}

type AddItemResponse struct {
	Item          domain.Item
	TotalQuantity int
	ItemCount     int
}

type DeleteItemRequest struct {
	ID int
}

type DeleteItemResponse struct {
	TotalQuantity int
	ItemCount     int
}

type ListItemsRequest struct{}

type ListItemsResponse struct {
	Items         []domain.Item
	TotalQuantity int
	ItemCount     int
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	ItemCount     int
	TotalQuantity int
	NextID        int
	Empty         bool
}

// InventoryServiceServer is the server API for the inventory service
type InventoryServiceServer interface {
	AddItem(context.Context, *AddItemRequest) (*AddItemResponse, error)
	DeleteItem(context.Context, *DeleteItemRequest) (*DeleteItemResponse, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error)
}

// RegisterInventoryServiceServer registers srv on s
func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

// unaryHandler decodes the wire message, runs call through the interceptor
// chain with the typed request and encodes the typed response
func unaryHandler[Req any, Resp interface{ toProto() proto.Message }](
	method string,
	in protoreflect.MessageDescriptor,
	decode func(protoreflect.Message) (*Req, error),
	call func(InventoryServiceServer, context.Context, *Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		msg := dynamicpb.NewMessage(in)
		if err := dec(msg); err != nil {
			return nil, err
		}
		req, err := decode(msg)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
		}

		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			resp, err := call(srv.(InventoryServiceServer), ctx, req.(*Req))
			if err != nil {
				return nil, err
			}
			return resp.toProto(), nil
		}
		if interceptor == nil {
			return handler(ctx, req)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		return interceptor(ctx, req, info, handler)
	}
}

func noFields[Req any](protoreflect.Message) (*Req, error) {
	return new(Req), nil
}

func infallible[Req any](decode func(protoreflect.Message) *Req) func(protoreflect.Message) (*Req, error) {
	return func(m protoreflect.Message) (*Req, error) {
		return decode(m), nil
	}
}

// InventoryService_ServiceDesc is the grpc.ServiceDesc for the inventory service
var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AddItem",
			Handler: unaryHandler(methodAddItem, addItemRequestDesc, addItemRequestFromProto,
				InventoryServiceServer.AddItem),
		},
		{
			MethodName: "DeleteItem",
			Handler: unaryHandler(methodDeleteItem, deleteItemRequestDesc, infallible(deleteItemRequestFromProto),
				InventoryServiceServer.DeleteItem),
		},
		{
			MethodName: "ListItems",
			Handler: unaryHandler(methodListItems, listItemsRequestDesc, noFields[ListItemsRequest],
				InventoryServiceServer.ListItems),
		},
		{
			MethodName: "GetStats",
			Handler: unaryHandler(methodGetStats, getStatsRequestDesc, noFields[GetStatsRequest],
				InventoryServiceServer.GetStats),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

// InventoryServiceClient is the client API for the inventory service
type InventoryServiceClient interface {
	AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*AddItemResponse, error)
	DeleteItem(ctx context.Context, in *DeleteItemRequest, opts ...grpc.CallOption) (*DeleteItemResponse, error)
	ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error)
	GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*GetStatsResponse, error)
}

type inventoryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewInventoryServiceClient returns a client for the inventory service
func NewInventoryServiceClient(cc grpc.ClientConnInterface) InventoryServiceClient {
	return &inventoryServiceClient{cc: cc}
}

func (c *inventoryServiceClient) invoke(ctx context.Context, method string, in proto.Message, out protoreflect.MessageDescriptor, opts []grpc.CallOption) (protoreflect.Message, error) {
	msg := dynamicpb.NewMessage(out)
	if err := c.cc.Invoke(ctx, method, in, msg, opts...); err != nil {
		return nil, err
	}
	return msg, nil
}

func (c *inventoryServiceClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*AddItemResponse, error) {
	out, err := c.invoke(ctx, methodAddItem, in.toProto(), addItemResponseDesc, opts)
	if err != nil {
		return nil, err
	}
	return addItemResponseFromProto(out), nil
}

func (c *inventoryServiceClient) DeleteItem(ctx context.Context, in *DeleteItemRequest, opts ...grpc.CallOption) (*DeleteItemResponse, error) {
	out, err := c.invoke(ctx, methodDeleteItem, in.toProto(), deleteItemResponseDesc, opts)
	if err != nil {
		return nil, err
	}
	return deleteItemResponseFromProto(out), nil
}

func (c *inventoryServiceClient) ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error) {
	out, err := c.invoke(ctx, methodListItems, in.toProto(), listItemsResponseDesc, opts)
	if err != nil {
		return nil, err
	}
	return listItemsResponseFromProto(out), nil
}

func (c *inventoryServiceClient) GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*GetStatsResponse, error) {
	out, err := c.invoke(ctx, methodGetStats, in.toProto(), getStatsResponseDesc, opts)
	if err != nil {
		return nil, err
	}
	return getStatsResponseFromProto(out), nil
}
