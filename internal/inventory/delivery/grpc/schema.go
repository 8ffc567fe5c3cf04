package grpc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tair/stock-tracker/internal/inventory/domain"
)

// ProtoFile is the registered path of the inventory schema, mirrored by
// api/proto/inventory/inventory.proto
const ProtoFile = "inventory/v1/inventory.proto"

// inventoryFile is registered in protoregistry.GlobalFiles so grpc reflection
// can serve the schema to grpcurl and other standard clients
var inventoryFile = registerInventoryFile()

var (
	addItemRequestDesc     = inventoryFile.Messages().ByName("AddItemRequest")
	addItemResponseDesc    = inventoryFile.Messages().ByName("AddItemResponse")
	deleteItemRequestDesc  = inventoryFile.Messages().ByName("DeleteItemRequest")
	deleteItemResponseDesc = inventoryFile.Messages().ByName("DeleteItemResponse")
	listItemsRequestDesc   = inventoryFile.Messages().ByName("ListItemsRequest")
	listItemsResponseDesc  = inventoryFile.Messages().ByName("ListItemsResponse")
	getStatsRequestDesc    = inventoryFile.Messages().ByName("GetStatsRequest")
	getStatsResponseDesc   = inventoryFile.Messages().ByName("GetStatsResponse")
)

func registerInventoryFile() protoreflect.FileDescriptor {
	fd, err := protodesc.NewFile(inventoryFileProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("inventory schema: %v", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("inventory schema: %v", err))
	}
	return fd
}

func inventoryFileProto() *descriptorpb.FileDescriptorProto {
	const (
		int64Type  = descriptorpb.FieldDescriptorProto_TYPE_INT64
		stringType = descriptorpb.FieldDescriptorProto_TYPE_STRING
		boolType   = descriptorpb.FieldDescriptorProto_TYPE_BOOL
	)

	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(ProtoFile),
		Package:    proto.String("inventory.v1"),
		Syntax:     proto.String("proto3"),
		Dependency: []string{"google/protobuf/struct.proto"},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/tair/stock-tracker/api/proto/inventory"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			messageProto("Item",
				scalarField("id", 1, int64Type),
				scalarField("name", 2, stringType),
				scalarField("quantity", 3, int64Type),
			),
			messageProto("AddItemRequest",
				scalarField("name", 1, stringType),
				messageField("quantity", 2, ".google.protobuf.Value", false),
			),
			messageProto("AddItemResponse",
				messageField("item", 1, ".inventory.v1.Item", false),
				scalarField("total_quantity", 2, int64Type),
				scalarField("item_count", 3, int64Type),
			),
			messageProto("DeleteItemRequest",
				scalarField("id", 1, int64Type),
			),
			messageProto("DeleteItemResponse",
				scalarField("total_quantity", 1, int64Type),
				scalarField("item_count", 2, int64Type),
			),
			messageProto("ListItemsRequest"),
			messageProto("ListItemsResponse",
				messageField("items", 1, ".inventory.v1.Item", true),
				scalarField("total_quantity", 2, int64Type),
				scalarField("item_count", 3, int64Type),
			),
			messageProto("GetStatsRequest"),
			messageProto("GetStatsResponse",
				scalarField("item_count", 1, int64Type),
				scalarField("total_quantity", 2, int64Type),
				scalarField("next_id", 3, int64Type),
				scalarField("empty", 4, boolType),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("InventoryService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				methodProto("AddItem"),
				methodProto("DeleteItem"),
				methodProto("ListItems"),
				methodProto("GetStats"),
			},
		}},
	}
}

func messageProto(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func scalarField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func messageField(name string, number int32, typeName string, repeated bool) *descriptorpb.FieldDescriptorProto {
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	if repeated {
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	}
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Label:    label.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(typeName),
	}
}

func methodProto(name string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(".inventory.v1." + name + "Request"),
		OutputType: proto.String(".inventory.v1." + name + "Response"),
	}
}

// Field accessors over dynamic messages

func field(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	return m.Descriptor().Fields().ByName(name)
}

func setInt(m protoreflect.Message, name protoreflect.Name, v int) {
	m.Set(field(m, name), protoreflect.ValueOfInt64(int64(v)))
}

func getInt(m protoreflect.Message, name protoreflect.Name) int {
	return int(m.Get(field(m, name)).Int())
}

func setString(m protoreflect.Message, name protoreflect.Name, v string) {
	m.Set(field(m, name), protoreflect.ValueOfString(v))
}

func getString(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(field(m, name)).String()
}

func setItem(m protoreflect.Message, item domain.Item) {
	setInt(m, "id", item.ID)
	setString(m, "name", item.Name)
	setInt(m, "quantity", item.Quantity)
}

func getItem(m protoreflect.Message) domain.Item {
	return domain.Item{
		ID:       getInt(m, "id"),
		Name:     getString(m, "name"),
		Quantity: getInt(m, "quantity"),
	}
}

func setItems(m protoreflect.Message, items []domain.Item) {
	list := m.Mutable(field(m, "items")).List()
	for _, item := range items {
		elem := list.NewElement()
		setItem(elem.Message(), item)
		list.Append(elem)
	}
}

func getItems(m protoreflect.Message) []domain.Item {
	list := m.Get(field(m, "items")).List()
	items := make([]domain.Item, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		items = append(items, getItem(list.Get(i).Message()))
	}
	return items
}

// getValue copies a google.protobuf.Value field into its generated type.
// It returns nil when the field is unset.
func getValue(m protoreflect.Message, name protoreflect.Name) (*structpb.Value, error) {
	fd := field(m, name)
	if !m.Has(fd) {
		return nil, nil
	}

	sub := m.Get(fd).Message().Interface()
	if v, ok := sub.(*structpb.Value); ok {
		return v, nil
	}

	raw, err := proto.Marshal(sub)
	if err != nil {
		return nil, err
	}
	v := new(structpb.Value)
	if err := proto.Unmarshal(raw, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Conversions between the typed API and wire messages

func (r *AddItemRequest) toProto() proto.Message {
	m := dynamicpb.NewMessage(addItemRequestDesc)
	setString(m, "name", r.Name)
	if r.Quantity != nil {
		m.Set(field(m, "quantity"), protoreflect.ValueOfMessage(r.Quantity.ProtoReflect()))
	}
	return m
}

func addItemRequestFromProto(m protoreflect.Message) (*AddItemRequest, error) {
	quantity, err := getValue(m, "quantity")
	if err != nil {
		return nil, err
	}
	return &AddItemRequest{Name: getString(m, "name"), Quantity: quantity}, nil
}

func (r *AddItemResponse) toProto() proto.Message {
	m := dynamicpb.NewMessage(addItemResponseDesc)
	setItem(m.Mutable(field(m, "item")).Message(), r.Item)
	setInt(m, "total_quantity", r.TotalQuantity)
	setInt(m, "item_count", r.ItemCount)
	return m
}

func addItemResponseFromProto(m protoreflect.Message) *AddItemResponse {
	return &AddItemResponse{
		Item:          getItem(m.Get(field(m, "item")).Message()),
		TotalQuantity: getInt(m, "total_quantity"),
		ItemCount:     getInt(m, "item_count"),
	}
}

func (r *DeleteItemRequest) toProto() proto.Message {
	m := dynamicpb.NewMessage(deleteItemRequestDesc)
	setInt(m, "id", r.ID)
	return m
}

func deleteItemRequestFromProto(m protoreflect.Message) *DeleteItemRequest {
	return &DeleteItemRequest{ID: getInt(m, "id")}
}

func (r *DeleteItemResponse) toProto() proto.Message {
	m := dynamicpb.NewMessage(deleteItemResponseDesc)
	setInt(m, "total_quantity", r.TotalQuantity)
	setInt(m, "item_count", r.ItemCount)
	return m
}

func deleteItemResponseFromProto(m protoreflect.Message) *DeleteItemResponse {
	return &DeleteItemResponse{
		TotalQuantity: getInt(m, "total_quantity"),
		ItemCount:     getInt(m, "item_count"),
	}
}

func (r *ListItemsRequest) toProto() proto.Message {
	return dynamicpb.NewMessage(listItemsRequestDesc)
}

func (r *ListItemsResponse) toProto() proto.Message {
	m := dynamicpb.NewMessage(listItemsResponseDesc)
	setItems(m, r.Items)
	setInt(m, "total_quantity", r.TotalQuantity)
	setInt(m, "item_count", r.ItemCount)
	return m
}

func listItemsResponseFromProto(m protoreflect.Message) *ListItemsResponse {
	return &ListItemsResponse{
		Items:         getItems(m),
		TotalQuantity: getInt(m, "total_quantity"),
		ItemCount:     getInt(m, "item_count"),
	}
}

func (r *GetStatsRequest) toProto() proto.Message {
	return dynamicpb.NewMessage(getStatsRequestDesc)
}

func (r *GetStatsResponse) toProto() proto.Message {
	m := dynamicpb.NewMessage(getStatsResponseDesc)
	setInt(m, "item_count", r.ItemCount)
	setInt(m, "total_quantity", r.TotalQuantity)
	setInt(m, "next_id", r.NextID)
	m.Set(field(m, "empty"), protoreflect.ValueOfBool(r.Empty))
	return m
}

func getStatsResponseFromProto(m protoreflect.Message) *GetStatsResponse {
	return &GetStatsResponse{
		ItemCount:     getInt(m, "item_count"),
		TotalQuantity: getInt(m, "total_quantity"),
		NextID:        getInt(m, "next_id"),
		Empty:         m.Get(field(m, "empty")).Bool(),
	}
}
