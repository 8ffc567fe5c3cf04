package command

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/stock-tracker/internal/inventory/domain"
	"github.com/tair/stock-tracker/pkg/logger"
)

var tracer = otel.Tracer("inventory-usecase")

// AddItemCommand represents the command to add an item to a session inventory
type AddItemCommand struct {
	SessionID string
	Name      string
	Quantity  int
}

// AddItemHandler handles add item command
type AddItemHandler struct {
	sessions  domain.SessionStore
	publisher domain.EventPublisher
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(sessions domain.SessionStore, publisher domain.EventPublisher) *AddItemHandler {
	return &AddItemHandler{sessions: sessions, publisher: publisher}
}

// Handle executes the add item command
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*domain.Item, error) {
	ctx, span := tracer.Start(ctx, "command.AddItem",
		trace.WithAttributes(
			attribute.String("inventory.session_id", cmd.SessionID),
			attribute.Int("item.quantity", cmd.Quantity),
		),
	)
	defer span.End()

	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}

	item, err := h.sessions.Open(cmd.SessionID).AddItem(cmd.Name, cmd.Quantity)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	span.SetAttributes(attribute.Int("item.id", item.ID))

	if err := h.publisher.PublishItemAdded(ctx, cmd.SessionID, item); err != nil {
		logger.Error(ctx).Err(err).Int("item_id", item.ID).Msg("Failed to publish item added event")
	}

	return &item, nil
}
