package command

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/stock-tracker/internal/inventory/domain"
	"github.com/tair/stock-tracker/pkg/logger"
)

// DeleteItemCommand represents the command to delete an item
type DeleteItemCommand struct {
	SessionID string
	ID        int
}

// DeleteItemHandler handles delete item command
type DeleteItemHandler struct {
	sessions  domain.SessionStore
	publisher domain.EventPublisher
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(sessions domain.SessionStore, publisher domain.EventPublisher) *DeleteItemHandler {
	return &DeleteItemHandler{sessions: sessions, publisher: publisher}
}

// Handle executes the delete item command
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	ctx, span := tracer.Start(ctx, "command.DeleteItem",
		trace.WithAttributes(
			attribute.String("inventory.session_id", cmd.SessionID),
			attribute.Int("item.id", cmd.ID),
		),
	)
	defer span.End()

	if cmd.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}

	if err := h.sessions.Open(cmd.SessionID).DeleteItem(cmd.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if err := h.publisher.PublishItemDeleted(ctx, cmd.SessionID, cmd.ID); err != nil {
		logger.Error(ctx).Err(err).Int("item_id", cmd.ID).Msg("Failed to publish item deleted event")
	}

	return nil
}
