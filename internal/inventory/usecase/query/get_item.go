package query

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/stock-tracker/internal/inventory/domain"
)

// GetItemQuery represents the query to get one item
type GetItemQuery struct {
	SessionID string
	ID        int
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	sessions domain.SessionStore
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(sessions domain.SessionStore) *GetItemHandler {
	return &GetItemHandler{sessions: sessions}
}

// Handle executes the get item query
func (h *GetItemHandler) Handle(ctx context.Context, query GetItemQuery) (*domain.Item, error) {
	_, span := tracer.Start(ctx, "query.GetItem",
		trace.WithAttributes(
			attribute.String("inventory.session_id", query.SessionID),
			attribute.Int("item.id", query.ID),
		),
	)
	defer span.End()

	if query.SessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}

	item, err := h.sessions.Open(query.SessionID).Get(query.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}
