package query

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/stock-tracker/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-usecase")

// ListItemsQuery represents the query to list a session inventory
type ListItemsQuery struct {
	SessionID string
}

// ListItemsResult is the current stock list with its aggregates
type ListItemsResult struct {
	Items         []domain.Item `json:"items"`
	TotalQuantity int           `json:"total_quantity"`
	ItemCount     int           `json:"item_count"`
}

// ListItemsHandler handles list items query
type ListItemsHandler struct {
	sessions domain.SessionStore
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(sessions domain.SessionStore) *ListItemsHandler {
	return &ListItemsHandler{sessions: sessions}
}

// Handle executes the list items query
func (h *ListItemsHandler) Handle(ctx context.Context, query ListItemsQuery) (*ListItemsResult, error) {
	_, span := tracer.Start(ctx, "query.ListItems",
		trace.WithAttributes(attribute.String("inventory.session_id", query.SessionID)),
	)
	defer span.End()

	if query.SessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}

	inv := h.sessions.Open(query.SessionID)
	items, total := inv.Snapshot()

	span.SetAttributes(attribute.Int("result.count", len(items)))
	return &ListItemsResult{
		Items:         items,
		TotalQuantity: total,
		ItemCount:     len(items),
	}, nil
}
