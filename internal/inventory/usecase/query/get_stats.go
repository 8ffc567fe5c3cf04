package query

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/stock-tracker/internal/inventory/domain"
)

// GetStatsQuery represents the query to get inventory statistics
type GetStatsQuery struct {
	SessionID string
}

// Stats represents inventory statistics
type Stats struct {
	ItemCount     int  `json:"item_count"`
	TotalQuantity int  `json:"total_quantity"`
	NextID        int  `json:"next_id"`
	Empty         bool `json:"empty"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	sessions domain.SessionStore
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(sessions domain.SessionStore) *GetStatsHandler {
	return &GetStatsHandler{sessions: sessions}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, query GetStatsQuery) (*Stats, error) {
	_, span := tracer.Start(ctx, "query.GetStats",
		trace.WithAttributes(attribute.String("inventory.session_id", query.SessionID)),
	)
	defer span.End()

	if query.SessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}

	inv := h.sessions.Open(query.SessionID)
	items, total := inv.Snapshot()
	count := len(items)

	return &Stats{
		ItemCount:     count,
		TotalQuantity: total,
		NextID:        inv.NextID(),
		Empty:         count == 0,
	}, nil
}
