package kafka

import "time"

// ItemEvent describes a completed inventory mutation
type ItemEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	SessionID string    `json:"session_id"`
	ItemID    int       `json:"item_id"`
	Name      string    `json:"name,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeItemAdded   = "item.added"
	EventTypeItemDeleted = "item.deleted"
)

// DefaultTopic carries all item events
const DefaultTopic = "inventory-items"

// Header keys set on every message
const (
	headerEventType = "event_type"
	headerEventID   = "event_id"
)
