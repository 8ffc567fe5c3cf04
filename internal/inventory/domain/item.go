package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Item represents a single stock record
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Inventory defines the contract of a session-scoped item store
type Inventory interface {
	// Initialize seeds the starter items into a store that never held any
	Initialize()

	// NextID returns the id the next successful AddItem will assign
	NextID() int

	// AddItem validates and appends a new item, returning it with its assigned id
	AddItem(name string, quantity int) (Item, error)

	// DeleteItem removes the item with the given id
	DeleteItem(id int) error

	// Get returns the item with the given id
	Get(id int) (Item, error)

	// ListItems returns a copy of the items in insertion order
	ListItems() []Item

	// Snapshot returns the items and their total quantity from one read
	Snapshot() ([]Item, int)

	TotalQuantity() int
	ItemCount() int
}

// SessionStore hands out one independently owned Inventory per session
type SessionStore interface {
	// Open returns the inventory of sessionID, creating it on first use
	Open(sessionID string) Inventory

	// Close drops the session and reports whether it existed
	Close(sessionID string) bool

	// Len returns the number of live sessions
	Len() int
}

// ParseQuantity converts caller-supplied text into a quantity. It only checks
// that the text is an integer; positivity is enforced by AddItem.
func ParseQuantity(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	quantity, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ValidationError{Kind: InvalidQuantityType, Field: "quantity", Value: trimmed}
	}
	return quantity, nil
}

// DecodeQuantity accepts a JSON number or a JSON string holding an integer.
// Anything else, including a missing value, is an InvalidQuantityType error.
func DecodeQuantity(raw json.RawMessage) (int, error) {
	text := string(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		text = s
	}
	return ParseQuantity(text)
}
