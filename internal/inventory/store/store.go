package store

import (
	"strconv"
	"strings"
	"sync"

	"github.com/tair/stock-tracker/internal/inventory/domain"
)

// SeedItems is the starter stock loaded by Initialize
var SeedItems = []domain.Item{
	{ID: 1, Name: "Hammer", Quantity: 15},
	{ID: 2, Name: "Phillips screwdriver", Quantity: 30},
	{ID: 3, Name: "Paint can (white)", Quantity: 5},
}

// Store implements domain.Inventory with an ordered in-memory slice
type Store struct {
	mu          sync.Mutex
	items       []domain.Item
	highestID   int // highest id ever held, ids are never reused
	initialized bool
	seed        []domain.Item
}

// Verify interface compliance
var _ domain.Inventory = (*Store)(nil)

// New creates an empty store whose Initialize loads SeedItems
func New() *Store {
	return NewWithSeed(SeedItems)
}

// NewWithSeed creates an empty store whose Initialize loads seed.
// Seed items are trusted and must already satisfy the item invariants.
func NewWithSeed(seed []domain.Item) *Store {
	return &Store{
		items: []domain.Item{},
		seed:  append([]domain.Item(nil), seed...),
	}
}

// Initialize loads the seed items into a store that has never held items.
// It is a no-op once it has run or once any item has been added.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized || len(s.items) > 0 || s.highestID > 0 {
		s.initialized = true
		return
	}
	s.initialized = true

	for _, item := range s.seed {
		s.items = append(s.items, item)
		if item.ID > s.highestID {
			s.highestID = item.ID
		}
	}
}

// NextID returns the id the next successful AddItem will assign. Ids grow
// past the highest id the store has ever assigned, so an emptied store keeps
// counting instead of restarting at 1. Only a store that never held an item
// starts at 1.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID()
}

func (s *Store) nextID() int {
	highest := s.highestID
	for _, item := range s.items {
		if item.ID > highest {
			highest = item.ID
		}
	}
	return highest + 1
}

// AddItem validates the input and appends a new item
func (s *Store) AddItem(name string, quantity int) (domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Item{}, &domain.ValidationError{Kind: domain.EmptyName, Field: "name"}
	}
	if quantity <= 0 {
		return domain.Item{}, &domain.ValidationError{
			Kind:  domain.NonPositiveQuantity,
			Field: "quantity",
			Value: strconv.Itoa(quantity),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := domain.Item{ID: s.nextID(), Name: name, Quantity: quantity}
	s.items = append(s.items, item)
	s.highestID = item.ID
	s.initialized = true
	return item, nil
}

// DeleteItem removes the item with the given id, keeping the order of the rest
func (s *Store) DeleteItem(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(s.items) {
		return &domain.NotFoundError{ID: id}
	}

	s.items = kept
	return nil
}

// Get returns the item with the given id
func (s *Store) Get(id int) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Item{}, &domain.NotFoundError{ID: id}
}

// ListItems returns a copy of the items in insertion order
func (s *Store) ListItems() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.Item, len(s.items))
	copy(items, s.items)
	return items
}

// Snapshot returns a copy of the items together with their total quantity,
// both read under one lock
func (s *Store) Snapshot() ([]domain.Item, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.Item, len(s.items))
	copy(items, s.items)

	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return items, total
}

// TotalQuantity returns the sum of all quantities
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// ItemCount returns the number of stored items
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
