package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors matched through errors.Is
var (
	ErrValidation = errors.New("invalid item")
	ErrNotFound   = errors.New("item not found")
)

// ValidationKind names the constraint an AddItem input violated
type ValidationKind string

const (
	EmptyName           ValidationKind = "empty_name"
	InvalidQuantityType ValidationKind = "invalid_quantity_type"
	NonPositiveQuantity ValidationKind = "non_positive_quantity"
)

// ValidationError is returned when an item input is rejected. No mutation
// has happened when it is returned.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyName:
		return "name is required"
	case InvalidQuantityType:
		return fmt.Sprintf("quantity must be an integer, got %q", e.Value)
	case NonPositiveQuantity:
		return fmt.Sprintf("quantity must be greater than 0, got %s", e.Value)
	default:
		return fmt.Sprintf("invalid %s", e.Field)
	}
}

// Is reports whether target is ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError is returned when no item carries the requested id
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ID)
}

// Is reports whether target is ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationKindOf extracts the validation kind from err, if any
func ValidationKindOf(err error) (ValidationKind, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind, true
	}
	return "", false
}
