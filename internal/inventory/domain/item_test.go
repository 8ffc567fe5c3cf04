package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	q, err := ParseQuantity(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, q)

	// Sign is not checked here
	q, err = ParseQuantity("-4")
	require.NoError(t, err)
	assert.Equal(t, -4, q)

	for _, raw := range []string{"", "1.5", "abc", "7 apples"} {
		_, err := ParseQuantity(raw)
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, ErrValidation)

		kind, ok := ValidationKindOf(err)
		assert.True(t, ok)
		assert.Equal(t, InvalidQuantityType, kind)
	}
}

func TestDecodeQuantity(t *testing.T) {
	for raw, want := range map[string]int{`10`: 10, `"10"`: 10, `" 3 "`: 3, `0`: 0} {
		q, err := DecodeQuantity(json.RawMessage(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, q, raw)
	}

	for _, raw := range []string{``, `null`, `1.5`, `true`, `"ten"`, `[1]`} {
		_, err := DecodeQuantity(json.RawMessage(raw))
		kind, ok := ValidationKindOf(err)
		assert.True(t, ok, raw)
		assert.Equal(t, InvalidQuantityType, kind, raw)
	}
}

func TestErrors_MatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to delete item: %w", &NotFoundError{ID: 7})

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrValidation)
	assert.Contains(t, wrapped.Error(), "item 7 not found")

	_, ok := ValidationKindOf(wrapped)
	assert.False(t, ok)

	verr := fmt.Errorf("add: %w", &ValidationError{Kind: NonPositiveQuantity, Field: "quantity", Value: "0"})
	assert.ErrorIs(t, verr, ErrValidation)
	assert.False(t, errors.Is(verr, ErrNotFound))
	assert.Contains(t, verr.Error(), "greater than 0")
}

func TestValidationError_Messages(t *testing.T) {
	assert.Equal(t, "name is required", (&ValidationError{Kind: EmptyName}).Error())
	assert.Equal(t, `quantity must be an integer, got "x"`, (&ValidationError{Kind: InvalidQuantityType, Value: "x"}).Error())
}
