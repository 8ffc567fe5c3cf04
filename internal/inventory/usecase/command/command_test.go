package command

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tair/stock-tracker/internal/inventory/domain"
	"github.com/tair/stock-tracker/internal/inventory/session"
)

var recorder = tracetest.NewSpanRecorder()

func TestMain(m *testing.M) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	code := m.Run()
	_ = tp.Shutdown(context.Background())
	os.Exit(code)
}

type publishedEvent struct {
	kind      string
	sessionID string
	itemID    int
}

// recordingPublisher captures events and can be told to fail
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishItemAdded(ctx context.Context, sessionID string, item domain.Item) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{"added", sessionID, item.ID})
	return p.err
}

func (p *recordingPublisher) PublishItemDeleted(ctx context.Context, sessionID string, itemID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{"deleted", sessionID, itemID})
	return p.err
}

func setup(t *testing.T) (*session.Registry, *recordingPublisher) {
	registry := session.NewRegistry(session.Config{TTL: time.Hour, CleanupInterval: time.Hour, Seed: true})
	t.Cleanup(registry.Shutdown)
	return registry, &recordingPublisher{}
}

func lastSpan(t *testing.T, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	ended := recorder.Ended()
	for i := len(ended) - 1; i >= 0; i-- {
		if ended[i].Name() == name {
			return ended[i]
		}
	}
	t.Fatalf("no span named %s", name)
	return nil
}

func TestAddItemHandler_Success(t *testing.T) {
	registry, pub := setup(t)
	h := NewAddItemHandler(registry, pub)

	item, err := h.Handle(context.Background(), AddItemCommand{SessionID: "s1", Name: " Paint can ", Quantity: 10})
	require.NoError(t, err)

	assert.Equal(t, domain.Item{ID: 4, Name: "Paint can", Quantity: 10}, *item)
	assert.Equal(t, 4, registry.Open("s1").ItemCount())
	assert.Equal(t, []publishedEvent{{"added", "s1", 4}}, pub.events)
	assert.Equal(t, codes.Unset, lastSpan(t, "command.AddItem").Status().Code)
}

func TestAddItemHandler_ValidationError(t *testing.T) {
	registry, pub := setup(t)
	h := NewAddItemHandler(registry, pub)

	_, err := h.Handle(context.Background(), AddItemCommand{SessionID: "s1", Name: "Bolt", Quantity: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	kind, ok := domain.ValidationKindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.NonPositiveQuantity, kind)

	assert.Equal(t, 3, registry.Open("s1").ItemCount())
	assert.Empty(t, pub.events)
	assert.Equal(t, codes.Error, lastSpan(t, "command.AddItem").Status().Code)
}

func TestAddItemHandler_RequiresSession(t *testing.T) {
	registry, pub := setup(t)
	h := NewAddItemHandler(registry, pub)

	_, err := h.Handle(context.Background(), AddItemCommand{Name: "Bolt", Quantity: 1})
	assert.ErrorContains(t, err, "session_id is required")
	assert.Equal(t, 0, registry.Len())
}

func TestAddItemHandler_PublishFailureKeepsItem(t *testing.T) {
	registry, pub := setup(t)
	pub.err = errors.New("broker down")
	h := NewAddItemHandler(registry, pub)

	item, err := h.Handle(context.Background(), AddItemCommand{SessionID: "s1", Name: "Bolt", Quantity: 2})
	require.NoError(t, err)

	_, err = registry.Open("s1").Get(item.ID)
	assert.NoError(t, err)
}

func TestDeleteItemHandler(t *testing.T) {
	registry, pub := setup(t)
	h := NewDeleteItemHandler(registry, pub)
	ctx := context.Background()

	require.NoError(t, h.Handle(ctx, DeleteItemCommand{SessionID: "s1", ID: 2}))
	assert.Equal(t, 2, registry.Open("s1").ItemCount())

	err := h.Handle(ctx, DeleteItemCommand{SessionID: "s1", ID: 2})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "item 2 not found")

	assert.Equal(t, []publishedEvent{{"deleted", "s1", 2}}, pub.events)
	assert.Equal(t, codes.Error, lastSpan(t, "command.DeleteItem").Status().Code)
}

func TestDeleteItemHandler_RequiresSession(t *testing.T) {
	registry, pub := setup(t)
	h := NewDeleteItemHandler(registry, pub)

	assert.ErrorContains(t, h.Handle(context.Background(), DeleteItemCommand{ID: 1}), "session_id is required")
}

func TestHandlers_EndToEndScenario(t *testing.T) {
	registry, pub := setup(t)
	add := NewAddItemHandler(registry, pub)
	del := NewDeleteItemHandler(registry, pub)
	ctx := context.Background()

	item, err := add.Handle(ctx, AddItemCommand{SessionID: "s1", Name: "Paint can", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, item.ID)

	require.NoError(t, del.Handle(ctx, DeleteItemCommand{SessionID: "s1", ID: 2}))

	inv := registry.Open("s1")
	var got []int
	for _, it := range inv.ListItems() {
		got = append(got, it.ID)
	}
	assert.Equal(t, []int{1, 3, 4}, got)
	assert.Equal(t, 30, inv.TotalQuantity())
}
