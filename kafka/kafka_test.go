package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/stock-tracker/internal/inventory/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
}

func TestPublisher_PublishItemAdded(t *testing.T) {
	producer := mocks.NewSyncProducer(t, ProducerConfig())
	var published ItemEvent
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		return json.Unmarshal(val, &published)
	})

	pub := NewPublisherWithProducer(producer, "")
	pub.now = fixedClock

	err := pub.PublishItemAdded(context.Background(), "session-1", domain.Item{ID: 4, Name: "Paint can", Quantity: 10})
	require.NoError(t, err)
	require.NoError(t, pub.Close())

	assert.Equal(t, EventTypeItemAdded, published.EventType)
	assert.Equal(t, "session-1", published.SessionID)
	assert.Equal(t, 4, published.ItemID)
	assert.Equal(t, "Paint can", published.Name)
	assert.Equal(t, 10, published.Quantity)
	assert.NotEmpty(t, published.EventID)
	assert.True(t, fixedClock().Equal(published.Timestamp))
	assert.Equal(t, DefaultTopic, pub.topic)
}

func TestPublisher_PublishItemDeleted(t *testing.T) {
	producer := mocks.NewSyncProducer(t, ProducerConfig())
	var published ItemEvent
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		return json.Unmarshal(val, &published)
	})

	pub := NewPublisherWithProducer(producer, "custom-topic")
	require.NoError(t, pub.PublishItemDeleted(context.Background(), "session-1", 2))
	require.NoError(t, pub.Close())

	assert.Equal(t, EventTypeItemDeleted, published.EventType)
	assert.Equal(t, 2, published.ItemID)
	assert.Empty(t, published.Name)
}

func TestPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, ProducerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewPublisherWithProducer(producer, "")
	err := pub.PublishItemDeleted(context.Background(), "session-1", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestNopPublisher(t *testing.T) {
	var pub domain.EventPublisher = NopPublisher{}
	assert.NoError(t, pub.PublishItemAdded(context.Background(), "s", domain.Item{ID: 1}))
	assert.NoError(t, pub.PublishItemDeleted(context.Background(), "s", 1))
}

func message(eventType string, value []byte) *sarama.ConsumerMessage {
	msg := &sarama.ConsumerMessage{Topic: DefaultTopic, Value: value}
	if eventType != "" {
		msg.Headers = []*sarama.RecordHeader{{Key: []byte(headerEventType), Value: []byte(eventType)}}
	}
	return msg
}

func TestConsumer_HandleMessage_DispatchesByType(t *testing.T) {
	c := newConsumer(nil, "audit", []string{DefaultTopic})

	var received []ItemEvent
	c.RegisterHandler(EventTypeItemAdded, func(ctx context.Context, event ItemEvent) error {
		received = append(received, event)
		return nil
	})

	payload, err := json.Marshal(ItemEvent{EventID: "evt-1", EventType: EventTypeItemAdded, ItemID: 4, Name: "Paint can", Quantity: 10})
	require.NoError(t, err)

	require.NoError(t, c.handleMessage(context.Background(), message(EventTypeItemAdded, payload)))
	require.Len(t, received, 1)
	assert.Equal(t, "evt-1", received[0].EventID)
	assert.Equal(t, 4, received[0].ItemID)
}

func TestConsumer_HandleMessage_Rejections(t *testing.T) {
	c := newConsumer(nil, "audit", []string{DefaultTopic})
	c.RegisterHandler(EventTypeItemAdded, func(ctx context.Context, event ItemEvent) error {
		return errors.New("boom")
	})

	assert.ErrorContains(t, c.handleMessage(context.Background(), message("", []byte(`{}`))), "event_type")
	assert.ErrorContains(t, c.handleMessage(context.Background(), message(EventTypeItemDeleted, []byte(`{}`))), "no handler")
	assert.ErrorContains(t, c.handleMessage(context.Background(), message(EventTypeItemAdded, []byte(`not json`))), "unmarshal")
	assert.ErrorContains(t, c.handleMessage(context.Background(), message(EventTypeItemAdded, []byte(`{}`))), "boom")
}

func TestLogItemEvent(t *testing.T) {
	assert.NoError(t, LogItemEvent(context.Background(), ItemEvent{EventType: EventTypeItemDeleted, ItemID: 3}))
}
