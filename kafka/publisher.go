package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/stock-tracker/internal/inventory/domain"
	"github.com/tair/stock-tracker/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

// Verify interface compliance
var _ domain.EventPublisher = (*Publisher)(nil)

// ProducerConfig returns the sarama configuration used for item events
func ProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000
	return config
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("topic", topic).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer, topic), nil
}

// NewPublisherWithProducer creates a publisher on top of an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{producer: producer, topic: topic, now: time.Now}
}

// PublishItemAdded publishes an item.added event
func (p *Publisher) PublishItemAdded(ctx context.Context, sessionID string, item domain.Item) error {
	return p.publish(ctx, ItemEvent{
		EventType: EventTypeItemAdded,
		SessionID: sessionID,
		ItemID:    item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
	})
}

// PublishItemDeleted publishes an item.deleted event
func (p *Publisher) PublishItemDeleted(ctx context.Context, sessionID string, itemID int) error {
	return p.publish(ctx, ItemEvent{
		EventType: EventTypeItemDeleted,
		SessionID: sessionID,
		ItemID:    itemID,
	})
}

func (p *Publisher) publish(ctx context.Context, event ItemEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+event.EventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", p.topic),
			attribute.String("event.type", event.EventType),
			attribute.Int("item.id", event.ItemID),
		),
	)
	defer span.End()

	event.EventID = uuid.NewString()
	event.Timestamp = p.now().UTC()
	span.SetAttributes(attribute.String("event.id", event.EventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte(headerEventType), Value: []byte(event.EventType)},
		{Key: []byte(headerEventID), Value: []byte(event.EventID)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder(event.SessionID),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Debug(ctx).
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Int("item_id", event.ItemID).
		Msg("Item event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopPublisher drops every event; used when no brokers are configured
type NopPublisher struct{}

// Verify interface compliance
var _ domain.EventPublisher = NopPublisher{}

func (NopPublisher) PublishItemAdded(context.Context, string, domain.Item) error { return nil }

func (NopPublisher) PublishItemDeleted(context.Context, string, int) error { return nil }
