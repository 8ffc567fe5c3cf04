package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/stock-tracker/pkg/logger"
)

// EventHandler handles one decoded item event
type EventHandler func(ctx context.Context, event ItemEvent) error

// Consumer wraps Kafka consumer group
type Consumer struct {
	consumer      sarama.ConsumerGroup
	groupID       string
	topics        []string
	handlers      map[string]EventHandler
	handlersMutex sync.RWMutex
	wg            sync.WaitGroup
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return newConsumer(group, groupID, topics), nil
}

func newConsumer(group sarama.ConsumerGroup, groupID string, topics []string) *Consumer {
	return &Consumer{
		consumer: group,
		groupID:  groupID,
		topics:   topics,
		handlers: make(map[string]EventHandler),
	}
}

// RegisterHandler registers an event handler for a specific event type
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.handlersMutex.Lock()
	defer c.handlersMutex.Unlock()
	c.handlers[eventType] = handler
}

// Start consumes messages until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) {
	handler := &consumerGroupHandler{consumer: c}

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		for ctx.Err() == nil {
			if err := c.consumer.Consume(ctx, c.topics, handler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				logger.Logger.Error().Err(err).Msg("Error from consumer")
			}
		}
	}()

	go func() {
		defer c.wg.Done()
		for err := range c.consumer.Errors() {
			logger.Logger.Error().Err(err).Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")
}

// Close closes the consumer group and waits for the consume loops
func (c *Consumer) Close() error {
	var err error
	if c.consumer != nil {
		err = c.consumer.Close()
	}
	c.wg.Wait()
	return err
}

// LogItemEvent writes an audit line for an item event
func LogItemEvent(ctx context.Context, event ItemEvent) error {
	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("session_id", event.SessionID).
		Int("item_id", event.ItemID).
		Str("name", event.Name).
		Int("quantity", event.Quantity).
		Time("event_time", event.Timestamp).
		Msg("Inventory audit")
	return nil
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *Consumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		_ = h.consumer.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

// handleMessage decodes one message and dispatches it; the error is only
// reported for observability, the message is always marked.
func (c *Consumer) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	carrier := propagation.MapCarrier{}
	eventType := ""
	for _, header := range message.Headers {
		key := string(header.Key)
		switch key {
		case "traceparent", "tracestate":
			carrier[key] = string(header.Value)
		case headerEventType:
			eventType = string(header.Value)
		}
	}

	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume."+eventType,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
		),
	)
	defer span.End()

	if eventType == "" {
		span.SetStatus(codes.Error, "Message without event_type header")
		logger.Warn(ctx).Str("topic", message.Topic).Msg("Message without event_type header")
		return fmt.Errorf("message without %s header", headerEventType)
	}

	c.handlersMutex.RLock()
	handler, exists := c.handlers[eventType]
	c.handlersMutex.RUnlock()

	if !exists {
		span.SetStatus(codes.Error, "No handler registered")
		logger.Warn(ctx).Str("event_type", eventType).Msg("No handler registered for event type")
		return fmt.Errorf("no handler registered for %q", eventType)
	}

	var event ItemEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to unmarshal event")
		logger.Error(ctx).Err(err).Str("event_type", eventType).Msg("Failed to unmarshal event")
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	span.SetAttributes(
		attribute.String("event.id", event.EventID),
		attribute.Int("item.id", event.ItemID),
	)

	if err := handler(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to handle event")
		logger.Error(ctx).Err(err).Str("event_id", event.EventID).Msg("Failed to handle event")
		return fmt.Errorf("failed to handle event: %w", err)
	}

	span.SetStatus(codes.Ok, "Event handled successfully")
	return nil
}
