package event

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"
	"github.com/skirent/backend/internal/infrastructure/messaging"
	"go.uber.org/zap"
)

// ProductEventConsumer reads product lifecycle events from Kafka and
// dispatches them to the registered handlers
type ProductEventConsumer struct {
	consumer   messaging.Consumer
	serializer *EventSerializer
	registry   *HandlerRegistry
	logger     *zap.Logger
}

// NewProductEventConsumer creates a new consumer
func NewProductEventConsumer(
	consumer messaging.Consumer,
	serializer *EventSerializer,
	registry *HandlerRegistry,
	logger *zap.Logger,
) *ProductEventConsumer {
	return &ProductEventConsumer{
		consumer:   consumer,
		serializer: serializer,
		registry:   registry,
		logger:     logger,
	}
}

// Run reads messages until the context is cancelled. Malformed
// messages and handler failures are logged and skipped so one bad
// event cannot stall the partition.
func (c *ProductEventConsumer) Run(ctx context.Context) error {
	c.logger.Info("product event consumer started")

	for {
		msg, err := c.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("product event consumer stopping")
				return nil
			}
			return err
		}

		c.dispatch(ctx, msg)
	}
}

func (c *ProductEventConsumer) dispatch(ctx context.Context, msg *kafka.Message) {
	eventType := headerValue(msg, "event-type")
	if eventType == "" {
		c.logger.Warn("message without event-type header, skipping",
			zap.String("key", string(msg.Key)),
			zap.Int64("offset", msg.Offset),
		)
		return
	}

	event, err := c.serializer.Deserialize(eventType, msg.Value)
	if err != nil {
		c.logger.Error("failed to deserialize event, skipping",
			zap.String("event_type", eventType),
			zap.String("key", string(msg.Key)),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return
	}

	handlers := c.registry.GetHandlers(eventType)
	if len(handlers) == 0 {
		c.logger.Debug("no handlers for event type",
			zap.String("event_type", eventType),
		)
		return
	}

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			c.logger.Error("event handler failed",
				zap.String("event_type", eventType),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

// Close closes the underlying consumer
func (c *ProductEventConsumer) Close() error {
	return c.consumer.Close()
}

func headerValue(msg *kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
