package event

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/skirent/backend/internal/domain/catalog"
	"github.com/skirent/backend/internal/domain/shared"
	"github.com/skirent/backend/internal/infrastructure/messaging"
	"go.uber.org/zap"
)

const defaultPublishTimeout = 10 * time.Second

// ProductEventPublisher sends product lifecycle events to Kafka.
//
// Delivery is fire-and-forget: Publish hands the events to a
// background goroutine and returns immediately. The outcome is only
// logged. There is no retry and no persistence; a lost event is
// repaired by the next event for the same product or by a full resync.
type ProductEventPublisher struct {
	producer   messaging.Producer
	serializer *EventSerializer
	logger     *zap.Logger
	timeout    time.Duration
	wg         sync.WaitGroup
}

// ProductEventPublisherOption is a functional option for the publisher
type ProductEventPublisherOption func(*ProductEventPublisher)

// WithPublishTimeout bounds how long a background send may take
func WithPublishTimeout(timeout time.Duration) ProductEventPublisherOption {
	return func(p *ProductEventPublisher) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// NewProductEventPublisher creates a new publisher
func NewProductEventPublisher(
	producer messaging.Producer,
	serializer *EventSerializer,
	logger *zap.Logger,
	opts ...ProductEventPublisherOption,
) *ProductEventPublisher {
	p := &ProductEventPublisher{
		producer:   producer,
		serializer: serializer,
		logger:     logger,
		timeout:    defaultPublishTimeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Publish serializes the events and sends them in the background.
// Events in one call are sent in order; the message key is the
// aggregate ID, so all events for one product land on one partition.
func (p *ProductEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		payload, err := p.serializer.Serialize(e)
		if err != nil {
			// A non-serializable event is a programming error; surface
			// it to the caller instead of dropping it silently.
			return err
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(e.AggregateID().String()),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(e.EventType())},
				{Key: "event-id", Value: []byte(e.EventID().String())},
			},
		})
	}

	p.wg.Add(1)
	go p.send(messages, eventSummary(events))

	return nil
}

// PublishCreated sends a product created event
func (p *ProductEventPublisher) PublishCreated(ctx context.Context, event *catalog.ProductCreatedEvent) error {
	return p.Publish(ctx, event)
}

// PublishUpdated sends a product updated event
func (p *ProductEventPublisher) PublishUpdated(ctx context.Context, event *catalog.ProductUpdatedEvent) error {
	return p.Publish(ctx, event)
}

// PublishDeleted sends a product deleted event
func (p *ProductEventPublisher) PublishDeleted(ctx context.Context, event *catalog.ProductDeletedEvent) error {
	return p.Publish(ctx, event)
}

// PublishActivated sends a product activated event
func (p *ProductEventPublisher) PublishActivated(ctx context.Context, event *catalog.ProductActivatedEvent) error {
	return p.Publish(ctx, event)
}

// PublishDeactivated sends a product deactivated event
func (p *ProductEventPublisher) PublishDeactivated(ctx context.Context, event *catalog.ProductDeactivatedEvent) error {
	return p.Publish(ctx, event)
}

// send runs in the background with its own deadline, detached from the
// caller's context so a finished request does not cancel the delivery.
func (p *ProductEventPublisher) send(messages []kafka.Message, summary []zap.Field) {
	defer p.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	for i := range messages {
		if err := p.producer.WriteMessage(ctx, messages[i]); err != nil {
			p.logger.Error("failed to deliver product event",
				append(summary, zap.Int("message_index", i), zap.Error(err))...,
			)
			return
		}
	}

	p.logger.Info("product events delivered", summary...)
}

// Close waits for in-flight sends and closes the producer
func (p *ProductEventPublisher) Close() error {
	p.wg.Wait()
	return p.producer.Close()
}

func eventSummary(events []shared.DomainEvent) []zap.Field {
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return []zap.Field{
		zap.Strings("event_types", types),
		zap.String("aggregate_id", events[0].AggregateID().String()),
	}
}

// Ensure ProductEventPublisher implements shared.EventPublisher
var _ shared.EventPublisher = (*ProductEventPublisher)(nil)
