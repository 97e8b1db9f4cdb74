package messaging

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer writes messages to a Kafka topic
type Producer interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// Consumer reads messages from a Kafka topic
type Consumer interface {
	ReadMessage(ctx context.Context) (*kafka.Message, error)
	Close() error
}

// KafkaProducer is a Producer backed by a kafka-go Writer
type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer creates a producer for the given brokers and topic
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:  kafka.TCP(brokers...),
			Topic: topic,
			// Hash keeps all events for one product on one partition,
			// preserving per-product ordering.
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			BatchSize:    100,
		},
	}
}

// WriteMessage writes a single message
func (p *KafkaProducer) WriteMessage(ctx context.Context, msg kafka.Message) error {
	return p.writer.WriteMessages(ctx, msg)
}

// Close closes the underlying writer
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// KafkaConsumer is a Consumer backed by a kafka-go Reader
type KafkaConsumer struct {
	reader *kafka.Reader
}

// NewKafkaConsumer creates a consumer for the given brokers, topic and group
func NewKafkaConsumer(brokers []string, topic, groupID string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
	}
}

// ReadMessage blocks until the next message arrives or the context is done
func (c *KafkaConsumer) ReadMessage(ctx context.Context) (*kafka.Message, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Close closes the underlying reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

var (
	_ Producer = (*KafkaProducer)(nil)
	_ Consumer = (*KafkaConsumer)(nil)
)
