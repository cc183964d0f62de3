package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/kevin07696/settlement-ledger/internal/services/outbox"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Config for the ledger event writer
type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	MaxAttempts  int
}

// messageWriter is the subset of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes ledger outbox events to a Kafka topic keyed by shop account,
// so every event of one shop lands on the same partition in order.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

var _ outbox.Publisher = (*Publisher)(nil)

// NewPublisher builds a synchronous writer; the outbox marks a row sent only
// after the broker acknowledged it.
func NewPublisher(cfg Config, logger *zap.Logger) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka: topic is required")
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 10 * time.Millisecond
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		MaxAttempts:  cfg.MaxAttempts,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Compression:  kafkago.Snappy,
		Logger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Debug(fmt.Sprintf(msg, args...))
		}),
		ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error(fmt.Sprintf(msg, args...))
		}),
	}

	logger.Info("Kafka writer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
	)
	return newPublisher(writer, cfg.Topic, logger), nil
}

func newPublisher(w messageWriter, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{writer: w, topic: topic, logger: logger}
}

// Publish implements outbox.Publisher
func (p *Publisher) Publish(ctx context.Context, event outbox.Event) error {
	msg := kafkago.Message{
		Key:   []byte(event.ShopAccountID),
		Value: event.Payload,
		Time:  event.CreatedAt,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "aggregate_id", Value: []byte(event.AggregateID)},
		},
	}
	if msg.Time.IsZero() {
		msg.Time = time.Now()
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s to %s: %w", event.Type, p.topic, err)
	}
	p.logger.Debug("Published ledger event",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.String("shop_account_id", event.ShopAccountID),
	)
	return nil
}

// Close flushes and closes the writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
