package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// Producer handles publishing watchlist events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishWatchlistAdded publishes a watchlist added event
func (p *Producer) PublishWatchlistAdded(ctx context.Context, entry *models.WatchlistEntry) error {
	event := newWatchlistEvent(models.EventWatchlistAdded, entry.Symbol, entry)
	return p.publish(ctx, entry.Symbol, event)
}

// PublishWatchlistRemoved publishes a watchlist removed event
func (p *Producer) PublishWatchlistRemoved(ctx context.Context, symbol string) error {
	event := newWatchlistEvent(models.EventWatchlistRemoved, symbol, nil)
	return p.publish(ctx, symbol, event)
}

func newWatchlistEvent(eventType, symbol string, entry *models.WatchlistEntry) models.WatchlistEvent {
	return models.WatchlistEvent{
		EventType: eventType,
		Entry:     entry,
		Symbol:    symbol,
		Timestamp: time.Now().UTC(),
	}
}

func (p *Producer) publish(ctx context.Context, key string, event models.WatchlistEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
