// Package stream fans live quotes out over Redis Pub/Sub and a capped Redis stream.
// Nothing is read back; downstream consumers subscribe on their own.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

const (
	// QuoteChannel is the Pub/Sub channel live quotes are published on.
	QuoteChannel = "stockdash:quotes"
	// QuoteStream is the capped stream every published quote is appended to.
	QuoteStream = "stockdash:quotes:stream"
	// StreamMaxLen is the approximate number of entries kept in QuoteStream.
	StreamMaxLen = 1000
)

// Publisher writes quote snapshots to Redis
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a Publisher for the Redis server at addr
func NewPublisher(addr, password string, db int) *Publisher {
	return &Publisher{
		client: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			DialTimeout:  5 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

// Ping checks that Redis is reachable
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// PublishQuote sends a quote to the Pub/Sub channel and appends it to the stream
func (p *Publisher) PublishQuote(ctx context.Context, quote *models.Quote, source string) error {
	snapshot := models.QuoteSnapshot{
		Quote:      *quote,
		Source:     source,
		ReceivedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	if err := p.client.Publish(ctx, QuoteChannel, string(data)).Err(); err != nil {
		return fmt.Errorf("failed to publish to redis: %w", err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: QuoteStream,
		MaxLen: StreamMaxLen,
		Approx: true,
		ID:     "*",
		Values: map[string]any{
			"symbol": quote.Symbol,
			"data":   string(data),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to add to redis stream: %w", err)
	}

	return nil
}

// Close closes the Redis connection
func (p *Publisher) Close() error {
	return p.client.Close()
}
