package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/watchlist"
)

// WatchlistManager applies watchlist changes. *watchlist.Service implements it.
type WatchlistManager interface {
	Add(ctx context.Context, symbol, name string) (*models.WatchlistEntry, error)
	Remove(ctx context.Context, symbol string) error
}

// Consumer applies watchlist commands published by other services.
// Commands are idempotent: adding a symbol already on the list or removing
// one that is absent is logged and skipped.
type Consumer struct {
	reader  *kafka.Reader
	manager WatchlistManager
}

// NewConsumer creates a new Kafka consumer for watchlist commands
func NewConsumer(brokers []string, topic, groupID string, manager WatchlistManager) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader:  reader,
		manager: manager,
	}
}

// Start begins consuming messages until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	log.Info().Str("topic", c.reader.Config().Topic).Msg("starting kafka consumer")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("kafka consumer shutting down")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return c.reader.Close()
				}
				log.Error().Err(err).Msg("error reading message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				log.Error().Err(err).
					Int("partition", msg.Partition).
					Int64("offset", msg.Offset).
					Msg("error processing message")
			}
		}
	}
}

// processMessage handles a single Kafka message
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) error {
	log.Debug().
		Int("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Str("key", string(msg.Key)).
		Msg("received message")

	var cmd models.WatchlistCommand
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		return fmt.Errorf("failed to unmarshal watchlist command: %w", err)
	}

	symbol := watchlist.NormalizeSymbol(cmd.Symbol)
	if symbol == "" {
		return fmt.Errorf("watchlist command %q has no symbol", cmd.Command)
	}

	switch strings.ToUpper(cmd.Command) {
	case models.CommandAdd:
		_, err := c.manager.Add(ctx, symbol, cmd.Name)
		if errors.Is(err, watchlist.ErrDuplicate) {
			log.Info().Str("symbol", symbol).Msg("symbol already in watchlist, skipping")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", symbol, err)
		}
		log.Info().Str("symbol", symbol).Msg("added symbol from command")

	case models.CommandRemove:
		err := c.manager.Remove(ctx, symbol)
		if errors.Is(err, watchlist.ErrNotFound) {
			log.Info().Str("symbol", symbol).Msg("symbol not in watchlist, skipping")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to remove %s: %w", symbol, err)
		}
		log.Info().Str("symbol", symbol).Msg("removed symbol from command")

	default:
		log.Warn().Str("command", cmd.Command).Msg("ignoring unknown command")
	}

	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
