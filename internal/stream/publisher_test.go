package stream_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/stream"
)

func TestPublisher(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	pub := stream.NewPublisher(addr, "", 0)
	t.Cleanup(func() { _ = pub.Close() })
	require.NoError(t, pub.Ping(ctx))

	reader := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = reader.Close() })

	sub := reader.Subscribe(ctx, stream.QuoteChannel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	quote := &models.Quote{Symbol: "AAPL", Price: 189.5, ChangePercent: "0.42", Volume: 1200}
	require.NoError(t, pub.PublishQuote(ctx, quote, "api"))

	t.Run("pubsub message", func(t *testing.T) {
		select {
		case msg := <-sub.Channel():
			var snapshot models.QuoteSnapshot
			require.NoError(t, json.Unmarshal([]byte(msg.Payload), &snapshot))
			assert.Equal(t, "AAPL", snapshot.Symbol)
			assert.InDelta(t, 189.5, snapshot.Price, 1e-9)
			assert.Equal(t, "api", snapshot.Source)
			assert.False(t, snapshot.ReceivedAt.IsZero())
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for pubsub message")
		}
	})

	t.Run("stream entry", func(t *testing.T) {
		entries, err := reader.XRange(ctx, stream.QuoteStream, "-", "+").Result()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "AAPL", entries[0].Values["symbol"])
	})
}
