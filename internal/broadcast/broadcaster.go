// Package broadcast periodically pushes a fresh quote for every watchlist symbol
// to the quote stream.
package broadcast

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// SourceBroadcast tags quotes published by the scheduled job.
const SourceBroadcast = "broadcast"

// WatchlistLister returns the current watchlist.
type WatchlistLister interface {
	List(ctx context.Context) ([]models.WatchlistEntry, error)
}

// QuoteFetcher returns the latest quote for a symbol.
type QuoteFetcher interface {
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
}

// QuotePublisher sends a quote to subscribers.
type QuotePublisher interface {
	PublishQuote(ctx context.Context, quote *models.Quote, source string) error
}

// Broadcaster runs the quote broadcast on a cron schedule.
type Broadcaster struct {
	cron      *cron.Cron
	ctx       context.Context
	watchlist WatchlistLister
	quotes    QuoteFetcher
	publisher QuotePublisher
}

// New creates a Broadcaster. Jobs run with ctx and stop issuing requests once it is cancelled.
func New(ctx context.Context, wl WatchlistLister, quotes QuoteFetcher, pub QuotePublisher) *Broadcaster {
	return &Broadcaster{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		ctx:       ctx,
		watchlist: wl,
		quotes:    quotes,
		publisher: pub,
	}
}

// Register schedules the broadcast. schedule uses the six-field cron format with seconds.
func (b *Broadcaster) Register(schedule string) error {
	if _, err := b.cron.AddFunc(schedule, func() { b.RunOnce(b.ctx) }); err != nil {
		return fmt.Errorf("register broadcast task: %w", err)
	}
	return nil
}

// Start starts the scheduler.
func (b *Broadcaster) Start() {
	b.cron.Start()
	log.Info().Msg("quote broadcaster started")
}

// Stop stops the scheduler and waits for a running broadcast to finish.
func (b *Broadcaster) Stop() {
	<-b.cron.Stop().Done()
	log.Info().Msg("quote broadcaster stopped")
}

// RunOnce publishes one quote per watchlist symbol and returns how many were sent.
// Per-symbol failures are logged and skipped.
func (b *Broadcaster) RunOnce(ctx context.Context) int {
	entries, err := b.watchlist.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("broadcast: failed to list watchlist")
		return 0
	}

	sent := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}

		quote, err := b.quotes.Quote(ctx, entry.Symbol)
		if err != nil {
			log.Warn().Err(err).Str("symbol", entry.Symbol).Msg("broadcast: quote unavailable")
			continue
		}
		if err := b.publisher.PublishQuote(ctx, quote, SourceBroadcast); err != nil {
			log.Error().Err(err).Str("symbol", entry.Symbol).Msg("broadcast: publish failed")
			continue
		}
		sent++
	}

	log.Debug().Int("sent", sent).Int("symbols", len(entries)).Msg("broadcast complete")
	return sent
}
