package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/trogers1052/stock-dashboard/internal/alphavantage"
	"github.com/trogers1052/stock-dashboard/internal/api"
	"github.com/trogers1052/stock-dashboard/internal/broadcast"
	"github.com/trogers1052/stock-dashboard/internal/config"
	"github.com/trogers1052/stock-dashboard/internal/database"
	"github.com/trogers1052/stock-dashboard/internal/docstore"
	"github.com/trogers1052/stock-dashboard/internal/kafka"
	"github.com/trogers1052/stock-dashboard/internal/market"
	"github.com/trogers1052/stock-dashboard/internal/stream"
	"github.com/trogers1052/stock-dashboard/internal/watchlist"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

// backingStore is a watchlist store that can report its health.
type backingStore interface {
	watchlist.Store
	Ping(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config) (backingStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		s, err := docstore.New(ctx, cfg.Mongo.URL, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close(context.Background()) }, nil
	default:
		db, err := database.New(cfg.Database.ConnectionString())
		if err != nil {
			return nil, nil, err
		}
		if err := db.MigrateUp(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	defer closeStore()
	log.Info().Str("driver", cfg.Store.Driver).Msg("watchlist store ready")

	provider := alphavantage.NewClient(cfg.Provider.APIKey,
		alphavantage.WithBaseURL(cfg.Provider.BaseURL),
		alphavantage.WithHTTPClient(alphavantage.NewHTTPClient(time.Duration(cfg.Provider.TimeoutSec)*time.Second)),
		alphavantage.WithMaxConcurrency(cfg.Provider.MaxConcurrency),
	)
	marketSvc := market.NewService(provider)

	var publisher watchlist.EventPublisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		publisher = producer
	}
	watchlistSvc := watchlist.NewService(store, publisher)

	var quotes api.QuotePublisher
	var quoteStream *stream.Publisher
	if cfg.Redis.Enabled {
		quoteStream = stream.NewPublisher(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer quoteStream.Close()
		if err := quoteStream.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, quotes will not be streamed until it recovers")
		}
		quotes = quoteStream
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Kafka.Enabled {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.CommandTopic, cfg.Kafka.GroupID, watchlistSvc)
		g.Go(func() error {
			return consumer.Start(gctx)
		})
	}

	if cfg.Broadcast.Cron != "" && quoteStream != nil {
		b := broadcast.New(gctx, watchlistSvc, marketSvc, quoteStream)
		if err := b.Register(cfg.Broadcast.Cron); err != nil {
			return err
		}
		b.Start()
		g.Go(func() error {
			<-gctx.Done()
			b.Stop()
			return nil
		})
	}

	handler := api.NewHandler(marketSvc, watchlistSvc, quotes, store)
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewServerHandler(handler),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
