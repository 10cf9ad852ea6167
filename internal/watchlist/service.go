package watchlist

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// EventPublisher announces watchlist changes. *kafka.Producer implements it.
type EventPublisher interface {
	PublishWatchlistAdded(ctx context.Context, entry *models.WatchlistEntry) error
	PublishWatchlistRemoved(ctx context.Context, symbol string) error
}

// Service applies watchlist operations against a Store.
type Service struct {
	store     Store
	publisher EventPublisher
}

// NewService creates a watchlist Service. publisher may be nil.
func NewService(store Store, publisher EventPublisher) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
	}
}

// Add puts symbol on the watchlist. Duplicates are detected by the store.
func (s *Service) Add(ctx context.Context, symbol, name string) (*models.WatchlistEntry, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	entry, err := s.store.Insert(ctx, symbol, name)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishWatchlistAdded(ctx, entry); err != nil {
			log.Error().Err(err).Str("symbol", symbol).Msg("failed to publish watchlist added event")
		}
	}
	return entry, nil
}

// Remove takes symbol off the watchlist.
func (s *Service) Remove(ctx context.Context, symbol string) error {
	symbol = NormalizeSymbol(symbol)
	if err := s.store.Delete(ctx, symbol); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishWatchlistRemoved(ctx, symbol); err != nil {
			log.Error().Err(err).Str("symbol", symbol).Msg("failed to publish watchlist removed event")
		}
	}
	return nil
}

// List returns every entry on the watchlist.
func (s *Service) List(ctx context.Context) ([]models.WatchlistEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	return entries, nil
}
