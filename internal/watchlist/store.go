// Package watchlist manages the single global list of followed symbols.
package watchlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

var (
	// ErrDuplicate is returned when the symbol is already on the watchlist.
	ErrDuplicate = errors.New("stock already in watchlist")
	// ErrNotFound is returned when removing a symbol that is not on the watchlist.
	ErrNotFound = errors.New("stock not found in watchlist")
	// ErrEmptySymbol is returned when a symbol is blank after trimming.
	ErrEmptySymbol = errors.New("symbol is required")
)

// Store persists watchlist entries. Implementations enforce one entry per symbol.
//
//go:generate mockgen -package=watchlist_test -destination=mock_store_test.go -source=store.go Store
type Store interface {
	Exists(ctx context.Context, symbol string) (bool, error)
	Insert(ctx context.Context, symbol, name string) (*models.WatchlistEntry, error)
	Delete(ctx context.Context, symbol string) error
	List(ctx context.Context) ([]models.WatchlistEntry, error)
}

// NormalizeSymbol trims and uppercases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NewEntry builds an entry with a fresh id and the current time.
func NewEntry(symbol, name string) *models.WatchlistEntry {
	return &models.WatchlistEntry{
		ID:        uuid.NewString(),
		Symbol:    NormalizeSymbol(symbol),
		Name:      name,
		AddedDate: time.Now().UTC().Truncate(time.Millisecond),
	}
}
