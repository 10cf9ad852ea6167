package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/watchlist"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint failure.
const uniqueViolation = "23505"

var _ watchlist.Store = (*DB)(nil)

// Exists reports whether symbol is on the watchlist
func (db *DB) Exists(ctx context.Context, symbol string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM watchlist WHERE symbol = $1)`

	var exists bool
	if err := db.conn.GetContext(ctx, &exists, query, watchlist.NormalizeSymbol(symbol)); err != nil {
		return false, fmt.Errorf("failed to check watchlist entry: %w", err)
	}
	return exists, nil
}

// Insert adds symbol to the watchlist
func (db *DB) Insert(ctx context.Context, symbol, name string) (*models.WatchlistEntry, error) {
	entry := watchlist.NewEntry(symbol, name)

	exists, err := db.Exists(ctx, entry.Symbol)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, watchlist.ErrDuplicate
	}

	query := `
		INSERT INTO watchlist (id, symbol, name, added_date)
		VALUES (:id, :symbol, :name, :added_date)
	`
	if _, err := db.conn.NamedExecContext(ctx, query, entry); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, watchlist.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create watchlist entry: %w", err)
	}
	return entry, nil
}

// Delete removes symbol from the watchlist
func (db *DB) Delete(ctx context.Context, symbol string) error {
	query := `DELETE FROM watchlist WHERE symbol = $1`
	result, err := db.conn.ExecContext(ctx, query, watchlist.NormalizeSymbol(symbol))
	if err != nil {
		return fmt.Errorf("failed to delete watchlist entry: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return watchlist.ErrNotFound
	}
	return nil
}

// List returns all watchlist entries, oldest first
func (db *DB) List(ctx context.Context) ([]models.WatchlistEntry, error) {
	query := `
		SELECT id, symbol, name, added_date
		FROM watchlist
		ORDER BY added_date ASC, symbol ASC
	`
	entries := []models.WatchlistEntry{}
	if err := db.conn.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return entries, nil
}
