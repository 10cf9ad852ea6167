package models

import "time"

// Watchlist event type constants
const (
	EventWatchlistAdded   = "WATCHLIST_ADDED"
	EventWatchlistRemoved = "WATCHLIST_REMOVED"
)

// Watchlist command constants
const (
	CommandAdd    = "ADD"
	CommandRemove = "REMOVE"
)

// WatchlistEntry represents a stock on the watchlist
type WatchlistEntry struct {
	ID        string    `json:"id" db:"id" bson:"_id"`
	Symbol    string    `json:"symbol" db:"symbol" bson:"symbol"`
	Name      string    `json:"name" db:"name" bson:"name"`
	AddedDate time.Time `json:"added_date" db:"added_date" bson:"added_date"`
}

// WatchlistEvent represents a Kafka event for watchlist changes
type WatchlistEvent struct {
	EventType string          `json:"event_type"`
	Entry     *WatchlistEntry `json:"entry,omitempty"`
	Symbol    string          `json:"symbol"`
	Timestamp time.Time       `json:"timestamp"`
}

// WatchlistCommand is a request from another service to change the watchlist
type WatchlistCommand struct {
	Command string `json:"command"`
	Symbol  string `json:"symbol"`
	Name    string `json:"name,omitempty"`
}

// SearchResult is a single symbol search match
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Region   string `json:"region"`
	Currency string `json:"currency"`
}
