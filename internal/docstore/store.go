// Package docstore keeps the watchlist in a MongoDB collection.
package docstore

import (
	"context"
	"fmt"

	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/watchlist"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the name of the watchlist collection.
const Collection = "watchlist"

var _ watchlist.Store = (*Store)(nil)

// Store is a watchlist.Store backed by MongoDB.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New connects to uri, selects database and ensures the watchlist indexes exist.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	s := &Store{
		client: client,
		coll:   client.Database(database).Collection(Collection),
	}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "symbol", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("symbol_unique"),
		},
		{
			Keys:    bson.D{{Key: "added_date", Value: 1}},
			Options: options.Index().SetName("added_date"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create watchlist indexes: %w", err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Exists reports whether symbol is on the watchlist.
func (s *Store) Exists(ctx context.Context, symbol string) (bool, error) {
	filter := bson.M{"symbol": watchlist.NormalizeSymbol(symbol)}
	n, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check watchlist entry: %w", err)
	}
	return n > 0, nil
}

// Insert adds symbol to the watchlist. A symbol already present returns
// watchlist.ErrDuplicate.
func (s *Store) Insert(ctx context.Context, symbol, name string) (*models.WatchlistEntry, error) {
	entry := watchlist.NewEntry(symbol, name)

	exists, err := s.Exists(ctx, entry.Symbol)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, watchlist.ErrDuplicate
	}

	if _, err := s.coll.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, watchlist.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create watchlist entry: %w", err)
	}
	return entry, nil
}

// Delete removes symbol from the watchlist, returning watchlist.ErrNotFound when absent.
func (s *Store) Delete(ctx context.Context, symbol string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"symbol": watchlist.NormalizeSymbol(symbol)})
	if err != nil {
		return fmt.Errorf("failed to delete watchlist entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return watchlist.ErrNotFound
	}
	return nil
}

// List returns every entry, oldest first.
func (s *Store) List(ctx context.Context) ([]models.WatchlistEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_date", Value: 1}, {Key: "symbol", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}

	entries := []models.WatchlistEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode watchlist: %w", err)
	}
	return entries, nil
}
