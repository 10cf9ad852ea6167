package watchlist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/watchlist"
	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	added   []string
	removed []string
	err     error
}

func (p *recordingPublisher) PublishWatchlistAdded(_ context.Context, entry *models.WatchlistEntry) error {
	p.added = append(p.added, entry.Symbol)
	return p.err
}

func (p *recordingPublisher) PublishWatchlistRemoved(_ context.Context, symbol string) error {
	p.removed = append(p.removed, symbol)
	return p.err
}

func TestServiceAdd(t *testing.T) {
	t.Run("uppercases and publishes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockStore(ctrl)
		pub := &recordingPublisher{}
		svc := watchlist.NewService(store, pub)

		entry := watchlist.NewEntry("AAPL", "Apple Inc.")
		store.EXPECT().Insert(gomock.Any(), "AAPL", "Apple Inc.").Return(entry, nil)

		got, err := svc.Add(t.Context(), " aapl ", "Apple Inc.")
		require.NoError(t, err)
		assert.Equal(t, "AAPL", got.Symbol)
		assert.Equal(t, []string{"AAPL"}, pub.added)
	})

	t.Run("duplicate comes from a single insert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockStore(ctrl)
		pub := &recordingPublisher{}
		svc := watchlist.NewService(store, pub)

		// No Exists expectation: an extra lookup fails the mock.
		store.EXPECT().Insert(gomock.Any(), "MSFT", "").Return(nil, watchlist.ErrDuplicate).Times(1)

		_, err := svc.Add(t.Context(), "msft", "")
		assert.ErrorIs(t, err, watchlist.ErrDuplicate)
		assert.Empty(t, pub.added)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockStore(ctrl)
		svc := watchlist.NewService(store, nil)

		store.EXPECT().Insert(gomock.Any(), "MSFT", "").Return(nil, errors.New("connection reset"))

		_, err := svc.Add(t.Context(), "MSFT", "")
		require.Error(t, err)
		assert.NotErrorIs(t, err, watchlist.ErrDuplicate)
	})

	t.Run("empty symbol", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := watchlist.NewService(NewMockStore(ctrl), nil)

		_, err := svc.Add(t.Context(), "   ", "")
		assert.ErrorIs(t, err, watchlist.ErrEmptySymbol)
	})

	t.Run("publish failure does not fail the add", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockStore(ctrl)
		pub := &recordingPublisher{err: errors.New("broker down")}
		svc := watchlist.NewService(store, pub)

		store.EXPECT().Insert(gomock.Any(), "TSLA", "").Return(watchlist.NewEntry("TSLA", ""), nil)

		_, err := svc.Add(t.Context(), "TSLA", "")
		assert.NoError(t, err)
	})
}

func TestServiceRemove(t *testing.T) {
	t.Run("removes and publishes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockStore(ctrl)
		pub := &recordingPublisher{}
		svc := watchlist.NewService(store, pub)

		store.EXPECT().Delete(gomock.Any(), "AAPL").Return(nil)

		require.NoError(t, svc.Remove(t.Context(), "aapl"))
		assert.Equal(t, []string{"AAPL"}, pub.removed)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockStore(ctrl)
		pub := &recordingPublisher{}
		svc := watchlist.NewService(store, pub)

		store.EXPECT().Delete(gomock.Any(), "ZZZZ").Return(watchlist.ErrNotFound)

		err := svc.Remove(t.Context(), "zzzz")
		assert.ErrorIs(t, err, watchlist.ErrNotFound)
		assert.Empty(t, pub.removed)
	})
}

func TestServiceList(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	svc := watchlist.NewService(store, nil)

	store.EXPECT().List(gomock.Any()).Return(nil, nil)

	entries, err := svc.List(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestNewEntry(t *testing.T) {
	a := watchlist.NewEntry(" nvda", "NVIDIA")
	b := watchlist.NewEntry("NVDA", "NVIDIA")

	assert.Equal(t, "NVDA", a.Symbol)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.AddedDate.IsZero())
}
