package market_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-dashboard/internal/alphavantage"
	"github.com/trogers1052/stock-dashboard/internal/market"
)

func TestParseSymbols(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"simple", "AAPL,MSFT", []string{"AAPL", "MSFT"}},
		{"trims and uppercases", " aapl , msft ", []string{"AAPL", "MSFT"}},
		{"drops empties", "AAPL,,MSFT,", []string{"AAPL", "MSFT"}},
		{"dedupes in order", "msft,AAPL,MSFT,aapl", []string{"MSFT", "AAPL"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, market.ParseSymbols(tt.raw))
		})
	}
}

func TestServiceCompare(t *testing.T) {
	f := newFakeFetcher()
	for _, sym := range []string{"AAPL", "MSFT", "GOOG", "AMZN"} {
		f.set("TIME_SERIES_DAILY", sym, alphavantage.Payload{
			"Time Series (Daily)": dailySeries(10),
		})
	}
	f.fail("TIME_SERIES_DAILY", "BAD", alphavantage.ErrInvalidSymbol)
	svc := market.NewService(f, market.WithClock(func() time.Time { return fixedNow }))

	t.Run("failing symbol gets an empty series", func(t *testing.T) {
		symbols := []string{"AAPL", "MSFT", "GOOG", "AMZN", "BAD"}
		cmp, err := svc.Compare(t.Context(), symbols, "1M")
		require.NoError(t, err)

		assert.Equal(t, symbols, cmp.Symbols)
		assert.Equal(t, "1M", cmp.Period)
		require.Len(t, cmp.Data, 5)
		for _, sym := range symbols[:4] {
			assert.Len(t, cmp.Data[sym], 10, sym)
		}
		assert.NotNil(t, cmp.Data["BAD"])
		assert.Empty(t, cmp.Data["BAD"])
	})

	t.Run("more than five symbols is rejected", func(t *testing.T) {
		_, err := svc.Compare(t.Context(), []string{"A", "B", "C", "D", "E", "F"}, "1M")
		assert.ErrorIs(t, err, market.ErrTooManySymbols)
	})

	t.Run("no symbols", func(t *testing.T) {
		cmp, err := svc.Compare(t.Context(), []string{}, "1M")
		require.NoError(t, err)
		assert.Empty(t, cmp.Data)
	})
}
