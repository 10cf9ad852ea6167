package market

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/trogers1052/stock-dashboard/internal/models"
	"golang.org/x/sync/errgroup"
)

// MaxComparisonSymbols is the largest number of distinct symbols a comparison accepts.
const MaxComparisonSymbols = 5

// ParseSymbols splits a comma-separated list, trimming, uppercasing and dropping empty
// and repeated entries. Order of first appearance is kept.
func ParseSymbols(raw string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		sym := strings.ToUpper(strings.TrimSpace(part))
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}

// Compare resolves the history of every symbol for the same period. A symbol whose
// resolution fails gets an empty series; the comparison itself still succeeds.
func (s *Service) Compare(ctx context.Context, symbols []string, period string) (*models.Comparison, error) {
	if len(symbols) > MaxComparisonSymbols {
		return nil, ErrTooManySymbols
	}

	result := &models.Comparison{
		Symbols: symbols,
		Period:  period,
		Data:    make(map[string][]models.Bar, len(symbols)),
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(MaxComparisonSymbols)
	for _, symbol := range symbols {
		g.Go(func() error {
			bars := []models.Bar{}
			series, err := s.Historical(ctx, symbol, period)
			if err != nil {
				log.Warn().Err(err).Str("symbol", symbol).Str("period", period).
					Msg("comparison: historical data unavailable")
			} else {
				bars = series.Data
			}

			mu.Lock()
			result.Data[symbol] = bars
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}
