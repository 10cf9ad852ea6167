package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/trogers1052/stock-dashboard/internal/alphavantage"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// Quote fetches and formats the latest quote for symbol.
func (s *Service) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	payload, err := s.fetcher.Fetch(ctx, alphavantage.GlobalQuote(symbol))
	if err != nil {
		return nil, err
	}
	return FormatQuote(symbol, payload)
}

// FormatQuote maps a GLOBAL_QUOTE payload onto a Quote. Missing or malformed numbers
// become zero; only a missing quote section is an error.
func FormatQuote(symbol string, payload alphavantage.Payload) (*models.Quote, error) {
	raw, ok := payload["Global Quote"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("stock quote %w", ErrNotFound)
	}

	q := &models.Quote{
		Symbol:        strings.ToUpper(symbol),
		Price:         floatOrZero(raw, "05. price"),
		Change:        floatOrZero(raw, "09. change"),
		ChangePercent: "0",
		Volume:        intOrZero(raw, "06. volume"),
		PreviousClose: floatOrZero(raw, "08. previous close"),
		Open:          floatOrZero(raw, "02. open"),
		High:          floatOrZero(raw, "03. high"),
		Low:           floatOrZero(raw, "04. low"),
	}
	if v, ok := stringField(raw, "01. symbol"); ok {
		q.Symbol = v
	}
	if v, ok := stringField(raw, "07. latest trading day"); ok {
		q.LatestTradingDay = v
	}
	if v, ok := stringField(raw, "10. change percent"); ok {
		q.ChangePercent = strings.ReplaceAll(v, "%", "")
	}
	return q, nil
}
