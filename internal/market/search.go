package market

import (
	"context"

	"github.com/trogers1052/stock-dashboard/internal/alphavantage"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// MaxSearchResults caps the number of matches returned by Search.
const MaxSearchResults = 10

// Search looks up symbols matching query.
func (s *Service) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	payload, err := s.fetcher.Fetch(ctx, alphavantage.SymbolSearch(query))
	if err != nil {
		return nil, err
	}
	return FormatSearch(payload), nil
}

// FormatSearch maps the bestMatches section of a SYMBOL_SEARCH payload.
func FormatSearch(payload alphavantage.Payload) []models.SearchResult {
	results := []models.SearchResult{}
	matches, ok := payload["bestMatches"].([]any)
	if !ok {
		return results
	}

	for _, m := range matches {
		if len(results) == MaxSearchResults {
			break
		}
		match, ok := m.(map[string]any)
		if !ok {
			continue
		}
		r := models.SearchResult{}
		r.Symbol, _ = stringField(match, "1. symbol")
		r.Name, _ = stringField(match, "2. name")
		r.Type, _ = stringField(match, "3. type")
		r.Region, _ = stringField(match, "4. region")
		r.Currency, _ = stringField(match, "8. currency")
		results = append(results, r)
	}
	return results
}
