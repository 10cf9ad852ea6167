// Package market reshapes provider payloads into quotes, historical series,
// comparisons and search results.
package market

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/trogers1052/stock-dashboard/internal/alphavantage"
)

var (
	// ErrNotFound is returned when the provider payload lacks the expected section.
	ErrNotFound = errors.New("not found")
	// ErrTooManySymbols is returned when a comparison asks for more than MaxComparisonSymbols.
	ErrTooManySymbols = errors.New("maximum 5 symbols allowed for comparison")
)

// Fetcher issues provider queries. *alphavantage.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, params url.Values) (alphavantage.Payload, error)
}

// Service answers market data requests by querying the provider.
type Service struct {
	fetcher Fetcher
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for look-back filtering.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new market data Service.
func NewService(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher: fetcher,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
