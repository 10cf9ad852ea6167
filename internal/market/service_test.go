package market_test

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/trogers1052/stock-dashboard/internal/alphavantage"
)

// fakeFetcher answers provider queries from canned payloads keyed by function and symbol.
type fakeFetcher struct {
	mu       sync.Mutex
	payloads map[string]alphavantage.Payload
	errs     map[string]error
	calls    []url.Values
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		payloads: make(map[string]alphavantage.Payload),
		errs:     make(map[string]error),
	}
}

func fetchKey(function, symbol string) string {
	return function + ":" + symbol
}

func (f *fakeFetcher) set(function, symbol string, p alphavantage.Payload) {
	f.payloads[fetchKey(function, symbol)] = p
}

func (f *fakeFetcher) fail(function, symbol string, err error) {
	f.errs[fetchKey(function, symbol)] = err
}

func (f *fakeFetcher) Fetch(_ context.Context, params url.Values) (alphavantage.Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, params)

	symbol := params.Get("symbol")
	if symbol == "" {
		symbol = params.Get("keywords")
	}
	key := fetchKey(params.Get("function"), symbol)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if p, ok := f.payloads[key]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: no canned payload for %s", alphavantage.ErrInvalidSymbol, key)
}

func (f *fakeFetcher) lastCall() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}
