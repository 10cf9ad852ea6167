package alphavantage

import (
	"net/url"
	"strings"
)

// Granularity is the time resolution of a historical series.
type Granularity int

const (
	// Intraday is hourly bars over the full available output.
	Intraday Granularity = iota
	// Daily is one bar per trading day over the full available output.
	Daily
	// Weekly is one bar per week.
	Weekly
)

func (g Granularity) String() string {
	switch g {
	case Intraday:
		return "intraday"
	case Daily:
		return "daily"
	default:
		return "weekly"
	}
}

// SymbolSearch builds the parameters for a keyword search.
func SymbolSearch(keywords string) url.Values {
	return url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {keywords},
	}
}

// GlobalQuote builds the parameters for a latest-quote request.
func GlobalQuote(symbol string) url.Values {
	return url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {strings.ToUpper(symbol)},
	}
}

// TimeSeries builds the parameters for a historical series at the given granularity.
func TimeSeries(symbol string, g Granularity) url.Values {
	params := url.Values{"symbol": {strings.ToUpper(symbol)}}
	switch g {
	case Intraday:
		params.Set("function", "TIME_SERIES_INTRADAY")
		params.Set("interval", "60min")
		params.Set("outputsize", "full")
	case Daily:
		params.Set("function", "TIME_SERIES_DAILY")
		params.Set("outputsize", "full")
	default:
		params.Set("function", "TIME_SERIES_WEEKLY")
	}
	return params
}
