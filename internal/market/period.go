package market

import "github.com/trogers1052/stock-dashboard/internal/alphavantage"

// DefaultPeriod is used when a request names no period.
const DefaultPeriod = "1M"

// PeriodSpec describes how a period label is served.
type PeriodSpec struct {
	Granularity alphavantage.Granularity
	// MaxDays is the maximum age of a bar in whole days; zero means unbounded.
	MaxDays int
}

var periods = map[string]PeriodSpec{
	"1D": {Granularity: alphavantage.Intraday, MaxDays: 1},
	"1W": {Granularity: alphavantage.Intraday, MaxDays: 7},
	"1M": {Granularity: alphavantage.Daily, MaxDays: 30},
	"3M": {Granularity: alphavantage.Daily, MaxDays: 90},
	"6M": {Granularity: alphavantage.Weekly, MaxDays: 180},
	"1Y": {Granularity: alphavantage.Weekly, MaxDays: 365},
	"5Y": {Granularity: alphavantage.Weekly, MaxDays: 1825},
}

// Periods lists the supported period labels in ascending length.
var Periods = []string{"1D", "1W", "1M", "3M", "6M", "1Y", "5Y"}

// LookupPeriod returns the settings for a label. Unknown labels get the weekly series
// without an age cutoff.
func LookupPeriod(label string) (PeriodSpec, bool) {
	spec, ok := periods[label]
	if !ok {
		return PeriodSpec{Granularity: alphavantage.Weekly}, false
	}
	return spec, true
}
