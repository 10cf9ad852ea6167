package market

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"strings"
	"time"

	"github.com/trogers1052/stock-dashboard/internal/alphavantage"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// MaxBars caps the number of bars returned for a series.
const MaxBars = 200

// Historical resolves the price history of symbol for a period label.
func (s *Service) Historical(ctx context.Context, symbol, period string) (*models.HistoricalSeries, error) {
	spec, _ := LookupPeriod(period)

	payload, err := s.fetcher.Fetch(ctx, alphavantage.TimeSeries(symbol, spec.Granularity))
	if err != nil {
		return nil, err
	}

	series, ok := findTimeSeries(payload)
	if !ok {
		return nil, fmt.Errorf("historical data %w", ErrNotFound)
	}

	return &models.HistoricalSeries{
		Symbol: strings.ToUpper(symbol),
		Period: period,
		Data:   ResolveBars(series, spec, s.now()),
	}, nil
}

// findTimeSeries returns the first payload section whose key names a time series.
func findTimeSeries(payload alphavantage.Payload) (map[string]any, bool) {
	for key, v := range payload {
		if !strings.Contains(key, "Time Series") {
			continue
		}
		series, ok := v.(map[string]any)
		return series, ok
	}
	return nil, false
}

// ResolveBars turns a provider series into bars no older than the period allows,
// ascending by date and truncated to the most recent MaxBars.
func ResolveBars(series map[string]any, spec PeriodSpec, now time.Time) []models.Bar {
	bars := make([]models.Bar, 0, len(series))
	for c := range candidates(series, wallClock(now)) {
		if spec.MaxDays > 0 && c.daysAgo > spec.MaxDays {
			continue
		}
		bars = append(bars, c.bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })

	if len(bars) > MaxBars {
		bars = bars[len(bars)-MaxBars:]
	}
	return bars
}

// wallClock moves now's local date and time into UTC so day counts are calendar
// differences, unaffected by DST shifts in now's zone.
func wallClock(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
}

type candidate struct {
	bar     models.Bar
	daysAgo int
}

// candidates yields the parseable entries of a series, aged against now, a UTC wall
// clock. Entries with an unparseable date or missing/malformed values are skipped.
func candidates(series map[string]any, now time.Time) iter.Seq[candidate] {
	return func(yield func(candidate) bool) {
		for key, v := range series {
			c, ok := parseCandidate(key, v, now)
			if !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

func parseCandidate(key string, v any, now time.Time) (candidate, bool) {
	datePart, _, _ := strings.Cut(key, " ")
	date, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return candidate{}, false
	}

	values, ok := v.(map[string]any)
	if !ok {
		return candidate{}, false
	}
	bar, ok := parseBar(key, values)
	if !ok {
		return candidate{}, false
	}

	return candidate{
		bar:     bar,
		daysAgo: int(now.Sub(date) / (24 * time.Hour)),
	}, true
}

func parseBar(date string, values map[string]any) (models.Bar, bool) {
	bar := models.Bar{Date: date}
	fields := []struct {
		key string
		dst *float64
	}{
		{"1. open", &bar.Open},
		{"2. high", &bar.High},
		{"3. low", &bar.Low},
		{"4. close", &bar.Close},
	}
	for _, f := range fields {
		s, ok := stringField(values, f.key)
		if !ok {
			return models.Bar{}, false
		}
		if *f.dst, ok = parseFloat(s); !ok {
			return models.Bar{}, false
		}
	}

	s, ok := stringField(values, "5. volume")
	if !ok {
		return models.Bar{}, false
	}
	if bar.Volume, ok = parseInt(s); !ok {
		return models.Bar{}, false
	}
	return bar, true
}
