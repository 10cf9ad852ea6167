package market

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// stringField returns m[key] when it is a string.
func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// parseFloat parses a provider number. Provider values are decimal strings; NaN and
// values outside the float64 range are rejected.
func parseFloat(s string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// parseInt parses a provider integer such as a volume. Values outside int64 are rejected.
func parseInt(s string) (int64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	n := d.IntPart()
	if !d.Equal(decimal.NewFromInt(n)) {
		return 0, false
	}
	return n, true
}

func floatOrZero(m map[string]any, key string) float64 {
	s, ok := stringField(m, key)
	if !ok {
		return 0
	}
	f, _ := parseFloat(s)
	return f
}

func intOrZero(m map[string]any, key string) int64 {
	s, ok := stringField(m, key)
	if !ok {
		return 0
	}
	n, _ := parseInt(s)
	return n
}
