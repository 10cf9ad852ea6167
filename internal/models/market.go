package models

import "time"

// Quote is a normalized real-time quote for a stock
type Quote struct {
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	Change           float64 `json:"change"`
	ChangePercent    string  `json:"change_percent"`
	Volume           int64   `json:"volume"`
	LatestTradingDay string  `json:"latest_trading_day"`
	PreviousClose    float64 `json:"previous_close"`
	Open             float64 `json:"open"`
	High             float64 `json:"high"`
	Low              float64 `json:"low"`
}

// Bar represents one OHLCV data point of a historical series
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// HistoricalSeries is the resolved price history of one symbol for a period
type HistoricalSeries struct {
	Symbol string `json:"symbol"`
	Period string `json:"period"`
	Data   []Bar  `json:"data"`
}

// Comparison holds historical series for several symbols over the same period
type Comparison struct {
	Symbols []string         `json:"symbols"`
	Period  string           `json:"period"`
	Data    map[string][]Bar `json:"data"`
}

// QuoteSnapshot is a quote stamped with the time it was observed, as published to subscribers
type QuoteSnapshot struct {
	Quote
	Source     string    `json:"source"`
	ReceivedAt time.Time `json:"received_at"`
}
