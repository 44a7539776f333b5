package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// Quote is a live market snapshot for one symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name,omitempty"`
	Price         float64   `json:"price"`
	PreviousClose float64   `json:"previousClose,omitempty"`
	Change        float64   `json:"change"` // percent vs previous close
	High          float64   `json:"high,omitempty"`
	Low           float64   `json:"low,omitempty"`
	Open          float64   `json:"open,omitempty"`
	Volume        float64   `json:"volume"`
	Currency      string    `json:"currency,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
