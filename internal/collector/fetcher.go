package collector

import "StockScout/internal/model"

// Fetcher defines the interface for fetching market data. Implementations
// own retries, timeouts and provider quirks; callers receive clean series
// (oldest first, nulls removed) or an error.
type Fetcher interface {
	FetchCloses(symbol string, days int) ([]float64, error)
	FetchHistory(symbol string, days int) ([]model.OHLCV, error)
	FetchQuote(symbol string) (*model.Quote, error)
	Name() string
}
