package collector

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"StockScout/internal/engine"
	"StockScout/internal/feed"
	"StockScout/internal/metrics"
	"StockScout/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Closes  map[string][]float64
	History map[string][]model.OHLCV
	Quotes  map[string]*model.Quote
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCloses(symbol string, days int) ([]float64, error) {
	if c, ok := m.Closes[symbol]; ok {
		return c, nil
	}
	return generateMockCloses(m.Price, days), nil
}

func (m *MockFetcher) FetchHistory(symbol string, days int) ([]model.OHLCV, error) {
	if h, ok := m.History[symbol]; ok {
		return h, nil
	}
	closes, _ := m.FetchCloses(symbol, days)
	return SyntheticHistory(closes), nil
}

func (m *MockFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	return &model.Quote{Symbol: symbol, Price: m.Price, Timestamp: time.Now()}, nil
}

func generateMockCloses(basePrice float64, count int) []float64 {
	closes := make([]float64, count)
	for i := 0; i < count; i++ {
		closes[i] = basePrice * (1 + float64(i-count/2)*0.001)
	}
	return closes
}

// SyntheticHistory derives OHLC bars from a close series when a provider
// only supplies closes: each bar opens at the previous close, with highs
// and lows jittered within one percent.
func SyntheticHistory(closes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, 0, len(closes))
	now := time.Now()
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		hi := open
		if c > hi {
			hi = c
		}
		lo := open
		if c < lo {
			lo = c
		}
		bars = append(bars, model.OHLCV{
			Time:  now.AddDate(0, 0, -(len(closes) - i)),
			Open:  open,
			High:  hi * (1 + rand.Float64()*0.01),
			Low:   lo * (1 - rand.Float64()*0.01),
			Close: c,
		})
	}
	return bars
}

// Collector orchestrates data fetching and evaluation for a symbol set.
type Collector struct {
	Fetcher     Fetcher
	Quotes      *feed.QuoteCache // optional live quote source
	Config      engine.Config
	HistoryDays int
}

// NewCollector creates a new Collector. quotes may be nil.
func NewCollector(fetcher Fetcher, quotes *feed.QuoteCache, cfg engine.Config, historyDays int) *Collector {
	if historyDays <= 0 {
		historyDays = 180
	}
	return &Collector{Fetcher: fetcher, Quotes: quotes, Config: cfg, HistoryDays: historyDays}
}

// Analyze fetches closes plus a quote for one symbol and scores it.
// Returns nil when the symbol cannot be evaluated; callers skip it.
func (c *Collector) Analyze(symbol string) *model.Evaluation {
	closes, err := c.Fetcher.FetchCloses(symbol, c.HistoryDays)
	if err != nil {
		log.Printf("[WARN] fetch closes for %s: %v", symbol, err)
		closes = nil
	}
	quote := c.resolveQuote(symbol)

	metrics.EvaluationsTotal.WithLabelValues(symbol).Inc()
	ev := engine.Evaluate(symbol, quote, closes, &c.Config)
	if ev != nil {
		metrics.RecommendationsTotal.WithLabelValues(string(ev.Recommendation)).Inc()
	}
	return ev
}

// AnalyzeAll evaluates every symbol concurrently. Each evaluation is an
// independent pure function over its own inputs, so the fan-out needs no
// locking; results keep the input order, with nil for skipped symbols.
func (c *Collector) AnalyzeAll(symbols []string) []*model.Evaluation {
	evals := make([]*model.Evaluation, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			evals[i] = c.Analyze(symbol)
		}(i, symbol)
	}
	wg.Wait()
	return evals
}

// resolveQuote prefers a fresh live-feed quote, then the HTTP provider.
// A missing quote is not an error: evaluation falls back to the series.
func (c *Collector) resolveQuote(symbol string) *model.Quote {
	if c.Quotes != nil {
		if q, ok := c.Quotes.Get(symbol); ok {
			return &q
		}
	}
	q, err := c.Fetcher.FetchQuote(symbol)
	if err != nil {
		log.Printf("[WARN] fetch quote for %s: %v", symbol, err)
		return nil
	}
	return q
}
