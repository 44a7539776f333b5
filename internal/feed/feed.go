package feed

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"StockScout/internal/model"
)

// Feed maintains a websocket connection to the Primary Remarkets
// market-data stream and keeps a QuoteCache fresh with the latest quote
// per subscribed symbol. The collector falls back to HTTP quotes whenever
// the cache misses, so the feed is strictly optional.
type Feed struct {
	URL     string
	Market  string
	Symbols []string
	Cache   *QuoteCache
}

// NewFeed creates a feed for the given endpoint and symbols.
func NewFeed(url, market string, symbols []string, cache *QuoteCache) *Feed {
	return &Feed{URL: url, Market: market, Symbols: symbols, Cache: cache}
}

type subscribeMessage struct {
	Type   string `json:"type"`
	Symbol string `json:"symbol"`
	Market string `json:"market"`
}

type quoteMessage struct {
	Type      string  `json:"type"`
	Symbol    string  `json:"symbol"`
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Last      float64 `json:"last"`
	Price     float64 `json:"price"`
	Close     float64 `json:"close"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Volume    float64 `json:"volume"`
	Change    float64 `json:"change"`
	Timestamp int64   `json:"timestamp"`
}

// Run connects and consumes quotes until ctx is cancelled, reconnecting
// with exponential backoff on any failure.
func (f *Feed) Run(ctx context.Context) {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return
		}
		if err := f.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] live feed disconnected: %v, retrying in %v", err, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return
	}
}

func (f *Feed) consume(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, f.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Printf("[INFO] connected live feed %s (%d symbols)", f.URL, len(f.Symbols))

	for _, sym := range f.Symbols {
		msg := subscribeMessage{Type: "subscribe", Symbol: strings.ToUpper(sym), Market: f.Market}
		if err := conn.WriteJSON(msg); err != nil {
			return err
		}
	}

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(20 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg quoteMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("[WARN] decode feed message: %v", err)
			continue
		}
		if msg.Type != "quote" && msg.Type != "trade" {
			continue
		}
		q, ok := msg.toQuote()
		if !ok {
			continue
		}
		f.Cache.Set(q)
	}
}

func (m *quoteMessage) toQuote() (model.Quote, bool) {
	symbol := m.Symbol
	if symbol == "" {
		symbol = m.Ticker
	}
	price := m.Last
	if price == 0 {
		price = m.Price
	}
	if price == 0 {
		price = m.Close
	}
	if symbol == "" || price == 0 {
		return model.Quote{}, false
	}

	ts := time.Now()
	if m.Timestamp > 0 {
		ts = time.Unix(m.Timestamp, 0)
	}
	return model.Quote{
		Symbol:    symbol,
		Name:      m.Name,
		Price:     price,
		Change:    m.Change,
		High:      m.High,
		Low:       m.Low,
		Open:      m.Open,
		Volume:    m.Volume,
		Currency:  "ARS",
		Timestamp: ts,
	}, true
}
