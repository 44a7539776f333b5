package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockScout/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public chart API.
type YahooFetcher struct {
	Client *http.Client
	Suffix string // appended to every symbol, e.g. ".BA" for BYMA tickers
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy
// support and ticker suffix.
func NewYahooFetcher(suffix, proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Suffix: suffix,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	return symbol + f.Suffix
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				LongName             string  `json:"longName"`
				ShortName            string  `json:"shortName"`
				Currency             string  `json:"currency"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				PreviousClose        float64 `json:"previousClose"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketOpen    float64 `json:"regularMarketOpen"`
				RegularMarketVolume  float64 `json:"regularMarketVolume"`
				RegularMarketTime    int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) fetchChart(symbol, interval, rng string) (*yahooChart, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	return &chart, nil
}

// FetchCloses returns the daily closing prices for the last `days` days,
// oldest first, null entries removed.
func (f *YahooFetcher) FetchCloses(symbol string, days int) ([]float64, error) {
	chart, err := f.fetchChart(symbol, "1d", fmt.Sprintf("%dd", days))
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data for %s", symbol)
	}
	raw := result.Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, v := range raw {
		if v == nil {
			continue
		}
		closes = append(closes, toFloat(v))
	}
	return closes, nil
}

// FetchHistory returns daily OHLCV bars for the last `days` days, oldest
// first, with holiday null bars dropped.
func (f *YahooFetcher) FetchHistory(symbol string, days int) ([]model.OHLCV, error) {
	chart, err := f.fetchChart(symbol, "1d", fmt.Sprintf("%dd", days))
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 || len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no history for %s", symbol)
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// FetchQuote returns a live snapshot built from the intraday chart,
// falling back to the chart meta when no intraday closes are present.
func (f *YahooFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	chart, err := f.fetchChart(symbol, "1m", "1d")
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	meta := result.Meta

	price := meta.RegularMarketPrice
	ts := time.Unix(meta.RegularMarketTime, 0)
	if len(result.Indicators.Quote) > 0 && len(result.Timestamp) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] != nil {
				price = toFloat(closes[i])
				ts = time.Unix(result.Timestamp[i], 0)
				break
			}
		}
	}
	if price == 0 {
		return nil, fmt.Errorf("yahoo: no price for %s", symbol)
	}

	previousClose := meta.PreviousClose
	if previousClose == 0 {
		previousClose = meta.ChartPreviousClose
	}
	change := 0.0
	if previousClose != 0 {
		change = math.Round((price-previousClose)/previousClose*100*100) / 100
	}

	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	return &model.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         price,
		PreviousClose: previousClose,
		Change:        change,
		High:          meta.RegularMarketDayHigh,
		Low:           meta.RegularMarketDayLow,
		Open:          meta.RegularMarketOpen,
		Volume:        meta.RegularMarketVolume,
		Currency:      meta.Currency,
		Timestamp:     ts,
	}, nil
}
