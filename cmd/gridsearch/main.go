package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"StockScout/internal/backtest"
	"StockScout/internal/collector"
	"StockScout/internal/config"
	"StockScout/internal/engine"
	"StockScout/internal/model"
	"StockScout/internal/report"
)

func main() {
	log.SetFlags(log.LstdFlags)

	var (
		cfgPath  = flag.String("config", "configs/config.yaml", "config file path")
		top      = flag.Int("top", 20, "how many ranked configs to keep in the summary")
		extended = flag.Bool("extended", false, "use the finer-grained parameter grid")
		sample   = flag.Int("sample", 0, "randomly sample N configs instead of the full grid")
		hold     = flag.Int("hold", 30, "hold days per signal")
		outDir   = flag.String("out", "reports", "output directory")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	fetcher := collector.NewYahooFetcher(cfg.DataSource.SymbolSuffix, cfg.Proxy)
	syms := cfg.DataSource.Symbols

	// Fetch once; every grid cell reuses the same series and bars.
	closesBySym := make(map[string][]float64, len(syms))
	histories := make(map[string][]model.OHLCV, len(syms))
	for _, symbol := range syms {
		closes, err := fetcher.FetchCloses(symbol, cfg.DataSource.HistoryDays)
		if err != nil || len(closes) == 0 {
			log.Printf("[WARN] no close history for %s, skipping: %v", symbol, err)
			continue
		}
		closesBySym[symbol] = closes

		hist, err := fetcher.FetchHistory(symbol, cfg.DataSource.HistoryDays)
		if err != nil || len(hist) == 0 {
			hist = collector.SyntheticHistory(closes)
		}
		histories[symbol] = hist
	}
	if len(closesBySym) == 0 {
		log.Fatal("[FATAL] no symbol data available")
	}

	grid := buildGrid(*extended)
	if *sample > 0 && *sample < len(grid) {
		rand.Shuffle(len(grid), func(i, j int) { grid[i], grid[j] = grid[j], grid[i] })
		grid = grid[:*sample]
	}
	log.Printf("[INFO] grid search: %d configs over %d symbols, hold=%d",
		len(grid), len(closesBySym), *hold)

	scanMode := backtest.ScanMode(cfg.Backtest.Mode)
	results := make([]report.GridResult, len(grid))
	var wg sync.WaitGroup
	for i, gc := range grid {
		wg.Add(1)
		go func(i int, gc engine.Config) {
			defer wg.Done()
			results[i] = report.GridResult{
				Config:  gc,
				Summary: runCell(gc, closesBySym, histories, *hold, scanMode),
			}
		}(i, gc)
	}
	wg.Wait()

	rows := make([]report.GridSummaryRow, len(results))
	for i, r := range results {
		rows[i] = report.GridSummaryRow{
			Config:      r.Config,
			WinRate:     r.Summary.WinRate,
			TotalPnl:    r.Summary.TotalPnl,
			AvgPnl:      r.Summary.AvgPnl,
			AvgDaysHeld: r.Summary.AvgDaysHeld,
			Total:       r.Summary.Total,
			Wins:        r.Summary.Wins,
			Losses:      r.Summary.Losses,
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WinRate != rows[j].WinRate {
			return rows[i].WinRate > rows[j].WinRate
		}
		return rows[i].TotalPnl > rows[j].TotalPnl
	})
	if *top > 0 && *top < len(rows) {
		rows = rows[:*top]
	}

	fmt.Printf("\nTop %d configs by win rate:\n", len(rows))
	for i, r := range rows {
		fmt.Printf("%2d. rsi=%.0f ma=%.0f macd=%.0f stop=%.1f target=%.1f  winRate=%.1f%% totalPnl=%.2f (%d/%d)\n",
			i+1, r.Config.Weights.RSI, r.Config.Weights.MA, r.Config.Weights.MACD,
			r.Config.ATRMultiplierForStop, r.Config.ATRMultiplierForTarget,
			r.WinRate, r.TotalPnl, r.Wins, r.Total)
	}

	fullPath, err := report.WriteJSON(*outDir, "grid_search_full", results)
	if err != nil {
		log.Printf("[ERROR] write full report: %v", err)
		os.Exit(1)
	}
	doc := report.GridDocument{Date: time.Now(), Top: rows, TotalConfigs: len(results)}
	sumPath, err := report.WriteJSON(*outDir, "grid_search_summary", doc)
	if err != nil {
		log.Printf("[ERROR] write summary report: %v", err)
		os.Exit(1)
	}
	csvPath := filepath.Join(*outDir, fmt.Sprintf("grid_search_top_%d.csv", time.Now().UnixMilli()))
	if err := report.WriteGridCSV(rows, csvPath); err != nil {
		log.Printf("[ERROR] write csv: %v", err)
		os.Exit(1)
	}
	log.Printf("[INFO] reports written: %s, %s, %s", fullPath, sumPath, csvPath)
}

// runCell scores every symbol under one candidate config and simulates the
// resulting signals against the shared bar histories.
func runCell(gc engine.Config, closesBySym map[string][]float64, histories map[string][]model.OHLCV, holdDays int, mode backtest.ScanMode) *model.BacktestReport {
	signals := make([]model.Signal, 0, len(closesBySym))
	for symbol, closes := range closesBySym {
		ev := engine.Evaluate(symbol, nil, closes, &gc)
		if ev == nil {
			continue
		}
		signals = append(signals, model.Signal{
			Symbol:      symbol,
			Price:       ev.Price,
			TargetPrice: ev.TargetPrice,
			StopLoss:    ev.StopLoss,
			HoldDays:    holdDays,
		})
	}
	return backtest.Run(signals, histories, mode)
}

// buildGrid enumerates candidate configs. The remaining weights stay at
// their defaults; only the parameters that move outcomes get swept.
func buildGrid(extended bool) []engine.Config {
	rsiW := []float64{10, 20, 30}
	maW := []float64{20, 30, 40}
	macdW := []float64{10, 20, 30}
	stops := []float64{1, 1.5, 2}
	targets := []float64{3, 4, 5}
	if extended {
		rsiW = []float64{5, 10, 15, 20, 25, 30}
		maW = []float64{15, 20, 25, 30, 35, 40}
		macdW = []float64{5, 10, 15, 20, 25, 30}
		stops = []float64{1, 1.25, 1.5, 1.75, 2, 2.5}
		targets = []float64{2.5, 3, 3.5, 4, 4.5, 5}
	}

	base := engine.DefaultConfig()
	grid := make([]engine.Config, 0, len(rsiW)*len(maW)*len(macdW)*len(stops)*len(targets))
	for _, r := range rsiW {
		for _, m := range maW {
			for _, mc := range macdW {
				for _, s := range stops {
					for _, t := range targets {
						c := base
						c.Weights.RSI = r
						c.Weights.MA = m
						c.Weights.MACD = mc
						c.ATRMultiplierForStop = s
						c.ATRMultiplierForTarget = t
						grid = append(grid, c)
					}
				}
			}
		}
	}
	return grid
}
