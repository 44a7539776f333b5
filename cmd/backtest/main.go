package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
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
		cfgPath = flag.String("config", "configs/config.yaml", "config file path")
		symbols = flag.String("symbols", "", "comma-separated symbols (default: config symbols)")
		hold    = flag.Int("hold", 0, "hold days per signal (default: config hold_days)")
		mode    = flag.String("mode", "", "scan mode: backward or forward (default: config)")
		outDir  = flag.String("out", "reports", "output directory for the JSON report")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Strategy.Config.Validate(); err != nil {
		log.Fatalf("[FATAL] strategy config: %v", err)
	}

	syms := cfg.DataSource.Symbols
	if *symbols != "" {
		syms = splitSymbols(*symbols)
	}
	holdDays := cfg.Strategy.HoldDays
	if *hold > 0 {
		holdDays = *hold
	}
	scanMode := backtest.ScanMode(cfg.Backtest.Mode)
	if *mode != "" {
		scanMode = backtest.ScanMode(*mode)
	}
	if scanMode != backtest.ScanBackward && scanMode != backtest.ScanForward {
		log.Fatalf("[FATAL] unknown mode %q", scanMode)
	}

	fetcher := collector.NewYahooFetcher(cfg.DataSource.SymbolSuffix, cfg.Proxy)
	log.Printf("[INFO] backtesting %d symbols via %s, hold=%d, mode=%s",
		len(syms), fetcher.Name(), holdDays, scanMode)

	signals := make([]model.Signal, 0, len(syms))
	histories := make(map[string][]model.OHLCV)
	perSymbol := make([]report.SymbolBacktest, 0, len(syms))

	for _, symbol := range syms {
		closes, err := fetcher.FetchCloses(symbol, cfg.DataSource.HistoryDays)
		if err != nil || len(closes) == 0 {
			log.Printf("[WARN] no close history for %s, skipping: %v", symbol, err)
			continue
		}
		ev := engine.Evaluate(symbol, nil, closes, &cfg.Strategy.Config)
		if ev == nil {
			log.Printf("[WARN] %s could not be evaluated, skipping", symbol)
			continue
		}

		sig := model.Signal{
			Symbol:      symbol,
			Price:       ev.Price,
			TargetPrice: ev.TargetPrice,
			StopLoss:    ev.StopLoss,
			HoldDays:    holdDays,
		}
		signals = append(signals, sig)

		hist, err := fetcher.FetchHistory(symbol, cfg.DataSource.HistoryDays)
		if err != nil || len(hist) == 0 {
			// The provider can deliver closes but refuse bars; derive bars so
			// the signal still gets an outcome.
			log.Printf("[WARN] no bar history for %s, deriving from closes", symbol)
			hist = collector.SyntheticHistory(closes)
		}
		histories[symbol] = hist

		single := backtest.Run([]model.Signal{sig}, map[string][]model.OHLCV{symbol: hist}, scanMode)
		perSymbol = append(perSymbol, report.SymbolBacktest{Symbol: symbol, Eval: ev, Backtest: single})
	}

	summary := backtest.Run(signals, histories, scanMode)

	fmt.Printf("\nBacktest summary (%s, hold %d days)\n", scanMode, holdDays)
	fmt.Printf("  signals:  %d\n", summary.Total)
	fmt.Printf("  wins:     %d\n", summary.Wins)
	fmt.Printf("  losses:   %d\n", summary.Losses)
	fmt.Printf("  neutrals: %d\n", summary.Neutrals)
	fmt.Printf("  win rate: %.1f%%\n", summary.WinRate)
	fmt.Printf("  total pnl: %.2f  avg pnl: %.4f  avg days held: %.1f\n",
		summary.TotalPnl, summary.AvgPnl, summary.AvgDaysHeld)

	doc := report.BacktestDocument{Date: time.Now(), Results: perSymbol}
	path, err := report.WriteJSON(*outDir, "backtest", doc)
	if err != nil {
		log.Printf("[ERROR] write report: %v", err)
		os.Exit(1)
	}
	log.Printf("[INFO] report written to %s", path)
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
