package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockScout/internal/backtest"
	"StockScout/internal/collector"
	"StockScout/internal/config"
	"StockScout/internal/feed"
	"StockScout/internal/metrics"
	"StockScout/internal/notifier"
	"StockScout/internal/recorder"
	"StockScout/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockScout starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init live quote feed (optional)
	var quotes *feed.QuoteCache
	if cfg.Feed.Enabled && cfg.Feed.URL != "" {
		quotes = feed.NewQuoteCache(0)
		lf := feed.NewFeed(cfg.Feed.URL, cfg.Feed.Market, cfg.DataSource.Symbols, quotes)
		go lf.Run(ctx)
		log.Printf("[INFO] live feed enabled: %s", cfg.Feed.URL)
	}

	// Init fetcher and collector
	fetcher := collector.NewYahooFetcher(cfg.DataSource.SymbolSuffix, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, quotes, cfg.Strategy.Config, cfg.DataSource.HistoryDays)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Metrics endpoint
	if cfg.Metrics.Addr != "" {
		metrics.Serve(cfg.Metrics.Addr)
		log.Printf("[INFO] metrics listening on %s", cfg.Metrics.Addr)
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, tn, rec, scheduler.Options{
		Symbols:      cfg.DataSource.Symbols,
		TopN:         cfg.Strategy.TopN,
		HoldDays:     cfg.Strategy.HoldDays,
		BacktestMode: backtest.ScanMode(cfg.Backtest.Mode),
	})
	if err := sched.RegisterAll(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing market scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] StockScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockScout stopped")
}
