package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"StockScout/internal/backtest"
	"StockScout/internal/collector"
	"StockScout/internal/engine"
	"StockScout/internal/metrics"
	"StockScout/internal/model"
	"StockScout/internal/notifier"
	"StockScout/internal/recorder"
)

// Options carries the scan parameters the scheduler needs beyond its
// collaborators.
type Options struct {
	Symbols      []string
	TopN         int
	HoldDays     int
	BacktestMode backtest.ScanMode
}

// Scheduler manages the cron tasks and bot commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Opts      Options
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, tn *notifier.TelegramNotifier, rec recorder.Recorder, opts Options) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  tn,
		Recorder:  rec,
		Opts:      opts,
		Ctx:       ctx,
	}
}

// RegisterAll registers the scheduled market scan.
func (s *Scheduler) RegisterAll(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Printf("[INFO] running market scan for %d symbols", len(s.Opts.Symbols))
	evals := s.Collector.AnalyzeAll(s.Opts.Symbols)

	for _, ev := range evals {
		if ev == nil {
			continue
		}
		if err := s.Recorder.RecordEvaluation(ev); err != nil {
			log.Printf("[ERROR] record evaluation %s: %v", ev.Symbol, err)
		}
	}

	top := engine.Rank(evals, s.Opts.TopN)
	s.trySend(notifier.FormatTopOpportunities(top))
}

// runBacktest evaluates the configured symbols, projects signals with the
// given hold window and simulates them against fetched bar histories.
// Symbols whose history cannot be fetched still count toward the report
// total. holdDays is a parameter rather than scheduler state so that
// concurrent command dispatch stays safe.
func (s *Scheduler) runBacktest(holdDays int) *model.BacktestReport {
	evals := s.Collector.AnalyzeAll(s.Opts.Symbols)

	signals := make([]model.Signal, 0, len(evals))
	histories := make(map[string][]model.OHLCV)
	for _, ev := range evals {
		if ev == nil {
			continue
		}
		signals = append(signals, model.Signal{
			Symbol:      ev.Symbol,
			Price:       ev.Price,
			TargetPrice: ev.TargetPrice,
			StopLoss:    ev.StopLoss,
			HoldDays:    holdDays,
		})
		hist, err := s.Collector.Fetcher.FetchHistory(ev.Symbol, s.Collector.HistoryDays)
		if err != nil {
			log.Printf("[WARN] fetch history for %s: %v, excluded from outcomes", ev.Symbol, err)
			continue
		}
		histories[ev.Symbol] = hist
	}

	report := backtest.Run(signals, histories, s.Opts.BacktestMode)
	metrics.BacktestRunsTotal.Inc()
	if err := s.Recorder.RecordBacktest(report, string(s.Opts.BacktestMode)); err != nil {
		log.Printf("[ERROR] record backtest: %v", err)
	}
	return report
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string, args []string) string {
	switch command {
	case "/analyze":
		if len(args) == 0 {
			return "Usage: /analyze SYMBOL"
		}
		symbol := strings.ToUpper(args[0])
		ev := s.Collector.Analyze(symbol)
		if ev == nil {
			return fmt.Sprintf("❌ No data available for %s. Check the symbol.", symbol)
		}
		if err := s.Recorder.RecordEvaluation(ev); err != nil {
			log.Printf("[ERROR] record evaluation %s: %v", symbol, err)
		}
		return notifier.FormatEvaluation(ev)

	case "/top":
		evals := s.Collector.AnalyzeAll(s.Opts.Symbols)
		top := engine.Rank(evals, s.Opts.TopN)
		return notifier.FormatTopOpportunities(top)

	case "/backtest":
		holdDays := s.Opts.HoldDays
		if len(args) > 0 {
			if days, err := strconv.Atoi(args[0]); err == nil && days > 0 {
				holdDays = days
			}
		}
		report := s.runBacktest(holdDays)
		return notifier.FormatBacktestReport(report)

	case "/scan":
		s.scanTask()
		return ""

	default:
		return "Commands:\n• /analyze SYMBOL\n• /top\n• /backtest [holdDays]\n• /scan"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Notify(s.Ctx, text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
