package recorder

import "StockScout/internal/model"

// Recorder persists scan and backtest history for later analysis.
type Recorder interface {
	RecordEvaluation(ev *model.Evaluation) error
	RecordBacktest(report *model.BacktestReport, mode string) error
	Close() error
}
