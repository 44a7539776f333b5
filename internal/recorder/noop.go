package recorder

import "StockScout/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvaluation(_ *model.Evaluation) error             { return nil }
func (n *NoopRecorder) RecordBacktest(_ *model.BacktestReport, _ string) error { return nil }
func (n *NoopRecorder) Close() error                                           { return nil }
