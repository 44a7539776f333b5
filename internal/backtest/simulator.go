package backtest

import "StockScout/internal/model"

// ScanMode selects how a signal's hold window is walked.
//
// ScanBackward reproduces the legacy behavior bit-for-bit: the window is
// walked from the newest bar toward the past, so "first touch" resolves in
// reverse-chronological order. Keep it for regression comparisons against
// previously saved reports. ScanForward is the correct trade simulation:
// entry at the start of the window, first touch in chronological order.
type ScanMode string

const (
	ScanBackward ScanMode = "backward"
	ScanForward  ScanMode = "forward"
)

// defaultHoldDays applies when a signal carries no hold window.
const defaultHoldDays = 20

// SimulateOne simulates a single signal against its bar history
// (oldest-first). Returns nil when no history is available; the caller
// excludes such signals from the outcome buckets.
func SimulateOne(sig model.Signal, history []model.OHLCV, mode ScanMode) *model.TradeResult {
	if len(history) == 0 {
		return nil
	}
	holdDays := sig.HoldDays
	if holdDays <= 0 {
		holdDays = defaultHoldDays
	}
	if mode == ScanForward {
		return simulateForward(sig, history, holdDays)
	}
	return simulateBackward(sig, history, holdDays)
}

// simulateBackward walks at most holdDays bars from the end of the history
// toward the past. Target is checked before stop within each bar.
func simulateBackward(sig model.Signal, history []model.OHLCV, holdDays int) *model.TradeResult {
	n := len(history)
	start := n - holdDays
	if start < 0 {
		start = 0
	}
	for i := n - 1; i >= start; i-- {
		bar := history[i]
		if bar.High >= sig.TargetPrice {
			return &model.TradeResult{Outcome: model.OutcomeWin, ExitPrice: sig.TargetPrice, DaysHeld: n - i}
		}
		if bar.Low <= sig.StopLoss {
			return &model.TradeResult{Outcome: model.OutcomeLoss, ExitPrice: sig.StopLoss, DaysHeld: n - i}
		}
	}

	last := history[n-1]
	entry := last.Open
	if entry == 0 {
		entry = last.Close
	}
	return &model.TradeResult{Outcome: model.OutcomeNeutral, ExitPrice: last.Close, Pnl: last.Close - entry}
}

// simulateForward enters at the first bar of the hold window and walks
// forward in time, exiting at the first bar touching target or stop, else
// at the final close of the window.
func simulateForward(sig model.Signal, history []model.OHLCV, holdDays int) *model.TradeResult {
	n := len(history)
	start := n - holdDays
	if start < 0 {
		start = 0
	}
	entryBar := history[start]
	entry := entryBar.Open
	if entry == 0 {
		entry = entryBar.Close
	}
	for i := start; i < n; i++ {
		bar := history[i]
		if bar.High >= sig.TargetPrice {
			return &model.TradeResult{Outcome: model.OutcomeWin, ExitPrice: sig.TargetPrice, DaysHeld: i - start + 1}
		}
		if bar.Low <= sig.StopLoss {
			return &model.TradeResult{Outcome: model.OutcomeLoss, ExitPrice: sig.StopLoss, DaysHeld: i - start + 1}
		}
	}

	lastClose := history[n-1].Close
	return &model.TradeResult{Outcome: model.OutcomeNeutral, ExitPrice: lastClose, Pnl: lastClose - entry}
}
