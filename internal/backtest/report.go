package backtest

import (
	"math"

	"StockScout/internal/model"
)

// Run simulates every signal against the history for its symbol and
// aggregates the outcomes.
//
// Signals with no history still count toward Total but are excluded from
// the win/loss/neutral buckets and from PnL; their result row carries a
// nil trade result. PnL per resolvable signal is exit minus the signal
// price, falling back to the result's own pnl when the signal carries no
// price. Days held are averaged over win/loss exits only.
func Run(signals []model.Signal, histories map[string][]model.OHLCV, mode ScanMode) *model.BacktestReport {
	report := &model.BacktestReport{
		Total:   len(signals),
		Results: make([]model.SignalResult, 0, len(signals)),
	}

	var totalPnl, totalDays float64
	var pnlCount, heldCount int

	for _, sig := range signals {
		res := SimulateOne(sig, histories[sig.Symbol], mode)
		report.Results = append(report.Results, model.SignalResult{
			Symbol: sig.Symbol,
			Signal: sig,
			Result: res,
		})
		if res == nil {
			continue
		}

		switch res.Outcome {
		case model.OutcomeWin:
			report.Wins++
		case model.OutcomeLoss:
			report.Losses++
		default:
			report.Neutrals++
		}

		if sig.Price != 0 {
			totalPnl += res.ExitPrice - sig.Price
			pnlCount++
		} else if res.Outcome == model.OutcomeNeutral {
			totalPnl += res.Pnl
			pnlCount++
		}
		if res.DaysHeld > 0 {
			totalDays += float64(res.DaysHeld)
			heldCount++
		}
	}

	if report.Total > 0 {
		report.WinRate = round1(float64(report.Wins) / float64(report.Total) * 100)
	}
	report.TotalPnl = round2(totalPnl)
	if pnlCount > 0 {
		report.AvgPnl = round4(totalPnl / float64(pnlCount))
	}
	if heldCount > 0 {
		report.AvgDaysHeld = round1(totalDays / float64(heldCount))
	}
	return report
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
