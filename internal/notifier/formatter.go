package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockScout/internal/model"
)

// FormatEvaluation formats a single evaluation into a Telegram message.
func FormatEvaluation(ev *model.Evaluation) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", ev.Symbol, time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Price: $%.2f\n", ev.Price))
	b.WriteString(fmt.Sprintf("RSI: %.0f | Score: %d/100\n\n", ev.RSI, ev.Score))

	b.WriteString(fmt.Sprintf("%s <b>%s</b> — confidence %s\n", recommendationIcon(ev.Recommendation), ev.Recommendation, ev.Confidence))
	b.WriteString(fmt.Sprintf("🎯 Target: $%.2f\n", ev.TargetPrice))
	b.WriteString(fmt.Sprintf("🛑 Stop: $%.2f\n", ev.StopLoss))
	b.WriteString(fmt.Sprintf("⚖️ Risk:Reward: %.2f\n", ev.RiskReward))

	if len(ev.Reasons) > 0 {
		b.WriteString("\n📝 " + strings.Join(ev.Reasons, "; ") + "\n")
	}
	return b.String()
}

// FormatTopOpportunities formats a ranked evaluation list.
func FormatTopOpportunities(evals []*model.Evaluation) string {
	if len(evals) == 0 {
		return "No standout opportunities right now."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🟢 <b>Top Opportunities</b> | %s\n\n", time.Now().Format("2006-01-02")))
	for i, ev := range evals {
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> — $%.2f | score %d | %s (%s)\n",
			i+1, ev.Symbol, ev.Price, ev.Score, ev.Recommendation, ev.Confidence))
	}
	return b.String()
}

// FormatBacktestReport formats an aggregate backtest summary.
func FormatBacktestReport(report *model.BacktestReport) string {
	var b strings.Builder
	b.WriteString("🧪 <b>Backtest Summary</b>\n\n")
	b.WriteString(fmt.Sprintf("Signals: %d | Wins: %d | Losses: %d | Neutral: %d\n",
		report.Total, report.Wins, report.Losses, report.Neutrals))
	b.WriteString(fmt.Sprintf("Win rate: %.1f%%\n", report.WinRate))
	b.WriteString(fmt.Sprintf("Total PnL: %.2f | Avg PnL: %.4f\n", report.TotalPnl, report.AvgPnl))
	b.WriteString(fmt.Sprintf("Avg days held: %.1f\n", report.AvgDaysHeld))
	return b.String()
}

func recommendationIcon(r model.Recommendation) string {
	switch r {
	case model.RecommendBuy:
		return "🟢"
	case model.RecommendSell:
		return "🔴"
	default:
		return "🟡"
	}
}
