package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"StockScout/internal/engine"
	"StockScout/internal/model"
)

// SymbolBacktest pairs one symbol's evaluation with its own backtest.
type SymbolBacktest struct {
	Symbol   string                `json:"symbol"`
	Eval     *model.Evaluation     `json:"eval"`
	Backtest *model.BacktestReport `json:"backtest"`
}

// BacktestDocument is the on-disk layout of a batch backtest run.
type BacktestDocument struct {
	Date    time.Time        `json:"date"`
	Results []SymbolBacktest `json:"results"`
}

// GridResult holds one grid-search cell: the config tried and its report.
type GridResult struct {
	Config  engine.Config         `json:"config"`
	Summary *model.BacktestReport `json:"summary"`
}

// GridSummaryRow is the flattened ranking row of a grid cell.
type GridSummaryRow struct {
	Config      engine.Config `json:"config"`
	WinRate     float64       `json:"winRate"`
	TotalPnl    float64       `json:"totalPnl"`
	AvgPnl      float64       `json:"avgPnl"`
	AvgDaysHeld float64       `json:"avgDaysHeld"`
	Total       int           `json:"total"`
	Wins        int           `json:"wins"`
	Losses      int           `json:"losses"`
}

// GridDocument is the on-disk layout of a grid-search summary.
type GridDocument struct {
	Date         time.Time        `json:"date"`
	Top          []GridSummaryRow `json:"top"`
	TotalConfigs int              `json:"totalConfigs"`
}

// WriteJSON marshals payload into dir/<prefix>_<millis>.json, creating the
// directory when needed, and returns the file path.
func WriteJSON(dir, prefix string, payload interface{}) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%d.json", prefix, time.Now().UnixMilli()))
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// WriteGridCSV writes the ranked grid rows as CSV.
func WriteGridCSV(rows []GridSummaryRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	_ = w.Write([]string{
		"rsi", "ma", "macd", "atrStop", "atrTarget",
		"winRate", "totalPnl", "avgPnl", "avgDaysHeld", "total", "wins", "losses",
	})
	for _, r := range rows {
		_ = w.Write([]string{
			formatF(r.Config.Weights.RSI), formatF(r.Config.Weights.MA), formatF(r.Config.Weights.MACD),
			formatF(r.Config.ATRMultiplierForStop), formatF(r.Config.ATRMultiplierForTarget),
			formatF(r.WinRate), formatF(r.TotalPnl), formatF(r.AvgPnl), formatF(r.AvgDaysHeld),
			strconv.Itoa(r.Total), strconv.Itoa(r.Wins), strconv.Itoa(r.Losses),
		})
	}
	return w.Error()
}

func formatF(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
