package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"StockScout/internal/engine"
	"StockScout/internal/model"
)

func TestWriteJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	doc := BacktestDocument{
		Date: time.Now(),
		Results: []SymbolBacktest{
			{
				Symbol:   "GGAL",
				Eval:     &model.Evaluation{Symbol: "GGAL", Price: 100, Score: 72},
				Backtest: &model.BacktestReport{Total: 1, Wins: 1, WinRate: 100},
			},
		},
	}

	path, err := WriteJSON(dir, "backtest", doc)
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "backtest_") {
		t.Errorf("unexpected file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got BacktestDocument
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Results) != 1 || got.Results[0].Symbol != "GGAL" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Results[0].Backtest.WinRate != 100 {
		t.Errorf("expected winRate 100, got %.1f", got.Results[0].Backtest.WinRate)
	}
}

func TestWriteGridCSV(t *testing.T) {
	rows := []GridSummaryRow{
		{Config: engine.DefaultConfig(), WinRate: 66.7, TotalPnl: 12.5, AvgPnl: 4.1667, AvgDaysHeld: 3.5, Total: 3, Wins: 2, Losses: 1},
		{Config: engine.DefaultConfig(), WinRate: 33.3, TotalPnl: -2, AvgPnl: -0.6667, Total: 3, Wins: 1, Losses: 2},
	}
	path := filepath.Join(t.TempDir(), "grid.csv")
	if err := WriteGridCSV(rows, path); err != nil {
		t.Fatalf("WriteGridCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "rsi,ma,macd") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "66.7") {
		t.Errorf("first data row missing win rate: %s", lines[1])
	}
}
