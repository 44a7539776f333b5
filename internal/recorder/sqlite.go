package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockScout/internal/model"
)

// SQLiteRecorder persists evaluations and backtest runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for concurrent reads while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			price          REAL,
			rsi            REAL,
			score          INTEGER,
			recommendation TEXT,
			confidence     TEXT,
			target_price   REAL,
			stop_loss      REAL,
			risk_reward    REAL,
			reasons        TEXT,
			signals        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_eval_ts ON evaluations(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_eval_symbol ON evaluations(symbol)`,

		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			mode          TEXT,
			total         INTEGER,
			wins          INTEGER,
			losses        INTEGER,
			neutrals      INTEGER,
			win_rate      REAL,
			total_pnl     REAL,
			avg_pnl       REAL,
			avg_days_held REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_ts ON backtest_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvaluation(ev *model.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tags := make([]string, len(ev.Signals))
	for i, t := range ev.Signals {
		tags[i] = string(t)
	}

	_, err := r.db.Exec(`INSERT INTO evaluations
		(timestamp, symbol, price, rsi, score, recommendation, confidence,
		 target_price, stop_loss, risk_reward, reasons, signals)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), ev.Symbol, ev.Price, ev.RSI, ev.Score,
		string(ev.Recommendation), string(ev.Confidence),
		ev.TargetPrice, ev.StopLoss, ev.RiskReward,
		strings.Join(ev.Reasons, "; "), strings.Join(tags, ","),
	)
	return err
}

func (r *SQLiteRecorder) RecordBacktest(report *model.BacktestReport, mode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO backtest_runs
		(timestamp, mode, total, wins, losses, neutrals, win_rate, total_pnl, avg_pnl, avg_days_held)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), mode, report.Total, report.Wins, report.Losses,
		report.Neutrals, report.WinRate, report.TotalPnl, report.AvgPnl, report.AvgDaysHeld,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
