package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "HTTPS_PROXY", "SCAN_CRON",
		"SQLITE_PATH", "METRICS_ADDR", "FEED_URL", "HISTORY_DAYS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if len(cfg.DataSource.Symbols) == 0 {
		t.Error("expected default symbol list")
	}
	if cfg.DataSource.SymbolSuffix != ".BA" {
		t.Errorf("expected default suffix .BA, got %q", cfg.DataSource.SymbolSuffix)
	}
	if cfg.DataSource.HistoryDays != 180 {
		t.Errorf("expected default history 180, got %d", cfg.DataSource.HistoryDays)
	}
	if cfg.Strategy.RSIPeriod != 14 || cfg.Strategy.MAShortPeriod != 20 || cfg.Strategy.MALongPeriod != 50 {
		t.Errorf("expected default indicator periods, got %+v", cfg.Strategy.Config)
	}
	if cfg.Strategy.HoldDays != 30 || cfg.Strategy.TopN != 5 {
		t.Errorf("expected default hold/topN, got %d/%d", cfg.Strategy.HoldDays, cfg.Strategy.TopN)
	}
	if cfg.Backtest.Mode != "backward" {
		t.Errorf("expected default backtest mode backward, got %q", cfg.Backtest.Mode)
	}
	if cfg.Schedule.ScanCron == "" {
		t.Error("expected a default scan cron")
	}
}

func TestLoad_YAMLValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram:
  bot_token: "token-from-yaml"
  chat_id: "12345"
data_source:
  symbol_suffix: ".MX"
  symbols: ["ALFA", "CEMEX"]
  history_days: 90
strategy:
  weights:
    rsi: 10
    ma: 30
    momentum: 15
    macd: 20
    volume: 10
    volatility: 15
  atr_multiplier_for_stop: 2
  atr_multiplier_for_target: 5
  hold_days: 15
  top_n: 3
backtest:
  mode: "forward"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.BotToken != "token-from-yaml" {
		t.Errorf("bot token: got %q", cfg.Telegram.BotToken)
	}
	if cfg.DataSource.SymbolSuffix != ".MX" || cfg.DataSource.HistoryDays != 90 {
		t.Errorf("data source: %+v", cfg.DataSource)
	}
	if len(cfg.DataSource.Symbols) != 2 {
		t.Errorf("expected 2 symbols, got %v", cfg.DataSource.Symbols)
	}
	if cfg.Strategy.Weights.RSI != 10 || cfg.Strategy.Weights.MA != 30 {
		t.Errorf("weights: %+v", cfg.Strategy.Weights)
	}
	if cfg.Strategy.ATRMultiplierForStop != 2 || cfg.Strategy.ATRMultiplierForTarget != 5 {
		t.Errorf("multipliers: %+v", cfg.Strategy.Config)
	}
	if cfg.Strategy.HoldDays != 15 || cfg.Strategy.TopN != 3 {
		t.Errorf("hold/topN: %d/%d", cfg.Strategy.HoldDays, cfg.Strategy.TopN)
	}
	if cfg.Backtest.Mode != "forward" {
		t.Errorf("mode: %q", cfg.Backtest.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "token-from-env")
	t.Setenv("SCAN_CRON", "0 0 9 * * *")
	t.Setenv("HISTORY_DAYS", "365")
	t.Setenv("FEED_URL", "wss://feed.example/ws")

	path := writeConfig(t, `
telegram:
  bot_token: "token-from-yaml"
  chat_id: "12345"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.BotToken != "token-from-env" {
		t.Errorf("env must override yaml, got %q", cfg.Telegram.BotToken)
	}
	if cfg.Schedule.ScanCron != "0 0 9 * * *" {
		t.Errorf("scan cron: %q", cfg.Schedule.ScanCron)
	}
	if cfg.DataSource.HistoryDays != 365 {
		t.Errorf("history days: %d", cfg.DataSource.HistoryDays)
	}
	if !cfg.Feed.Enabled || cfg.Feed.URL != "wss://feed.example/ws" {
		t.Errorf("FEED_URL must enable the feed: %+v", cfg.Feed)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without telegram credentials")
	}

	cfg.Telegram.BotToken = "t"
	cfg.Telegram.ChatID = "c"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.Backtest.Mode = "sideways"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown backtest mode")
	}
}
