package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockScout/internal/engine"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		SymbolSuffix string   `yaml:"symbol_suffix"` // e.g. ".BA" for BYMA tickers
		Symbols      []string `yaml:"symbols"`
		HistoryDays  int      `yaml:"history_days"`
	} `yaml:"data_source"`
	Strategy struct {
		engine.Config `yaml:",inline"`
		HoldDays      int `yaml:"hold_days"`
		TopN          int `yaml:"top_n"`
	} `yaml:"strategy"`
	Backtest struct {
		Mode string `yaml:"mode"` // "backward" (legacy parity) or "forward"
	} `yaml:"backtest"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Feed struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
		Market  string `yaml:"market"`
	} `yaml:"feed"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then fills defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // optional .env, missing file is fine

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("FEED_URL"); v != "" {
		cfg.Feed.URL = v
		cfg.Feed.Enabled = true
	}
	if v := os.Getenv("HISTORY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.HistoryDays = n
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"GGAL", "YPFD", "PAMP", "BBAR", "TXAR", "ALUA"}
	}
	if cfg.DataSource.SymbolSuffix == "" {
		cfg.DataSource.SymbolSuffix = ".BA"
	}
	if cfg.DataSource.HistoryDays == 0 {
		cfg.DataSource.HistoryDays = 180
	}

	def := engine.DefaultConfig()
	if cfg.Strategy.Weights == (engine.Weights{}) {
		cfg.Strategy.Weights = def.Weights
	}
	if cfg.Strategy.ATRMultiplierForStop == 0 {
		cfg.Strategy.ATRMultiplierForStop = def.ATRMultiplierForStop
	}
	if cfg.Strategy.ATRMultiplierForTarget == 0 {
		cfg.Strategy.ATRMultiplierForTarget = def.ATRMultiplierForTarget
	}
	if cfg.Strategy.RSIPeriod == 0 {
		cfg.Strategy.RSIPeriod = def.RSIPeriod
	}
	if cfg.Strategy.MAShortPeriod == 0 {
		cfg.Strategy.MAShortPeriod = def.MAShortPeriod
	}
	if cfg.Strategy.MALongPeriod == 0 {
		cfg.Strategy.MALongPeriod = def.MALongPeriod
	}
	if cfg.Strategy.HoldDays == 0 {
		cfg.Strategy.HoldDays = 30
	}
	if cfg.Strategy.TopN == 0 {
		cfg.Strategy.TopN = 5
	}

	if cfg.Backtest.Mode == "" {
		cfg.Backtest.Mode = "backward"
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 17 * * 1-5" // weekdays after BYMA close
	}
	if cfg.Feed.Market == "" {
		cfg.Feed.Market = "BYMA"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockscout.db"
	}
}

// Validate checks the fields the bot cannot run without.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Backtest.Mode != "backward" && c.Backtest.Mode != "forward" {
		return fmt.Errorf("backtest.mode must be \"backward\" or \"forward\"")
	}
	return c.Strategy.Config.Validate()
}
