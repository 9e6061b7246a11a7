// Package config loads the engine configuration from YAML with an
// environment-variable overlay.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"fourbar/broker"
	"fourbar/market"
)

// Config is the complete engine configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Market   MarketConfig   `yaml:"market"`
	Strategy StrategyConfig `yaml:"strategy"`
	Account  broker.Config  `yaml:"account"`
	Journal  JournalConfig  `yaml:"journal"`
}

// AppConfig holds process-level settings.
type AppConfig struct {
	LogLevel    string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	MetricsAddr string `yaml:"metrics_addr" envconfig:"METRICS_ADDR"`
}

// MarketConfig describes the instrument and the polling cadence.
type MarketConfig struct {
	Index             string               `yaml:"index"`  // NSE index name, eg "NIFTY 50"
	Symbol            string               `yaml:"symbol"` // option-chain symbol, eg "NIFTY"
	BaseURL           string               `yaml:"base_url" envconfig:"NSE_BASE_URL"`
	BucketMinutes     int                  `yaml:"bucket_minutes"`
	PollSeconds       int                  `yaml:"poll_seconds"`
	ClosedPollSeconds int                  `yaml:"closed_poll_seconds"`
	StrikeStep        int                  `yaml:"strike_step"`
	Session           market.SessionWindow `yaml:"session"`
	RetryAttempts     int                  `yaml:"retry_attempts"`
	RetryBackoffMs    int                  `yaml:"retry_backoff_ms"`
}

// StrategyConfig holds breakout strategy parameters.
type StrategyConfig struct {
	Lookback       int     `yaml:"lookback"`
	ADXPeriod      int     `yaml:"adx_period"`
	EntryThreshold float64 `yaml:"entry_threshold"`
	AuditSkips     bool    `yaml:"audit_skips"`
}

// JournalConfig names the persistence targets. DBPath is optional; the
// audit file is not.
type JournalConfig struct {
	AuditFile string `yaml:"audit_file" envconfig:"AUDIT_FILE"`
	DBPath    string `yaml:"db_path" envconfig:"JOURNAL_DB"`
}

// LoadFromFile reads a YAML config, applies FOURBAR_* environment
// overrides, and validates the result. An empty path yields defaults
// plus environment.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("fourbar", cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration is runnable.
func (c *Config) Validate() error {
	if c.Market.Index == "" {
		return fmt.Errorf("market.index is required")
	}
	if c.Market.Symbol == "" {
		return fmt.Errorf("market.symbol is required")
	}
	if c.Market.BucketMinutes <= 0 {
		return fmt.Errorf("market.bucket_minutes must be positive")
	}
	if c.Market.PollSeconds <= 0 {
		return fmt.Errorf("market.poll_seconds must be positive")
	}
	if c.Market.StrikeStep <= 0 {
		return fmt.Errorf("market.strike_step must be positive")
	}
	if c.Strategy.Lookback < 2 {
		return fmt.Errorf("strategy.lookback must be at least 2")
	}
	if c.Strategy.ADXPeriod <= 0 {
		return fmt.Errorf("strategy.adx_period must be positive")
	}
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Account.Slippage < 0 || c.Account.Slippage >= 1 {
		return fmt.Errorf("account.slippage must be in [0, 1)")
	}
	switch c.Account.SlippageMode {
	case broker.SlipLegacy, broker.SlipAdverse:
	default:
		return fmt.Errorf("account.slippage_mode must be %q or %q", broker.SlipLegacy, broker.SlipAdverse)
	}
	if c.Journal.AuditFile == "" {
		return fmt.Errorf("journal.audit_file is required")
	}
	return nil
}

// Default returns the standard NIFTY 50 setup.
func Default() *Config {
	return &Config{
		App: AppConfig{
			LogLevel:    "info",
			MetricsAddr: ":9101",
		},
		Market: MarketConfig{
			Index:             "NIFTY 50",
			Symbol:            "NIFTY",
			BucketMinutes:     15,
			PollSeconds:       3,
			ClosedPollSeconds: 60,
			StrikeStep:        50,
			Session:           market.NSEWindow(),
			RetryAttempts:     5,
			RetryBackoffMs:    1500,
		},
		Strategy: StrategyConfig{
			Lookback:       4,
			ADXPeriod:      14,
			EntryThreshold: 20,
			AuditSkips:     true,
		},
		Account: broker.Config{
			InitialCapital: 100000,
			Slippage:       0.001,
			SlippageMode:   broker.SlipLegacy,
			LotSizes:       map[string]int{"NIFTY": 50},
			DefaultLot:     50,
		},
		Journal: JournalConfig{
			AuditFile: "trade_log.jsonl",
		},
	}
}
