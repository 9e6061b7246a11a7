package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fourbar/broker"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
market:
  index: "NIFTY 50"
  symbol: NIFTY
  poll_seconds: 5
strategy:
  entry_threshold: 25
account:
  initial_capital: 250000
  slippage: 0.002
  slippage_mode: adverse
journal:
  audit_file: /tmp/audit.jsonl
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Market.PollSeconds)
	assert.Equal(t, 25.0, cfg.Strategy.EntryThreshold)
	assert.Equal(t, 250000.0, cfg.Account.InitialCapital)
	assert.Equal(t, broker.SlipAdverse, cfg.Account.SlippageMode)
	assert.Equal(t, "/tmp/audit.jsonl", cfg.Journal.AuditFile)

	// Untouched fields keep their defaults.
	assert.Equal(t, 4, cfg.Strategy.Lookback)
	assert.Equal(t, 50, cfg.Market.StrikeStep)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadFromFile("")
	require.NoError(t, err)
	assert.Equal(t, "NIFTY 50", cfg.Market.Index)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("FOURBAR_AUDIT_FILE", "/tmp/env-audit.jsonl")

	cfg, err := LoadFromFile("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env-audit.jsonl", cfg.Journal.AuditFile)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no index", func(c *Config) { c.Market.Index = "" }},
		{"zero bucket", func(c *Config) { c.Market.BucketMinutes = 0 }},
		{"lookback too small", func(c *Config) { c.Strategy.Lookback = 1 }},
		{"negative slippage", func(c *Config) { c.Account.Slippage = -0.1 }},
		{"bad slippage mode", func(c *Config) { c.Account.SlippageMode = "optimistic" }},
		{"no audit file", func(c *Config) { c.Journal.AuditFile = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
