package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fourbar/broker"
	"fourbar/config"
	"fourbar/engine"
	"fourbar/journal"
	"fourbar/market"
	"fourbar/metrics"
	"fourbar/nse"
	"fourbar/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the live polling engine",
	Long: `Run the live engine: poll the NSE spot index, build bars, and
paper-trade option legs on four-bar breakouts until interrupted.

Example:
  fourbar run -f config.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to YAML config file (defaults apply when omitted)")
}

func runRun(cmd *cobra.Command, args []string) error {
	// A .env is optional; environment overrides still apply without one.
	_ = godotenv.Load()

	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg.App.LogLevel)

	audit, err := journal.NewJSONL(cfg.Journal.AuditFile)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer audit.Close()

	var trades journal.Journal
	if cfg.Journal.DBPath != "" {
		sq, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal db: %w", err)
		}
		defer sq.Close()
		trades = sq
	}

	acct := broker.NewAccount(cfg.Account, audit, trades)

	client := nse.NewClient(cfg.Market.BaseURL, nse.RetryPolicy{
		Attempts: cfg.Market.RetryAttempts,
		Backoff:  time.Duration(cfg.Market.RetryBackoffMs) * time.Millisecond,
	})
	feed := &nseFeed{client: client, index: cfg.Market.Index}
	source := &nseChainSource{
		client: client,
		index:  cfg.Market.Index,
		symbol: cfg.Market.Symbol,
		step:   cfg.Market.StrikeStep,
	}

	strat := strategies.NewFourBarADX(strategies.FourBarADXConfig{
		Lookback:       cfg.Strategy.Lookback,
		ADXPeriod:      cfg.Strategy.ADXPeriod,
		EntryThreshold: cfg.Strategy.EntryThreshold,
		AuditSkips:     cfg.Strategy.AuditSkips,
	}, acct, source, log)

	agg := market.NewAggregator(time.Duration(cfg.Market.BucketMinutes) * time.Minute)
	loop := engine.NewLoop(engine.Config{
		Interval:       time.Duration(cfg.Market.PollSeconds) * time.Second,
		ClosedInterval: time.Duration(cfg.Market.ClosedPollSeconds) * time.Second,
	}, feed, agg, cfg.Market.Session, strat, log)

	if cfg.App.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.App.MetricsAddr); err != nil {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
	}

	log.Info().
		Str("index", cfg.Market.Index).
		Str("symbol", cfg.Market.Symbol).
		Float64("capital", cfg.Account.InitialCapital).
		Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	sum := acct.Summarize()
	fmt.Printf("\nSession summary:\n")
	fmt.Printf("  Initial capital: %.2f\n", sum.InitialCapital)
	fmt.Printf("  Current capital: %.2f\n", sum.CurrentCapital)
	fmt.Printf("  Realized P/L:    %.2f\n", sum.TotalPnl)
	fmt.Printf("  Trades closed:   %d\n", sum.NumTrades)
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}
