package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fourbar/config"
	"fourbar/nse"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the current strike picks",
	Long: `Fetch the live option chain once and print the distilled strike
picks (ATM plus two rungs each way, nearest expiry) as JSON.`,
	RunE: runChain,
}

var chainConfigPath string

func init() {
	rootCmd.AddCommand(chainCmd)

	chainCmd.Flags().StringVarP(&chainConfigPath, "config", "f", "", "path to YAML config file (defaults apply when omitted)")
}

func runChain(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(chainConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := nse.NewClient(cfg.Market.BaseURL, nse.RetryPolicy{
		Attempts: cfg.Market.RetryAttempts,
		Backoff:  time.Duration(cfg.Market.RetryBackoffMs) * time.Millisecond,
	})
	source := &nseChainSource{
		client: client,
		index:  cfg.Market.Index,
		symbol: cfg.Market.Symbol,
		step:   cfg.Market.StrikeStep,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	picks, err := source.Picks(ctx)
	if err != nil {
		return fmt.Errorf("fetch chain: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(picks)
}
