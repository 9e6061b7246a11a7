package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fourbar",
	Short: "Paper-trade NIFTY index options on a four-bar breakout",
	Long: `fourbar polls the NSE spot index during market hours, folds ticks into
15-minute bars, and paper-trades ATM option legs on a four-bar breakout
filtered by ADX trend strength.

It provides tools for:
  - Running the live polling engine against the public NSE endpoints
  - Querying the SQLite trade journal
  - Inspecting the current option-chain strike picks`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
