package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTrade renders one trade as a readable multi-line block for the CLI.
func FormatTrade(t TradeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trade %s\n", t.TradeID)
	fmt.Fprintf(&b, "  %s %d x %s %d%s (%s)\n", t.Side, t.Qty, t.Symbol, t.Strike, t.OptionType, t.Expiry)
	fmt.Fprintf(&b, "  entry %.2f @ %s\n", t.EntryPrice, t.EntryTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "  exit  %.2f @ %s\n", t.ExitPrice, t.ExitTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "  pnl %.2f, capital %.2f, reason: %s", t.Pnl, t.CapitalAfter, t.Reason)
	return b.String()
}

// FormatTrades renders a list of trades with a summary footer.
func FormatTrades(trades []TradeRecord) string {
	if len(trades) == 0 {
		return "no trades"
	}
	var b strings.Builder
	var total float64
	for _, t := range trades {
		b.WriteString(FormatTrade(t))
		b.WriteString("\n")
		total += t.Pnl
	}
	fmt.Fprintf(&b, "---\n%d trades, total pnl %.2f", len(trades), total)
	return b.String()
}
