// Package journal persists the engine's two output contracts: the
// append-only audit log (newline-delimited JSON, consumed by the dashboard)
// and the queryable SQLite trade journal.
package journal

import "time"

// TradeRecord is one closed paper trade as persisted to the trade journal.
type TradeRecord struct {
	TradeID      string
	Side         string
	Symbol       string
	Strike       int
	OptionType   string
	Expiry       string
	Qty          int
	EntryPrice   float64
	ExitPrice    float64
	EntryTime    time.Time
	ExitTime     time.Time
	Pnl          float64
	CapitalAfter float64
	Reason       string
}

// Journal records closed trades.
type Journal interface {
	RecordTrade(TradeRecord) error
	Close() error
}

// Audit appends structured events to the audit log. Implementations must
// write each event as one complete record so a concurrent reader never
// observes a partial line.
type Audit interface {
	Record(event any) error
	Close() error
}
