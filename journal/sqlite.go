package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the queryable trade journal backend.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the journal database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// RecordTrade inserts one closed trade.
func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, side, symbol, strike, option_type, expiry, qty,
		 entry_price, exit_price, entry_time, exit_time, pnl, capital_after, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Side, t.Symbol, t.Strike, t.OptionType, t.Expiry, t.Qty,
		t.EntryPrice, t.ExitPrice, t.EntryTime, t.ExitTime, t.Pnl, t.CapitalAfter, t.Reason,
	)
	return err
}

// Close closes the database handle.
func (j *SQLite) Close() error {
	return j.db.Close()
}
