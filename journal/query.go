package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	row := j.db.QueryRow(`
		SELECT trade_id, side, symbol, strike, option_type, expiry, qty,
		       entry_price, exit_price, entry_time, exit_time, pnl, capital_after, reason
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
	}
	return rec, err
}

// ListTradesClosedBetween returns trades whose exit_time is within
// [start, end), oldest first.
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, side, symbol, strike, option_type, expiry, qty,
		       entry_price, exit_price, entry_time, exit_time, pnl, capital_after, reason
		FROM trades
		WHERE exit_time >= ? AND exit_time < ?
		ORDER BY exit_time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(r rowScanner) (TradeRecord, error) {
	var rec TradeRecord
	err := r.Scan(
		&rec.TradeID,
		&rec.Side,
		&rec.Symbol,
		&rec.Strike,
		&rec.OptionType,
		&rec.Expiry,
		&rec.Qty,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.EntryTime,
		&rec.ExitTime,
		&rec.Pnl,
		&rec.CapitalAfter,
		&rec.Reason,
	)
	return rec, err
}
