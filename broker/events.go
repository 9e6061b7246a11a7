package broker

import (
	"time"

	"fourbar/chain"
)

// EventKind discriminates audit log records.
type EventKind string

const (
	EventOpen     EventKind = "OPEN"
	EventClose    EventKind = "CLOSE"
	EventRejected EventKind = "REJECTED"
	EventSkipped  EventKind = "SKIPPED"
)

// EventHeader carries the fields common to every audit record. It is
// embedded in the concrete event types so encoding/json flattens it into
// the top-level object.
type EventHeader struct {
	Event   EventKind `json:"event"`
	Message string    `json:"message,omitempty"`
	Capital float64   `json:"capital"`
	Time    time.Time `json:"time"`
}

// OpenEvent is written when a position is entered.
type OpenEvent struct {
	EventHeader
	TradeID    string    `json:"trade_id"`
	Side       Side      `json:"side"`
	EntryPrice float64   `json:"entry_price"`
	Qty        int       `json:"qty"`
	Contract   chain.Leg `json:"contract"`
}

// CloseEvent is written when a position is exited. The full closed trade
// is flattened into the record so the audit line stands on its own.
type CloseEvent struct {
	EventHeader
	ClosedTrade
}

// RejectEvent is written when an order is refused before any state
// change, eg opening on top of an existing position.
type RejectEvent struct {
	EventHeader
	Side Side `json:"side,omitempty"`
}

// SkipEvent is written when the strategy saw a signal but no tradable
// contract, if skip auditing is enabled.
type SkipEvent struct {
	EventHeader
	Direction Side `json:"direction"`
}
