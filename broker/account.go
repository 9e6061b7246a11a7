// Package broker implements a paper trading account: a one-position
// state machine with configurable slippage, per-symbol lot sizes, a
// JSONL audit trail and an optional trade journal.
package broker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fourbar/chain"
	"fourbar/journal"
)

// Side is the direction of a position.
type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Long {
		return Short
	}
	return Long
}

// SlippageMode selects how fills are adjusted away from the quote.
type SlippageMode string

const (
	// SlipLegacy applies slippage directionally per side: longs pay up
	// on entry and give up on exit, shorts the mirror image.
	SlipLegacy SlippageMode = "legacy"

	// SlipAdverse models both sides as option premium buys: every entry
	// fills above the quote and every exit below it, and pnl is always
	// exit minus entry.
	SlipAdverse SlippageMode = "adverse"
)

// Sentinel rejection errors. All of them leave the account unchanged.
var (
	ErrAlreadyOpen         = errors.New("already in position")
	ErrInsufficientCapital = errors.New("insufficient capital")
	ErrNoPosition          = errors.New("no open position")
)

// IsRejection reports whether err is an order rejection rather than an
// infrastructure failure such as an audit write error.
func IsRejection(err error) bool {
	return errors.Is(err, ErrAlreadyOpen) ||
		errors.Is(err, ErrInsufficientCapital) ||
		errors.Is(err, ErrNoPosition)
}

// Config holds account parameters.
type Config struct {
	InitialCapital float64        `yaml:"initial_capital"`
	Slippage       float64        `yaml:"slippage"`
	SlippageMode   SlippageMode   `yaml:"slippage_mode"`
	LotSizes       map[string]int `yaml:"lot_sizes"`
	DefaultLot     int            `yaml:"default_lot"`
}

// LotSize returns the contract lot for symbol, falling back to
// DefaultLot when the symbol is not mapped.
func (c Config) LotSize(symbol string) int {
	if n, ok := c.LotSizes[symbol]; ok && n > 0 {
		return n
	}
	return c.DefaultLot
}

// Position is an open trade.
type Position struct {
	TradeID  string
	Side     Side
	Entry    float64
	Qty      int
	Contract chain.Leg
	OpenTime time.Time
}

// ClosedTrade is the immutable record of a completed round trip.
type ClosedTrade struct {
	TradeID     string    `json:"trade_id"`
	Side        Side      `json:"side"`
	EntryPrice  float64   `json:"entry_price"`
	ExitPrice   float64   `json:"exit_price"`
	Qty         int       `json:"qty"`
	Contract    chain.Leg `json:"contract"`
	EntryTime   time.Time `json:"entry_time"`
	ExitTime    time.Time `json:"exit_time"`
	Pnl         float64   `json:"pnl"`
	CapitalPost float64   `json:"capital_post"`
	Reason      string    `json:"reason"`
}

// Summary is a point-in-time account snapshot.
type Summary struct {
	InitialCapital float64
	CurrentCapital float64
	TotalPnl       float64
	NumTrades      int
}

// Account is a paper broker holding at most one position. All methods
// are safe for concurrent use.
type Account struct {
	mu       sync.Mutex
	cfg      Config
	capital  float64
	position *Position
	history  []ClosedTrade
	audit    journal.Audit
	trades   journal.Journal // optional
}

// NewAccount returns an account funded with cfg.InitialCapital. audit
// receives every order event; trades, if non-nil, receives closed
// trades.
func NewAccount(cfg Config, audit journal.Audit, trades journal.Journal) *Account {
	if cfg.SlippageMode == "" {
		cfg.SlippageMode = SlipLegacy
	}
	if cfg.DefaultLot <= 0 {
		cfg.DefaultLot = 50
	}
	return &Account{
		cfg:     cfg,
		capital: cfg.InitialCapital,
		audit:   audit,
		trades:  trades,
	}
}

// Open enters a position of side at quote for the given contract.
// Rejections (ErrAlreadyOpen, ErrInsufficientCapital) are audited and
// leave the account unchanged.
func (a *Account) Open(side Side, quote float64, contract chain.Leg, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.position != nil {
		return a.reject(side, "Already in position", now)
	}

	qty := a.cfg.LotSize(contract.Symbol)
	cost := quote * float64(qty)
	if cost > a.capital {
		msg := fmt.Sprintf("Insufficient capital for trade: have %.2f, need %.2f", a.capital, cost)
		if err := a.reject(side, msg, now); err != nil {
			return err
		}
		return ErrInsufficientCapital
	}

	entry := a.entryFill(side, quote)
	a.capital -= cost

	pos := &Position{
		TradeID:  tradeIDs.next(now),
		Side:     side,
		Entry:    entry,
		Qty:      qty,
		Contract: contract,
		OpenTime: now,
	}
	a.position = pos

	return a.record(OpenEvent{
		EventHeader: EventHeader{
			Event:   EventOpen,
			Message: fmt.Sprintf("Entered %s", side),
			Capital: a.capital,
			Time:    now,
		},
		TradeID:    pos.TradeID,
		Side:       side,
		EntryPrice: entry,
		Qty:        qty,
		Contract:   contract,
	})
}

// Close exits the open position at quote and returns the realized pnl.
// Closing with no position returns ErrNoPosition after auditing the
// rejection.
func (a *Account) Close(quote float64, reason string, now time.Time) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.position == nil {
		if err := a.reject("", "No open position to exit", now); err != nil {
			return 0, err
		}
		return 0, ErrNoPosition
	}

	pos := a.position
	exit := a.exitFill(pos.Side, quote)
	pnl := a.pnl(pos.Side, pos.Entry, exit) * float64(pos.Qty)
	a.capital += exit * float64(pos.Qty)
	a.position = nil

	trade := ClosedTrade{
		TradeID:     pos.TradeID,
		Side:        pos.Side,
		EntryPrice:  pos.Entry,
		ExitPrice:   exit,
		Qty:         pos.Qty,
		Contract:    pos.Contract,
		EntryTime:   pos.OpenTime,
		ExitTime:    now,
		Pnl:         pnl,
		CapitalPost: a.capital,
		Reason:      reason,
	}
	a.history = append(a.history, trade)

	if err := a.record(CloseEvent{
		EventHeader: EventHeader{
			Event:   EventClose,
			Message: "Closed position",
			Capital: a.capital,
			Time:    now,
		},
		ClosedTrade: trade,
	}); err != nil {
		return pnl, err
	}

	if a.trades != nil {
		rec := journal.TradeRecord{
			TradeID:      trade.TradeID,
			Side:         string(trade.Side),
			Symbol:       trade.Contract.Symbol,
			Strike:       trade.Contract.Strike,
			OptionType:   string(trade.Contract.OptionType),
			Expiry:       trade.Contract.Expiry,
			Qty:          trade.Qty,
			EntryPrice:   trade.EntryPrice,
			ExitPrice:    trade.ExitPrice,
			EntryTime:    trade.EntryTime,
			ExitTime:     trade.ExitTime,
			Pnl:          trade.Pnl,
			CapitalAfter: trade.CapitalPost,
			Reason:       trade.Reason,
		}
		if err := a.trades.RecordTrade(rec); err != nil {
			return pnl, fmt.Errorf("journal trade %s: %w", trade.TradeID, err)
		}
	}
	return pnl, nil
}

// Skip audits a signal that produced no order, eg no tradable contract.
func (a *Account) Skip(direction Side, msg string, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.record(SkipEvent{
		EventHeader: EventHeader{
			Event:   EventSkipped,
			Message: msg,
			Capital: a.capital,
			Time:    now,
		},
		Direction: direction,
	})
}

// MarkToMarket returns the unrealized pnl of the open position against
// the given quote, 0 when flat. It never changes account state.
func (a *Account) MarkToMarket(last float64) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.position == nil {
		return 0
	}
	return a.pnl(a.position.Side, a.position.Entry, last) * float64(a.position.Qty)
}

// Flat reports whether the account holds no position.
func (a *Account) Flat() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position == nil
}

// Position returns a copy of the open position, if any.
func (a *Account) Position() (Position, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.position == nil {
		return Position{}, false
	}
	return *a.position, true
}

// Capital returns the current free capital.
func (a *Account) Capital() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.capital
}

// History returns a copy of all closed trades in close order.
func (a *Account) History() []ClosedTrade {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]ClosedTrade, len(a.history))
	copy(out, a.history)
	return out
}

// Summarize reports total realized pnl and trade count. An open
// position is not marked into the totals.
func (a *Account) Summarize() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	var pnl float64
	for _, t := range a.history {
		pnl += t.Pnl
	}
	return Summary{
		InitialCapital: a.cfg.InitialCapital,
		CurrentCapital: a.capital,
		TotalPnl:       pnl,
		NumTrades:      len(a.history),
	}
}

func (a *Account) entryFill(side Side, quote float64) float64 {
	s := a.cfg.Slippage
	if a.cfg.SlippageMode == SlipAdverse {
		return quote * (1 + s)
	}
	if side == Long {
		return quote * (1 + s)
	}
	return quote * (1 - s)
}

func (a *Account) exitFill(side Side, quote float64) float64 {
	s := a.cfg.Slippage
	if a.cfg.SlippageMode == SlipAdverse {
		return quote * (1 - s)
	}
	if side == Long {
		return quote * (1 - s)
	}
	return quote * (1 + s)
}

func (a *Account) pnl(side Side, entry, exit float64) float64 {
	if a.cfg.SlippageMode == SlipAdverse || side == Long {
		return exit - entry
	}
	return entry - exit
}

// reject audits a refused order and returns the matching sentinel. For
// insufficient-capital the caller wraps its own message, so reject only
// maps the fixed messages.
func (a *Account) reject(side Side, msg string, now time.Time) error {
	ev := RejectEvent{
		EventHeader: EventHeader{
			Event:   EventRejected,
			Message: msg,
			Capital: a.capital,
			Time:    now,
		},
		Side: side,
	}
	if err := a.record(ev); err != nil {
		return err
	}
	switch msg {
	case "Already in position":
		return ErrAlreadyOpen
	case "No open position to exit":
		return ErrNoPosition
	}
	return nil
}

func (a *Account) record(event any) error {
	if a.audit == nil {
		return nil
	}
	if err := a.audit.Record(event); err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	return nil
}
