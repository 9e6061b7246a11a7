// Package engine runs the polling loop: poll the spot index, fold quotes
// into bars, and hand completed bars to the strategy, but only while the
// exchange session is open.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fourbar/market"
	"fourbar/metrics"
)

// MarketData is the live feed the loop polls.
type MarketData interface {
	// Spot returns the index last price.
	Spot(ctx context.Context) (float64, error)
	// SessionOpen reports the exchange's own view of the capital
	// market segment.
	SessionOpen(ctx context.Context) (bool, error)
}

// BarHandler consumes completed bars.
type BarHandler interface {
	OnBar(ctx context.Context, b market.Bar) error
}

// Config holds loop timing.
type Config struct {
	Interval       time.Duration // poll cadence while the session is open
	ClosedInterval time.Duration // cadence while waiting for the open
}

// Loop drives one instrument through one strategy.
type Loop struct {
	cfg     Config
	data    MarketData
	agg     *market.Aggregator
	window  market.SessionWindow
	handler BarHandler
	log     zerolog.Logger

	now func() time.Time // test hook
}

func NewLoop(cfg Config, data MarketData, agg *market.Aggregator, window market.SessionWindow, handler BarHandler, log zerolog.Logger) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = 3 * time.Second
	}
	if cfg.ClosedInterval <= 0 {
		cfg.ClosedInterval = time.Minute
	}
	return &Loop{
		cfg:     cfg,
		data:    data,
		agg:     agg,
		window:  window,
		handler: handler,
		log:     log.With().Str("component", "engine").Logger(),
		now:     time.Now,
	}
}

// Tick performs one poll. It reports whether the session was open so Run
// can slow the cadence outside trading hours. Feed hiccups are logged
// and swallowed; only strategy errors propagate.
func (l *Loop) Tick(ctx context.Context) (open bool, err error) {
	now := l.now()
	if !l.window.Contains(now) {
		metrics.TicksSkipped.WithLabelValues("outside_window").Inc()
		return false, nil
	}

	sessionOpen, err := l.data.SessionOpen(ctx)
	if err != nil {
		// A status outage should not stall trading inside the window.
		l.log.Warn().Err(err).Msg("market status unavailable, assuming open")
		sessionOpen = true
	}
	if !sessionOpen {
		metrics.TicksSkipped.WithLabelValues("session_closed").Inc()
		return false, nil
	}

	spot, err := l.data.Spot(ctx)
	if err != nil || spot <= 0 {
		metrics.TicksSkipped.WithLabelValues("no_spot").Inc()
		l.log.Debug().Err(err).Msg("no spot this poll")
		return true, nil
	}
	metrics.Ticks.Inc()

	bar, done := l.agg.Observe(now, spot)
	if !done {
		return true, nil
	}
	metrics.Bars.Inc()
	l.log.Debug().
		Time("start", bar.Start).
		Float64("open", bar.Open).
		Float64("close", bar.Close).
		Msg("bar complete")

	if err := l.handler.OnBar(ctx, bar); err != nil {
		metrics.StrategyErrors.Inc()
		return true, err
	}
	return true, nil
}

// Run polls until ctx is cancelled. Strategy errors are logged and the
// loop keeps going; a dropped poll must not end the session.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info().
		Dur("interval", l.cfg.Interval).
		Msg("engine started")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			l.log.Info().Msg("engine stopped")
			return ctx.Err()
		case <-timer.C:
		}

		open, err := l.Tick(ctx)
		if err != nil {
			l.log.Error().Err(err).Msg("strategy error")
		}

		next := l.cfg.Interval
		if !open {
			next = l.cfg.ClosedInterval
		}
		timer.Reset(next)
	}
}
