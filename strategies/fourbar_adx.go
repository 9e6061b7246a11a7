package strategies

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fourbar/broker"
	"fourbar/chain"
	"fourbar/indicators"
	"fourbar/market"
	"fourbar/metrics"
)

// FourBarADXConfig parameterizes the breakout strategy.
type FourBarADXConfig struct {
	Lookback       int     // bars in the breakout box
	ADXPeriod      int     // Wilder smoothing period
	EntryThreshold float64 // minimum trend strength to enter
	AuditSkips     bool    // record signals dropped for lack of a contract
}

// FourBarADXDefaults returns the standard parameter set.
func FourBarADXDefaults() FourBarADXConfig {
	return FourBarADXConfig{
		Lookback:       4,
		ADXPeriod:      14,
		EntryThreshold: 20,
		AuditSkips:     true,
	}
}

// FourBarADX trades index option legs on a four-bar breakout filtered by
// trend strength:
//   - Four strictly rising closes with ADX above threshold buy a call.
//   - Four strictly falling closes with ADX above threshold buy a put.
//   - An opposite breakout closes the open leg; the bar ends flat and
//     the reversal entry waits for the next bar's signal.
//
// Entries fill at the chosen leg's ask, exits at the held leg's bid.
type FourBarADX struct {
	cfg    FourBarADXConfig
	adx    *indicators.ADX
	window []market.Bar

	acct   *broker.Account
	source ChainSource
	log    zerolog.Logger
}

func NewFourBarADX(cfg FourBarADXConfig, acct *broker.Account, source ChainSource, log zerolog.Logger) *FourBarADX {
	if cfg.Lookback < 2 {
		cfg.Lookback = 4
	}
	if cfg.ADXPeriod <= 0 {
		cfg.ADXPeriod = 14
	}
	return &FourBarADX{
		cfg:    cfg,
		adx:    indicators.NewADX(cfg.ADXPeriod),
		window: make([]market.Bar, 0, cfg.Lookback),
		acct:   acct,
		source: source,
		log:    log.With().Str("strategy", "fourbar-adx").Logger(),
	}
}

func (s *FourBarADX) OnBar(ctx context.Context, b market.Bar) error {
	err := s.handleBar(ctx, b)

	sum := s.acct.Summarize()
	s.log.Info().
		Time("bar", b.Start).
		Float64("close", b.Close).
		Float64("capital", sum.CurrentCapital).
		Float64("total_pnl", sum.TotalPnl).
		Int("trades", sum.NumTrades).
		Msg("bar summary")
	return err
}

func (s *FourBarADX) handleBar(ctx context.Context, b market.Bar) error {
	strength := s.adx.Update(b)

	s.window = append(s.window, b)
	if len(s.window) > s.cfg.Lookback {
		s.window = s.window[len(s.window)-s.cfg.Lookback:]
	}

	sig, ok := FourBarSignal(s.window, s.cfg.Lookback)
	if !ok {
		return nil
	}
	metrics.Signals.WithLabelValues(string(sig.Direction)).Inc()

	s.log.Debug().
		Str("direction", string(sig.Direction)).
		Float64("trigger", sig.Trigger).
		Float64("adx", strength).
		Msg("breakout")

	// A flip bar only exits. The reversal entry waits for the next bar
	// that still signals the new direction.
	if pos, open := s.acct.Position(); open {
		if sig.Direction == pos.Side {
			return nil
		}
		return s.exit(ctx, pos, sig, b)
	}

	if strength <= s.cfg.EntryThreshold {
		s.log.Debug().Float64("adx", strength).Msg("trend too weak, no entry")
		return nil
	}
	return s.enter(ctx, sig, b)
}

func (s *FourBarADX) enter(ctx context.Context, sig Signal, b market.Bar) error {
	picks, err := s.source.Picks(ctx)
	if err != nil {
		return fmt.Errorf("entry chain fetch: %w", err)
	}

	var leg *chain.Leg
	if sig.Direction == broker.Long {
		leg = picks.Calls.Preferred()
	} else {
		leg = picks.Puts.Preferred()
	}
	if leg == nil || leg.Ask <= 0 {
		s.log.Warn().Str("direction", string(sig.Direction)).Msg("no tradable contract for signal")
		if s.cfg.AuditSkips {
			return s.acct.Skip(sig.Direction, "No tradable contract", b.Start)
		}
		return nil
	}

	err = s.acct.Open(sig.Direction, leg.Ask, *leg, b.Start)
	if broker.IsRejection(err) {
		s.log.Warn().Err(err).Str("direction", string(sig.Direction)).Msg("entry rejected")
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info().
		Str("direction", string(sig.Direction)).
		Int("strike", leg.Strike).
		Str("option_type", string(leg.OptionType)).
		Float64("ask", leg.Ask).
		Msg("entered position")
	return nil
}

func (s *FourBarADX) exit(ctx context.Context, pos broker.Position, sig Signal, b market.Bar) error {
	picks, err := s.source.Picks(ctx)
	if err != nil {
		return fmt.Errorf("exit chain fetch: %w", err)
	}

	leg := findLeg(picks, pos.Contract)
	if leg == nil || leg.Bid <= 0 {
		s.log.Warn().
			Int("strike", pos.Contract.Strike).
			Str("option_type", string(pos.Contract.OptionType)).
			Msg("held contract not quotable, holding position")
		return nil
	}

	s.log.Debug().
		Float64("bid", leg.Bid).
		Float64("unrealized", s.acct.MarkToMarket(leg.Bid)).
		Msg("exiting held leg")

	reason := fmt.Sprintf("Opposite signal (%s)", sig.Direction)
	pnl, err := s.acct.Close(leg.Bid, reason, b.Start)
	if broker.IsRejection(err) {
		return nil
	}
	if err != nil {
		return err
	}

	sum := s.acct.Summarize()
	s.log.Info().
		Float64("pnl", pnl).
		Float64("total_pnl", sum.TotalPnl).
		Int("trades", sum.NumTrades).
		Float64("capital", sum.CurrentCapital).
		Msg("closed position")
	return nil
}

// findLeg locates the held contract's current quote in a fresh snapshot.
func findLeg(picks *chain.Picks, held chain.Leg) *chain.Leg {
	ladder := picks.Calls
	if held.OptionType == chain.Put {
		ladder = picks.Puts
	}
	for _, leg := range []*chain.Leg{ladder.ATM, ladder.ITM1, ladder.ITM2, ladder.OTM1, ladder.OTM2} {
		if leg != nil && leg.Strike == held.Strike {
			return leg
		}
	}
	return nil
}
