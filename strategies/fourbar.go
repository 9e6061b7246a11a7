package strategies

import (
	"fourbar/broker"
	"fourbar/market"
)

// Signal is a detected box breakout.
type Signal struct {
	Direction broker.Side
	Trigger   float64 // box bound broken: high for LONG, low for SHORT
	BoxHigh   float64
	BoxLow    float64
}

// FourBarSignal scans the most recent lookback bars for a breakout box:
// strictly rising closes signal LONG, strictly falling closes signal
// SHORT. Any equal pair of adjacent closes breaks the pattern. The box
// bounds are the extremes of the window's highs and lows.
func FourBarSignal(bars []market.Bar, lookback int) (Signal, bool) {
	if lookback < 2 || len(bars) < lookback {
		return Signal{}, false
	}
	window := bars[len(bars)-lookback:]

	rising, falling := true, true
	for i := 1; i < len(window); i++ {
		prev, cur := window[i-1].Close, window[i].Close
		if cur <= prev {
			rising = false
		}
		if cur >= prev {
			falling = false
		}
	}
	if !rising && !falling {
		return Signal{}, false
	}

	sig := Signal{
		BoxHigh: window[0].High,
		BoxLow:  window[0].Low,
	}
	for _, b := range window[1:] {
		if b.High > sig.BoxHigh {
			sig.BoxHigh = b.High
		}
		if b.Low < sig.BoxLow {
			sig.BoxLow = b.Low
		}
	}

	if rising {
		sig.Direction = broker.Long
		sig.Trigger = sig.BoxHigh
	} else {
		sig.Direction = broker.Short
		sig.Trigger = sig.BoxLow
	}
	return sig, true
}
