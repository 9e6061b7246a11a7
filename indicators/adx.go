package indicators

import (
	"math"

	"fourbar/market"
)

// epsilonTR seeds the smoothed true range so the first real update can
// never divide by zero.
const epsilonTR = 1e-9

// ADX is an incrementally updated Wilder Average Directional Index.
//
// Unlike the textbook 2N warmup, this tracker is seeded by its first bar
// and produces a raw DX as its first real reading, then Wilder-smooths
// from there. The recurrence is deterministic: the same bar sequence
// always reproduces the same values bit for bit.
//
// Usage:
//
//	adx := indicators.NewADX(14)
//	strength := adx.Update(bar)
//	if strength > 20 { ... }
type ADX struct {
	n float64

	seeded    bool
	prevClose float64
	prevHigh  float64
	prevLow   float64

	smTR      float64
	smPlusDM  float64
	smMinusDM float64

	value float64
}

// NewADX returns a tracker with the given smoothing period.
func NewADX(period int) *ADX {
	if period <= 0 {
		panic("ADX period must be > 0")
	}
	return &ADX{n: float64(period)}
}

// Seeded reports whether the first bar has been consumed.
func (a *ADX) Seeded() bool { return a.seeded }

// Value returns the last computed trend strength, in [0, 100].
func (a *ADX) Value() float64 { return a.value }

// Update consumes one completed bar and returns the new trend strength.
//
// The first bar only seeds internal state (prev high/low/close are all set
// to its close) and always returns 0 — one bar cannot carry a trend reading.
func (a *ADX) Update(b market.Bar) float64 {
	if !a.seeded {
		a.prevClose = b.Close
		a.prevHigh = b.Close
		a.prevLow = b.Close
		a.smTR = epsilonTR
		a.smPlusDM = 0
		a.smMinusDM = 0
		a.value = 0
		a.seeded = true
		return 0
	}

	tr := max3(b.High-b.Low, math.Abs(b.High-a.prevClose), math.Abs(b.Low-a.prevClose))

	plusDM := math.Max(b.High-a.prevHigh, 0)
	minusDM := math.Max(a.prevLow-b.Low, 0)
	// Only the larger directional move survives each bar. Ties zero plus.
	if plusDM < minusDM {
		plusDM = 0
	} else {
		minusDM = 0
	}

	// Wilder smoothing: smoothed = prior - prior/N + raw
	a.smTR = a.smTR - a.smTR/a.n + tr
	a.smPlusDM = a.smPlusDM - a.smPlusDM/a.n + plusDM
	a.smMinusDM = a.smMinusDM - a.smMinusDM/a.n + minusDM

	var plusDI, minusDI float64
	if a.smTR != 0 {
		plusDI = 100 * a.smPlusDM / a.smTR
		minusDI = 100 * a.smMinusDM / a.smTR
	}

	var dx float64
	if den := plusDI + minusDI; den != 0 {
		dx = 100 * math.Abs(plusDI-minusDI) / den
	}

	// The first real reading is the raw DX; after that, Wilder-smooth.
	if a.value == 0 {
		a.value = dx
	} else {
		a.value = (a.value*(a.n-1) + dx) / a.n
	}
	// Smoothing toward a pinned DX of 100 can drift a hair past the bound
	// in float arithmetic. Keep the reading in [0, 100].
	a.value = math.Min(math.Max(a.value, 0), 100)

	a.prevClose = b.Close
	a.prevHigh = b.High
	a.prevLow = b.Low
	return a.value
}

func max3(a, b, c float64) float64 {
	if a >= b && a >= c {
		return a
	}
	if b >= a && b >= c {
		return b
	}
	return c
}
