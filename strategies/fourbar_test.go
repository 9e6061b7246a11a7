package strategies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fourbar/broker"
	"fourbar/market"
)

func barsFromCloses(closes ...float64) []market.Bar {
	start := time.Date(2025, 7, 14, 9, 15, 0, 0, market.IST)
	out := make([]market.Bar, len(closes))
	for i, c := range closes {
		out[i] = market.Bar{
			Start: start.Add(time.Duration(i) * 15 * time.Minute),
			Open:  c - 1,
			High:  c + 2,
			Low:   c - 3,
			Close: c,
		}
	}
	return out
}

func TestFourBarSignalRising(t *testing.T) {
	sig, ok := FourBarSignal(barsFromCloses(100, 101, 102, 103), 4)
	require.True(t, ok)
	assert.Equal(t, broker.Long, sig.Direction)
	assert.Equal(t, 105.0, sig.BoxHigh)
	assert.Equal(t, 97.0, sig.BoxLow)
	// A LONG breaks the box upward, so its trigger is the box high.
	assert.Equal(t, sig.BoxHigh, sig.Trigger)
}

func TestFourBarSignalFalling(t *testing.T) {
	sig, ok := FourBarSignal(barsFromCloses(103, 102, 101, 100), 4)
	require.True(t, ok)
	assert.Equal(t, broker.Short, sig.Direction)
	assert.Equal(t, 97.0, sig.BoxLow)
	// A SHORT breaks the box downward, so its trigger is the box low.
	assert.Equal(t, sig.BoxLow, sig.Trigger)
}

func TestFourBarSignalTieBreaksPattern(t *testing.T) {
	_, ok := FourBarSignal(barsFromCloses(100, 101, 101, 102), 4)
	assert.False(t, ok)
}

func TestFourBarSignalMixed(t *testing.T) {
	_, ok := FourBarSignal(barsFromCloses(100, 102, 101, 103), 4)
	assert.False(t, ok)
}

func TestFourBarSignalTooFewBars(t *testing.T) {
	_, ok := FourBarSignal(barsFromCloses(100, 101, 102), 4)
	assert.False(t, ok)
}

func TestFourBarSignalUsesTrailingWindow(t *testing.T) {
	// Older bars outside the lookback must not break the pattern.
	sig, ok := FourBarSignal(barsFromCloses(200, 100, 101, 102, 103), 4)
	require.True(t, ok)
	assert.Equal(t, broker.Long, sig.Direction)
}
