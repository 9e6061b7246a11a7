package broker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeIDsUniqueAndOrdered(t *testing.T) {
	open := time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 100; i++ {
		id := tradeIDs.next(open.Add(time.Duration(i) * time.Millisecond))
		require.Len(t, id, 26)
		require.False(t, seen[id], "duplicate trade ID %s", id)
		seen[id] = true
		if prev != "" {
			assert.Greater(t, id, prev)
		}
		prev = id
	}
}

func TestTradeIDsSameMillisecondStillOrdered(t *testing.T) {
	open := time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC)

	a := tradeIDs.next(open)
	b := tradeIDs.next(open)
	assert.NotEqual(t, a, b)
	assert.Greater(t, b, a)
}
