package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testTrade(id string, exit time.Time, pnl float64) TradeRecord {
	return TradeRecord{
		TradeID:      id,
		Side:         "LONG",
		Symbol:       "NIFTY",
		Strike:       22500,
		OptionType:   "CE",
		Expiry:       "31-Jul-2025",
		Qty:          50,
		EntryPrice:   100.1,
		ExitPrice:    109.89,
		EntryTime:    exit.Add(-30 * time.Minute),
		ExitTime:     exit,
		Pnl:          pnl,
		CapitalAfter: 100489.5,
		Reason:       "Opposite signal (SHORT)",
	}
}

func TestSQLiteRecordAndGet(t *testing.T) {
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	exit := time.Date(2025, 7, 14, 11, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(testTrade("t-1", exit, 489.5)))

	rec, err := j.GetTrade("t-1")
	require.NoError(t, err)
	require.Equal(t, "LONG", rec.Side)
	require.Equal(t, 22500, rec.Strike)
	require.Equal(t, "CE", rec.OptionType)
	require.InDelta(t, 489.5, rec.Pnl, 1e-9)
	require.True(t, rec.ExitTime.Equal(exit))
}

func TestSQLiteGetMissingTrade(t *testing.T) {
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	_, err = j.GetTrade("nope")
	require.Error(t, err)
}

func TestSQLiteListTradesClosedBetween(t *testing.T) {
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	day := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(testTrade("t-1", day.Add(10*time.Hour), 100)))
	require.NoError(t, j.RecordTrade(testTrade("t-2", day.Add(14*time.Hour), -40)))
	require.NoError(t, j.RecordTrade(testTrade("t-3", day.Add(30*time.Hour), 75)))

	recs, err := j.ListTradesClosedBetween(day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "t-1", recs[0].TradeID)
	require.Equal(t, "t-2", recs[1].TradeID)
}
