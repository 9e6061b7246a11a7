package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeEvent struct {
	Event   string  `json:"event"`
	Message string  `json:"message"`
	Capital float64 `json:"capital"`
}

func TestJSONLOneLinePerEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade_log.jsonl")

	a, err := NewJSONL(path)
	require.NoError(t, err)

	require.NoError(t, a.Record(fakeEvent{Event: "OPEN", Message: "Entered LONG", Capital: 95000}))
	require.NoError(t, a.Record(fakeEvent{Event: "CLOSE", Message: "Closed position", Capital: 100500.25}))
	require.NoError(t, a.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []fakeEvent
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev fakeEvent
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		lines = append(lines, ev)
	}
	require.NoError(t, sc.Err())
	require.Len(t, lines, 2)
	require.Equal(t, "OPEN", lines[0].Event)
	require.Equal(t, 100500.25, lines[1].Capital)
}

func TestJSONLAppendsAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade_log.jsonl")

	a, err := NewJSONL(path)
	require.NoError(t, err)
	require.NoError(t, a.Record(fakeEvent{Event: "OPEN"}))
	require.NoError(t, a.Close())

	// A restarted process must not truncate history.
	a, err = NewJSONL(path)
	require.NoError(t, err)
	require.NoError(t, a.Record(fakeEvent{Event: "CLOSE"}))
	require.NoError(t, a.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, len(splitLines(data)))
}

func splitLines(data []byte) [][]byte {
	var out [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			out = append(out, data[start:i])
			start = i + 1
		}
	}
	return out
}

func TestJSONLCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trade_log.jsonl")

	a, err := NewJSONL(path)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)
}
