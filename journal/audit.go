package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONL is the audit log writer: one JSON object per line, append-only.
// The file is the sole contract with the dashboard, which tails it
// read-only; each event goes out in a single Write so readers never see a
// torn record.
type JSONL struct {
	mu sync.Mutex
	f  *os.File
}

// NewJSONL opens (or creates) the audit log for appending.
func NewJSONL(path string) (*JSONL, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("audit log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &JSONL{f: f}, nil
}

// Record marshals event and appends it as one newline-terminated line.
func (j *JSONL) Record(event any) error {
	buf, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("audit marshal: %w", err)
	}
	buf = append(buf, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.f.Write(buf); err != nil {
		return fmt.Errorf("audit write: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (j *JSONL) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.f == nil {
		return nil
	}
	err := j.f.Close()
	j.f = nil
	return err
}
