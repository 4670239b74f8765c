// Package worker contains the consumers run by the spendbook-worker binary.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"spendbook/internal/events"
)

// Auditor appends every expense event to an append-only audit log, one JSON
// object per line. The log is the durable trail of who changed what and when;
// the web app itself keeps only current state.
type Auditor struct {
	mu   sync.Mutex
	path string
}

func NewAuditor(path string) (*Auditor, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit log directory: %w", err)
	}
	return &Auditor{path: path}, nil
}

// HandleEvent records one event. Returning an error requeues the message,
// so the write must either fully succeed or leave the log untouched.
func (a *Auditor) HandleEvent(ctx context.Context, event events.ExpenseEvent) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}
	line = append(line, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync audit log: %w", err)
	}

	slog.InfoContext(ctx, "Recorded expense event",
		"event", event.Name,
		"expense_id", event.ExpenseID,
		"owner", event.Owner)
	return nil
}

// Records reads the full audit trail back, oldest first. A missing log file
// means no events were recorded yet.
func (a *Auditor) Records() ([]events.ExpenseEvent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	var out []events.ExpenseEvent
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var e events.ExpenseEvent
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode audit record: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
