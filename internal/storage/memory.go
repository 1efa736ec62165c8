package storage

import (
	"context"
	"sync"
)

// MemoryProvider keeps submissions in a slice protected by a RWMutex.
// Everything is lost when the process exits.
type MemoryProvider struct {
	mu      sync.RWMutex
	entries []Submission
	closed  bool
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

func (m *MemoryProvider) AppendSubmission(ctx context.Context, s Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.entries = append(m.entries, s)
	return nil
}

func (m *MemoryProvider) ListSubmissions(ctx context.Context) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	out := make([]Submission, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryProvider) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.entries = nil
	return nil
}
