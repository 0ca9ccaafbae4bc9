package repository

import (
	"context"
	"sync"

	"telemetry_monitor/internal/models"
)

// MemoryErrorBuffer keeps entries for the lifetime of the process.
type MemoryErrorBuffer struct {
	mu      sync.Mutex
	entries []models.ErrorEntry
}

func NewMemoryErrorBuffer() *MemoryErrorBuffer { return &MemoryErrorBuffer{} }

var _ ErrorBuffer = (*MemoryErrorBuffer)(nil)

func (b *MemoryErrorBuffer) Append(_ context.Context, e models.ErrorEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
	return nil
}

// List returns a copy of the raw payloads, oldest first.
func (b *MemoryErrorBuffer) List(_ context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e.Raw)
	}
	return out, nil
}

func (b *MemoryErrorBuffer) Count(_ context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries), nil
}

// Clear drops every entry and reports how many were dropped.
func (b *MemoryErrorBuffer) Clear(_ context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.entries)
	b.entries = nil
	return n, nil
}
