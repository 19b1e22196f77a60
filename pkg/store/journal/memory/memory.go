// Package memory keeps the journal blob in process memory. Nothing survives a
// restart; it backs tests and throwaway runs.
package memory

import (
	"context"
	"sync"

	"github.com/twnkl2713/moodflow/pkg/store/journal"
)

// MemoryBackend implements journal.Backend with a byte slice.
type MemoryBackend struct {
	mu      sync.RWMutex
	data    []byte
	written bool
	writes  int
}

// NewMemoryBackend returns an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// NewMemoryBackendWithData returns a backend that already holds data, as if it
// had been written before.
func NewMemoryBackendWithData(data []byte) *MemoryBackend {
	return &MemoryBackend{
		data:    append([]byte(nil), data...),
		written: true,
	}
}

func (b *MemoryBackend) ReadAll(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.written {
		return nil, journal.ErrNotExist
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBackend) WriteAll(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append([]byte(nil), data...)
	b.written = true
	b.writes++
	return nil
}

// Writes returns how many times WriteAll succeeded.
func (b *MemoryBackend) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

func (b *MemoryBackend) Healthcheck(ctx context.Context) error {
	return ctx.Err()
}

func (b *MemoryBackend) Close() error {
	return nil
}

func (b *MemoryBackend) Name() string {
	return "memory"
}
