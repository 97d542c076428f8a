package mirror

import (
	"errors"
	"sync"
)

// ErrQuotaExceeded is returned by a MemoryBackend told to reject writes.
var ErrQuotaExceeded = errors.New("mirror quota exceeded")

// MemoryBackend is an in-process Backend, mainly for tests.
type MemoryBackend struct {
	mu         sync.RWMutex
	values     map[string][]byte
	failWrites bool
	writes     int
}

// NewMemoryBackend returns an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Read implements Backend.
func (b *MemoryBackend) Read(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	dup := make([]byte, len(v))
	copy(dup, v)
	return dup, nil
}

// Write implements Backend.
func (b *MemoryBackend) Write(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failWrites {
		return ErrQuotaExceeded
	}
	dup := make([]byte, len(value))
	copy(dup, value)
	b.values[key] = dup
	b.writes++
	return nil
}

// Set stores raw bytes, bypassing the failure switch.
func (b *MemoryBackend) Set(key string, value []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = append([]byte(nil), value...)
}

// FailWrites makes subsequent writes fail with ErrQuotaExceeded.
func (b *MemoryBackend) FailWrites(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failWrites = fail
}

// Writes counts successful writes.
func (b *MemoryBackend) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

// Close implements Backend.
func (b *MemoryBackend) Close() error { return nil }
