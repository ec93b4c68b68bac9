package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend keeps documents in process memory. It is used by tests and
// by the server when no persistent backend is configured.
type MemoryBackend struct {
	mu     sync.RWMutex
	docs   map[string][]byte
	closed bool
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

// Load returns a copy of the user's document.
func (b *MemoryBackend) Load(ctx context.Context, user string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, false, ErrClosed
	}
	data, ok := b.docs[user]
	return slices.Clone(data), ok, nil
}

// Save stores a copy of data.
func (b *MemoryBackend) Save(ctx context.Context, user string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.docs[user] = slices.Clone(data)
	return nil
}

// Close marks the backend closed.
func (b *MemoryBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

var _ Backend = (*MemoryBackend)(nil)

// NullBackend is a no-op backend that never stores anything.
// Useful for demos or when persistence should be disabled.
type NullBackend struct{}

// NewNullBackend creates a null backend.
func NewNullBackend() Backend {
	return NullBackend{}
}

// Load always reports a missing document.
func (NullBackend) Load(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Save does nothing.
func (NullBackend) Save(context.Context, string, []byte) error { return nil }

// Close does nothing.
func (NullBackend) Close() error { return nil }

var _ Backend = NullBackend{}
