package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend stores one JSON file per user under a directory.
// File names are hashed so arbitrary user IDs map to safe paths.
type FileBackend struct {
	mu  sync.RWMutex
	dir string
}

// NewFileBackend creates a file backend rooted at dir, creating it if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("file backend: empty directory")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Load reads the user's document.
func (b *FileBackend) Load(ctx context.Context, user string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, err := os.ReadFile(b.path(user))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read settings file: %w", err)
	}
	return data, true, nil
}

// Save writes the user's document atomically via a temp file and rename.
func (b *FileBackend) Save(ctx context.Context, user string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := b.path(user)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// Close does nothing for the file backend.
func (b *FileBackend) Close() error { return nil }

// Dir returns the backend root directory.
func (b *FileBackend) Dir() string { return b.dir }

// path converts a user ID to a file path.
// The first 2 hash chars are used as a subdirectory for distribution.
func (b *FileBackend) path(user string) string {
	hash := Hash([]byte(user))
	return filepath.Join(b.dir, hash[:2], hash[2:]+".json")
}

// Hash computes a SHA-256 hash of the input data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

var _ Backend = (*FileBackend)(nil)
