// Package redis implements a settings backend on Redis. Each user document
// is a single string value under a prefixed key.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/matzehuels/forgeboard/pkg/store"
)

// DefaultPrefix namespaces keys written by the backend.
const DefaultPrefix = "forgeboard:settings:"

// Config holds connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Backend stores documents in Redis.
type Backend struct {
	client goredis.UniversalClient
	prefix string
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis backend: empty address")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis backend: ping %s: %w", cfg.Addr, err)
	}
	return NewFromClient(client, cfg.Prefix), nil
}

// NewFromClient wraps an existing client. An empty prefix uses
// DefaultPrefix.
func NewFromClient(client goredis.UniversalClient, prefix string) *Backend {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Backend{client: client, prefix: prefix}
}

// Key returns the Redis key for user.
func (b *Backend) Key(user string) string {
	return b.prefix + user
}

// Load reads the user's document.
func (b *Backend) Load(ctx context.Context, user string) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, b.Key(user)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, store.Retryable(fmt.Errorf("redis get: %w", err))
	}
	return data, true, nil
}

// Save writes the user's document without expiry.
func (b *Backend) Save(ctx context.Context, user string, data []byte) error {
	if err := b.client.Set(ctx, b.Key(user), data, 0).Err(); err != nil {
		return store.Retryable(fmt.Errorf("redis set: %w", err))
	}
	return nil
}

// Close closes the client.
func (b *Backend) Close() error {
	return b.client.Close()
}

var _ store.Backend = (*Backend)(nil)
