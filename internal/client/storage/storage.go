// Package storage persists small client-side values by key.
package storage

import (
	"context"
	"io"
)

// Storage is a key/value store for client state. Get returns nil, nil when
// the key is absent.
type Storage interface {
	io.Closer
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Open returns redis-backed storage when redisURL is set, sqlite storage at
// path otherwise.
func Open(ctx context.Context, path, redisURL string) (Storage, error) {
	if redisURL != "" {
		return NewRedisStorage(ctx, redisURL)
	}
	return NewSQLiteStorage(ctx, path)
}
