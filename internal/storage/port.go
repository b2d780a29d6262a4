// Package storage persists whole collections as JSON documents behind a
// key/value port. Every mutation rewrites the full document for its key.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by a Port when nothing is stored under a key.
var ErrKeyNotFound = errors.New("storage key not found")

// Port reads and writes serialized collections by key.
type Port interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
