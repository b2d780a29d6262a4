package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store holds one JSON-serialized value under one key of a Port.
//
// The in-memory value is guarded by a per-handle mutex. Nothing coordinates
// separate Store handles that share a Port: each one read-modify-writes the
// whole document, so the last writer wins.
type Store[V any] struct {
	port Port
	key  string
	log  *zap.Logger

	mu     sync.Mutex
	value  V
	loaded bool
}

// NewStore returns a handle for key. Nothing is read until LoadOrSeed.
func NewStore[V any](port Port, key string, log *zap.Logger) *Store[V] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store[V]{port: port, key: key, log: log.With(zap.String("store", key))}
}

// Key returns the storage key this handle persists to.
func (s *Store[V]) Key() string {
	return s.key
}

// LoadOrSeed returns the persisted value when one exists and parses. Otherwise
// seed is called once, its result persisted and returned. After the first
// successful call the in-memory value is returned as is.
func (s *Store[V]) LoadOrSeed(ctx context.Context, seed func() V) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.value, nil
	}

	value, found, err := s.read(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	if !found {
		if seed != nil {
			value = seed()
		}
		if err := s.write(ctx, value); err != nil {
			var zero V
			return zero, err
		}
		s.log.Info("seeded store")
	}

	s.value = value
	s.loaded = true
	return s.value, nil
}

// Snapshot returns the in-memory value.
func (s *Store[V]) Snapshot() V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Latest re-reads the persisted value and adopts it. When nothing usable is
// persisted the in-memory value is kept.
func (s *Store[V]) Latest(ctx context.Context) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		var zero V
		return zero, err
	}
	return s.value, nil
}

// Mutate applies fn to the in-memory value and persists the result. If fn
// returns an error nothing is written and the in-memory value is unchanged.
func (s *Store[V]) Mutate(ctx context.Context, fn func(V) (V, error)) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, fn)
}

// MutateLatest is Mutate based on the latest persisted value rather than the
// in-memory one, so writes made through other handles are merged instead of
// overwritten.
func (s *Store[V]) MutateLatest(ctx context.Context, fn func(V) (V, error)) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		var zero V
		return zero, err
	}
	return s.apply(ctx, fn)
}

// Reset deletes the persisted value and forgets the in-memory one. The next
// LoadOrSeed seeds again.
func (s *Store[V]) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.port.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("reset %s: %w", s.key, err)
	}
	var zero V
	s.value = zero
	s.loaded = false
	return nil
}

func (s *Store[V]) apply(ctx context.Context, fn func(V) (V, error)) (V, error) {
	next, err := fn(s.value)
	if err != nil {
		var zero V
		return zero, err
	}
	if err := s.write(ctx, next); err != nil {
		var zero V
		return zero, err
	}
	s.value = next
	s.loaded = true
	return next, nil
}

func (s *Store[V]) refresh(ctx context.Context) error {
	value, found, err := s.read(ctx)
	if err != nil {
		return err
	}
	if found {
		s.value = value
		s.loaded = true
	}
	return nil
}

// read returns found=false both when the key is absent and when the stored
// document does not parse; corrupt data is treated as missing.
func (s *Store[V]) read(ctx context.Context) (V, bool, error) {
	var value V
	data, err := s.port.Read(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("load %s: %w", s.key, err)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		s.log.Warn("discarding unreadable persisted data", zap.Error(err), zap.Int("bytes", len(data)))
		var zero V
		return zero, false, nil
	}
	return value, true, nil
}

func (s *Store[V]) write(ctx context.Context, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.port.Write(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist %s: %w", s.key, err)
	}
	return nil
}
