package storage

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Schema tells a Collection how to identify and stamp its entities.
type Schema[T any] struct {
	// ID returns the entity's identifier.
	ID func(*T) string
	// Init assigns a new entity its id and creation timestamps.
	Init func(item *T, id string, now time.Time)
	// Touch refreshes an update timestamp. Optional.
	Touch func(item *T, now time.Time)
}

// Option configures a Collection.
type Option func(*options)

type options struct {
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// WithLogger sets the logger used for store diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithClock replaces time.Now for creation and update stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the default time-ordered UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// NewTimeOrderedID returns a UUIDv7 string. Successive ids sort in creation order.
func NewTimeOrderedID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// errSkip aborts a mutation that has nothing to change.
var errSkip = errors.New("nothing to change")

// Collection is an ordered list of entities persisted as one document.
type Collection[T any] struct {
	store  *Store[[]T]
	schema Schema[T]
	now    func() time.Time
	newID  func() string
}

// NewCollection returns a collection persisted under key.
func NewCollection[T any](port Port, key string, schema Schema[T], opts ...Option) *Collection[T] {
	o := options{now: time.Now, newID: NewTimeOrderedID}
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection[T]{
		store:  NewStore[[]T](port, key, o.log),
		schema: schema,
		now:    o.now,
		newID:  o.newID,
	}
}

// LoadOrSeed loads the persisted entities or persists seed() when none exist.
func (c *Collection[T]) LoadOrSeed(ctx context.Context, seed func() []T) ([]T, error) {
	items, err := c.store.LoadOrSeed(ctx, seed)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

// List returns a copy of the current snapshot in store order.
func (c *Collection[T]) List() []T {
	return slices.Clone(c.store.Snapshot())
}

// Find returns the entity with id.
func (c *Collection[T]) Find(id string) (T, bool) {
	for _, item := range c.store.Snapshot() {
		if c.schema.ID(&item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Create stamps item with a fresh id and creation time, appends it and persists.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	c.schema.Init(&item, c.newID(), c.now())

	_, err := c.store.Mutate(ctx, func(items []T) ([]T, error) {
		next := make([]T, 0, len(items)+1)
		next = append(next, items...)
		return append(next, item), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Update applies fn to the entity with id and persists. found is false, and
// nothing is written, when id is absent. An error from fn aborts the update.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (updated T, found bool, err error) {
	_, err = c.store.Mutate(ctx, func(items []T) ([]T, error) {
		idx := c.index(items, id)
		if idx < 0 {
			return nil, errSkip
		}
		next := slices.Clone(items)
		item := next[idx]
		if err := fn(&item); err != nil {
			return nil, err
		}
		if c.schema.Touch != nil {
			c.schema.Touch(&item, c.now())
		}
		next[idx] = item
		updated, found = item, true
		return next, nil
	})
	if errors.Is(err, errSkip) {
		var zero T
		return zero, false, nil
	}
	return updated, found, err
}

// Delete removes the entity with id and persists. Absent ids are a no-op.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	_, err := c.store.Mutate(ctx, func(items []T) ([]T, error) {
		idx := c.index(items, id)
		if idx < 0 {
			return nil, errSkip
		}
		return slices.Delete(slices.Clone(items), idx, idx+1), nil
	})
	if errors.Is(err, errSkip) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Reset drops the persisted collection; the next LoadOrSeed reseeds.
func (c *Collection[T]) Reset(ctx context.Context) error {
	return c.store.Reset(ctx)
}

func (c *Collection[T]) index(items []T, id string) int {
	for i := range items {
		if c.schema.ID(&items[i]) == id {
			return i
		}
	}
	return -1
}
