// Package wishlist keeps the favourite property ids.
//
// There is one wishlist for the whole store, not one per user.
package wishlist

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"property-storefront/internal/models"
	"property-storefront/internal/storage"
)

// Key is the storage key of the wishlist.
const Key = "wishlist"

// Set is the persisted wishlist.
type Set struct {
	store *storage.Store[[]string]
}

// Open loads the wishlist from port. A fresh store starts empty.
func Open(ctx context.Context, port storage.Port, log *zap.Logger) (*Set, error) {
	s := &Set{store: storage.NewStore[[]string](port, Key, log)}
	if _, err := s.store.LoadOrSeed(ctx, func() []string { return []string{} }); err != nil {
		return nil, err
	}
	return s, nil
}

// Add inserts propertyID. Adding an existing id changes nothing.
func (s *Set) Add(ctx context.Context, propertyID string) error {
	if strings.TrimSpace(propertyID) == "" {
		return models.NewValidationError("propertyId", "is required")
	}
	_, err := s.store.Mutate(ctx, func(ids []string) ([]string, error) {
		if slices.Contains(ids, propertyID) {
			return ids, nil
		}
		return append(slices.Clone(ids), propertyID), nil
	})
	return err
}

// Remove deletes propertyID if present.
func (s *Set) Remove(ctx context.Context, propertyID string) error {
	_, err := s.store.Mutate(ctx, func(ids []string) ([]string, error) {
		return slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == propertyID }), nil
	})
	return err
}

// Contains reports whether propertyID is in the wishlist.
func (s *Set) Contains(propertyID string) bool {
	return slices.Contains(s.store.Snapshot(), propertyID)
}

// IDs returns the wishlist in insertion order.
func (s *Set) IDs() []string {
	return slices.Clone(s.store.Snapshot())
}

// Clear empties the wishlist.
func (s *Set) Clear(ctx context.Context) error {
	_, err := s.store.Mutate(ctx, func([]string) ([]string, error) {
		return []string{}, nil
	})
	return err
}
