// Package apartments serves the short-stay rentals directory.
package apartments

import (
	"context"
	"time"

	"go.uber.org/zap"

	"property-storefront/internal/models"
	"property-storefront/internal/seed"
	"property-storefront/internal/storage"
)

// Key is the storage key of the apartments collection.
const Key = "apartments"

// Sizes controls the seeded directory.
type Sizes struct {
	Base    int `yaml:"base"`
	Premium int `yaml:"premium"`
}

// DefaultSizes seeds 20 stays and 30 premium stays.
var DefaultSizes = Sizes{Base: 20, Premium: 30}

// Directory is the read-only apartments listing.
type Directory struct {
	items *storage.Collection[models.Apartment]
}

var schema = storage.Schema[models.Apartment]{
	ID:   func(a *models.Apartment) string { return a.ID },
	Init: func(a *models.Apartment, id string, _ time.Time) { a.ID = id },
}

// Open loads the directory from port, seeding it on first use.
func Open(ctx context.Context, port storage.Port, sizes Sizes, log *zap.Logger) (*Directory, error) {
	d := &Directory{items: storage.NewCollection(port, Key, schema, storage.WithLogger(log))}
	_, err := d.items.LoadOrSeed(ctx, func() []models.Apartment {
		return seed.Apartments(sizes.Base, sizes.Premium)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// List returns every apartment.
func (d *Directory) List() []models.Apartment {
	return d.items.List()
}

// Get returns the apartment with id.
func (d *Directory) Get(id string) (models.Apartment, bool) {
	return d.items.Find(id)
}
