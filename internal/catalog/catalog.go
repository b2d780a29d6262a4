// Package catalog owns the property listings: seeding, CRUD and search.
package catalog

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"property-storefront/internal/models"
	"property-storefront/internal/seed"
	"property-storefront/internal/storage"
)

// Key is the storage key of the listings collection.
const Key = "properties"

// DefaultImage is attached to listings created without images.
const DefaultImage = "https://images.unsplash.com/photo-1600585154161-8c14b9a9a2f2?w=800&h=600&fit=crop"

// Indexer mirrors listing changes into a secondary search index.
type Indexer interface {
	IndexProperty(p *models.Property) error
	DeleteProperty(id string) error
}

// Options configures Open.
type Options struct {
	Sizes   seed.Sizes
	Logger  *zap.Logger
	Indexer Indexer
	// Clock and NewID override creation stamping; tests use them.
	Clock func() time.Time
	NewID func() string
}

// Catalog is the persisted set of listings.
type Catalog struct {
	items   *storage.Collection[models.Property]
	indexer Indexer
	log     *zap.Logger
}

var schema = storage.Schema[models.Property]{
	ID: func(p *models.Property) string { return p.ID },
	Init: func(p *models.Property, id string, now time.Time) {
		p.ID = id
		p.CreatedAt = now
		p.UpdatedAt = now
	},
	Touch: func(p *models.Property, now time.Time) {
		p.UpdatedAt = now
	},
}

// Open loads the listings from port, seeding them on first use.
func Open(ctx context.Context, port storage.Port, opts Options) (*Catalog, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	collOpts := []storage.Option{storage.WithLogger(log)}
	if opts.Clock != nil {
		collOpts = append(collOpts, storage.WithClock(opts.Clock))
	}
	if opts.NewID != nil {
		collOpts = append(collOpts, storage.WithIDGenerator(opts.NewID))
	}

	c := &Catalog{
		items:   storage.NewCollection(port, Key, schema, collOpts...),
		indexer: opts.Indexer,
		log:     log.Named("catalog"),
	}
	sizes := opts.Sizes
	if _, err := c.items.LoadOrSeed(ctx, func() []models.Property { return seed.Properties(sizes) }); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns every listing in store order.
func (c *Catalog) List() []models.Property {
	return c.items.List()
}

// Get returns the listing with id.
func (c *Catalog) Get(id string) (models.Property, bool) {
	return c.items.Find(id)
}

// BySeller returns the listings whose seller is sellerID.
func (c *Catalog) BySeller(sellerID string) []models.Property {
	var out []models.Property
	for _, p := range c.items.List() {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out
}

// Create validates p, assigns its id and timestamps and persists it.
func (c *Catalog) Create(ctx context.Context, p models.Property) (models.Property, error) {
	if err := validateNew(&p); err != nil {
		return models.Property{}, err
	}
	if p.Status == "" {
		p.Status = models.PropertyStatusAvailable
	}
	if len(p.Images) == 0 {
		p.Images = []string{DefaultImage}
	}
	if p.Features == nil {
		p.Features = []string{}
	}

	created, err := c.items.Create(ctx, p)
	if err != nil {
		return models.Property{}, err
	}
	c.index(&created)
	return created, nil
}

// Update applies patch to the listing with id. found is false for unknown ids.
func (c *Catalog) Update(ctx context.Context, id string, patch Patch) (models.Property, bool, error) {
	if err := patch.validate(); err != nil {
		return models.Property{}, false, err
	}
	updated, found, err := c.items.Update(ctx, id, func(p *models.Property) error {
		patch.apply(p)
		return nil
	})
	if err != nil || !found {
		return updated, found, err
	}
	c.index(&updated)
	return updated, true, nil
}

// RelistRequest puts an owned property back on the market.
type RelistRequest struct {
	SellerID string
	Contact  models.Contact
	Price    int64
}

// Relist makes the listing a fresh buy listing owned by req.SellerID.
func (c *Catalog) Relist(ctx context.Context, id string, req RelistRequest) (models.Property, bool, error) {
	if strings.TrimSpace(req.SellerID) == "" {
		return models.Property{}, false, models.NewValidationError("sellerId", "is required")
	}
	buy := models.ListingTypeBuy
	available := models.PropertyStatusAvailable
	return c.Update(ctx, id, Patch{
		Price:         &req.Price,
		Type:          &buy,
		SellerID:      &req.SellerID,
		SellerContact: &req.Contact,
		Status:        &available,
	})
}

// Delete removes the listing with id.
func (c *Catalog) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := c.items.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	if c.indexer != nil {
		if err := c.indexer.DeleteProperty(id); err != nil {
			c.log.Warn("failed to remove property from index", zap.String("id", id), zap.Error(err))
		}
	}
	return true, nil
}

func (c *Catalog) index(p *models.Property) {
	if c.indexer == nil {
		return
	}
	if err := c.indexer.IndexProperty(p); err != nil {
		c.log.Warn("failed to index property", zap.String("id", p.ID), zap.Error(err))
	}
}

func validateNew(p *models.Property) error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return models.NewValidationError("title", "is required")
	case p.Price <= 0:
		return models.NewValidationError("price", "must be positive")
	case !p.Type.Valid():
		return models.NewValidationError("type", "must be buy or rent")
	case !p.Category.Valid():
		return models.NewValidationError("category", "must be apartment, house, villa or condo")
	case strings.TrimSpace(p.SellerID) == "":
		return models.NewValidationError("sellerId", "is required")
	case p.Status != "" && !p.Status.Valid():
		return models.NewValidationError("status", "must be available, sold or pending")
	}
	return nil
}
