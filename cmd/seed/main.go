// Command seed fills the configured storage with the generated catalog and
// apartments directory, the same data the API seeds on first start.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"property-storefront/internal/apartments"
	"property-storefront/internal/catalog"
	"property-storefront/internal/config"
	"property-storefront/internal/database"
	"property-storefront/internal/logger"
	"property-storefront/internal/models"
	"property-storefront/internal/orders"
	"property-storefront/internal/subscriptions"
	"property-storefront/internal/wishlist"
)

func main() {
	reset := flag.Bool("reset", false, "drop persisted listings and apartments so they are generated again")
	resetAll := flag.Bool("reset-all", false, "also drop orders, subscriptions and the wishlist")
	sample := flag.Int("sample", -1, "number of sample listings (default from config)")
	extra := flag.Int("extra", -1, "number of extra listings (default from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *sample >= 0 {
		cfg.Seed.Properties.Sample = *sample
	}
	if *extra >= 0 {
		cfg.Seed.Properties.Extra = *extra
	}

	zapLog, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLog.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	port, closeStorage, err := database.Open(ctx, cfg.Storage, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStorage() //nolint:errcheck

	keys := []string{catalog.Key, apartments.Key}
	if *resetAll {
		keys = append(keys, orders.Key, subscriptions.Key, wishlist.Key)
	}
	if *reset || *resetAll {
		for _, key := range keys {
			if err := port.Delete(ctx, key); err != nil {
				zapLog.Fatal("Failed to reset store", zap.String("key", key), zap.Error(err))
			}
			zapLog.Info("Reset store", zap.String("key", key))
		}
	}

	propertyCatalog, err := catalog.Open(ctx, port, catalog.Options{Sizes: cfg.Seed.Properties, Logger: zapLog})
	if err != nil {
		zapLog.Fatal("Failed to seed catalog", zap.Error(err))
	}
	stays, err := apartments.Open(ctx, port, cfg.Seed.Apartments, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to seed apartments", zap.Error(err))
	}

	byType := map[models.ListingType]int{}
	for _, p := range propertyCatalog.List() {
		byType[p.Type]++
	}
	zapLog.Info("Seed complete",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("properties", len(propertyCatalog.List())),
		zap.Int("buy", byType[models.ListingTypeBuy]),
		zap.Int("rent", byType[models.ListingTypeRent]),
		zap.Int("apartments", len(stays.List())))
}
