// Package subscriptions tracks which capabilities each user has paid for.
package subscriptions

import (
	"context"
	"maps"
	"strings"
	"time"

	"go.uber.org/zap"

	"property-storefront/internal/models"
	"property-storefront/internal/storage"
)

// Key is the storage key of the subscriptions document.
const Key = "subscriptions"

// Gate is the per-user subscription record set.
type Gate struct {
	store *storage.Store[map[string]models.SubscriptionRecord]
	now   func() time.Time
	log   *zap.Logger
}

// Open loads subscriptions from port. A fresh store starts empty.
func Open(ctx context.Context, port storage.Port, log *zap.Logger) (*Gate, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Gate{
		store: storage.NewStore[map[string]models.SubscriptionRecord](port, Key, log),
		now:   time.Now,
		log:   log.Named("subscriptions"),
	}
	_, err := g.store.LoadOrSeed(ctx, func() map[string]models.SubscriptionRecord {
		return map[string]models.SubscriptionRecord{}
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// SetClock replaces time.Now for activation stamps.
func (g *Gate) SetClock(now func() time.Time) {
	g.now = now
}

// GetUserSubscriptions returns userID's record as currently persisted.
// Unknown users get an inactive record.
func (g *Gate) GetUserSubscriptions(ctx context.Context, userID string) (models.SubscriptionRecord, error) {
	all, err := g.store.Latest(ctx)
	if err != nil {
		return models.SubscriptionRecord{}, err
	}
	return all[userID], nil
}

// ActivateSubscription turns on kind for userID and stamps when. It merges
// into the latest persisted state so the other kind is never clobbered.
func (g *Gate) ActivateSubscription(ctx context.Context, userID string, kind models.SubscriptionKind) (models.SubscriptionRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return models.SubscriptionRecord{}, models.NewValidationError("userId", "is required")
	}
	if !kind.Valid() {
		return models.SubscriptionRecord{}, models.NewValidationError("kind", "must be buy or sell")
	}

	var rec models.SubscriptionRecord
	_, err := g.store.MutateLatest(ctx, func(all map[string]models.SubscriptionRecord) (map[string]models.SubscriptionRecord, error) {
		next := maps.Clone(all)
		if next == nil {
			next = map[string]models.SubscriptionRecord{}
		}
		rec = next[userID]
		now := g.now()
		switch kind {
		case models.SubscriptionBuy:
			rec.BuyActive = true
			rec.BuySince = &now
		case models.SubscriptionSell:
			rec.SellActive = true
			rec.SellSince = &now
		}
		next[userID] = rec
		return next, nil
	})
	if err != nil {
		return models.SubscriptionRecord{}, err
	}

	g.log.Info("subscription activated", zap.String("user_id", userID), zap.String("kind", string(kind)))
	return rec, nil
}

// HasBuySubscription reports whether userID may buy.
func (g *Gate) HasBuySubscription(ctx context.Context, userID string) bool {
	rec, err := g.GetUserSubscriptions(ctx, userID)
	return err == nil && rec.BuyActive
}

// HasSellSubscription reports whether userID may list properties.
func (g *Gate) HasSellSubscription(ctx context.Context, userID string) bool {
	rec, err := g.GetUserSubscriptions(ctx, userID)
	return err == nil && rec.SellActive
}

// RequireSell returns models.ErrSubscriptionRequired unless userID may list.
func (g *Gate) RequireSell(ctx context.Context, userID string) error {
	if !g.HasSellSubscription(ctx, userID) {
		return models.ErrSubscriptionRequired
	}
	return nil
}
