package subscriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"property-storefront/internal/models"
	"property-storefront/internal/storage"
)

func steppingClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Hour)
		return now
	}
}

func openGate(t *testing.T, port storage.Port) *Gate {
	t.Helper()
	g, err := Open(context.Background(), port, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	g.SetClock(steppingClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	return g
}

func TestUnknownUserIsInactive(t *testing.T) {
	g := openGate(t, storage.NewMemoryPort())
	rec, err := g.GetUserSubscriptions(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.BuyActive || rec.SellActive || rec.BuySince != nil || rec.SellSince != nil {
		t.Fatalf("expected inactive record, got %+v", rec)
	}
}

func TestActivateSellThenBuyKeepsSellSince(t *testing.T) {
	ctx := context.Background()
	g := openGate(t, storage.NewMemoryPort())

	sell, err := g.ActivateSubscription(ctx, "u1", models.SubscriptionSell)
	if err != nil {
		t.Fatalf("activate sell: %v", err)
	}
	both, err := g.ActivateSubscription(ctx, "u1", models.SubscriptionBuy)
	if err != nil {
		t.Fatalf("activate buy: %v", err)
	}
	if !both.BuyActive || !both.SellActive {
		t.Fatalf("expected both flags, got %+v", both)
	}
	if !both.SellSince.Equal(*sell.SellSince) {
		t.Fatalf("expected sellSince %v preserved, got %v", sell.SellSince, both.SellSince)
	}
	if !g.HasBuySubscription(ctx, "u1") || !g.HasSellSubscription(ctx, "u1") {
		t.Fatal("expected both predicates true")
	}
}

func TestReactivationRestampsOnly(t *testing.T) {
	ctx := context.Background()
	g := openGate(t, storage.NewMemoryPort())

	first, err := g.ActivateSubscription(ctx, "u1", models.SubscriptionBuy)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	again, err := g.ActivateSubscription(ctx, "u1", models.SubscriptionBuy)
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if !again.BuyActive || again.SellActive {
		t.Fatalf("expected only buy active, got %+v", again)
	}
	if !again.BuySince.After(*first.BuySince) {
		t.Fatalf("expected buySince re-stamped, got %v then %v", first.BuySince, again.BuySince)
	}
}

func TestActivateMergesAcrossHandles(t *testing.T) {
	ctx := context.Background()
	port := storage.NewMemoryPort()
	a := openGate(t, port)
	b := openGate(t, port)

	if _, err := a.ActivateSubscription(ctx, "u1", models.SubscriptionSell); err != nil {
		t.Fatalf("activate via a: %v", err)
	}
	rec, err := b.ActivateSubscription(ctx, "u1", models.SubscriptionBuy)
	if err != nil {
		t.Fatalf("activate via b: %v", err)
	}
	if !rec.SellActive || !rec.BuyActive {
		t.Fatalf("expected b to see a's activation, got %+v", rec)
	}
	if !a.HasBuySubscription(ctx, "u1") {
		t.Fatal("expected a to read b's activation")
	}
}

func TestActivateValidation(t *testing.T) {
	ctx := context.Background()
	g := openGate(t, storage.NewMemoryPort())
	if _, err := g.ActivateSubscription(ctx, "u1", "gold"); !models.IsValidation(err) {
		t.Fatalf("expected validation error for unknown kind, got %v", err)
	}
	if _, err := g.ActivateSubscription(ctx, "", models.SubscriptionBuy); !models.IsValidation(err) {
		t.Fatalf("expected validation error for blank user, got %v", err)
	}
}

func TestRequireSell(t *testing.T) {
	ctx := context.Background()
	g := openGate(t, storage.NewMemoryPort())
	if err := g.RequireSell(ctx, "u1"); !errors.Is(err, models.ErrSubscriptionRequired) {
		t.Fatalf("expected ErrSubscriptionRequired, got %v", err)
	}
	if _, err := g.ActivateSubscription(ctx, "u1", models.SubscriptionSell); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := g.RequireSell(ctx, "u1"); err != nil {
		t.Fatalf("expected sell allowed, got %v", err)
	}
}
