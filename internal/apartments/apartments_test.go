package apartments

import (
	"context"
	"testing"

	"property-storefront/internal/storage"
)

func TestOpenSeedsDirectory(t *testing.T) {
	port := storage.NewMemoryPort()
	d, err := Open(context.Background(), port, DefaultSizes, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := len(d.List()); got != 50 {
		t.Fatalf("expected 50 apartments, got %d", got)
	}

	a, ok := d.Get("100")
	if !ok || a.Name != "Premium Stay 100" {
		t.Fatalf("expected premium stay 100, got ok=%v %q", ok, a.Name)
	}
	if _, ok := d.Get("99"); ok {
		t.Fatal("expected 99 to be absent")
	}

	again, err := Open(context.Background(), port, Sizes{Base: 1}, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := len(again.List()); got != 50 {
		t.Fatalf("expected persisted directory to be reused, got %d", got)
	}
}
