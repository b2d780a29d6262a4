// Package storagetest holds the behaviour every storage.Port must share.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"property-storefront/internal/storage"
)

// RunPortContract exercises read, write, overwrite and delete on port. Keys
// are prefixed so the suite can run against a shared backend.
func RunPortContract(t *testing.T, port storage.Port) {
	t.Helper()
	ctx := context.Background()
	key := "contract-test/" + t.Name()

	if err := port.Delete(ctx, key); err != nil {
		t.Fatalf("delete before test: %v", err)
	}

	if _, err := port.Read(ctx, key); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound for missing key, got %v", err)
	}

	if err := port.Write(ctx, key, []byte(`["a"]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := port.Read(ctx, key)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `["a"]` {
		t.Fatalf("expected %q, got %q", `["a"]`, data)
	}

	if err := port.Write(ctx, key, []byte(`["a","b"]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, err = port.Read(ctx, key)
	if err != nil {
		t.Fatalf("read after overwrite: %v", err)
	}
	if string(data) != `["a","b"]` {
		t.Fatalf("expected %q, got %q", `["a","b"]`, data)
	}

	if err := port.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := port.Read(ctx, key); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
	if err := port.Delete(ctx, key); err != nil {
		t.Fatalf("delete of missing key should be a no-op, got %v", err)
	}
}
