package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"property-storefront/internal/config"
	"property-storefront/internal/storage"
	"property-storefront/internal/storage/storagetest"
)

func TestSQLitePortContract(t *testing.T) {
	port, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = port.Close() })
	storagetest.RunPortContract(t, port)
}

func TestSQLitePortPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	first, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := first.Write(ctx, "wishlist", []byte(`["1"]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })
	data, err := second.Read(ctx, "wishlist")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `["1"]` {
		t.Fatalf("expected %q, got %q", `["1"]`, data)
	}
}

func TestSQLiteBackedStoreSeedsOnce(t *testing.T) {
	ctx := context.Background()
	port, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = port.Close() })

	calls := 0
	seed := func() []string { calls++; return []string{"a"} }
	for i := 0; i < 2; i++ {
		s := storage.NewStore[[]string](port, "letters", nil)
		if _, err := s.LoadOrSeed(ctx, seed); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one seed call, got %d", calls)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	port, closeFn, err := Open(ctx, config.StorageConfig{Backend: "memory"}, nil)
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := port.(*storage.MemoryPort); !ok {
		t.Fatalf("expected MemoryPort, got %T", port)
	}
	_ = closeFn()

	port, closeFn, err = Open(ctx, config.StorageConfig{Backend: "file", Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	if _, ok := port.(*storage.FilePort); !ok {
		t.Fatalf("expected FilePort, got %T", port)
	}
	_ = closeFn()

	cfg := config.StorageConfig{Backend: "sqlite", SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "x.db")}}
	port, closeFn, err = Open(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if _, ok := port.(*SQLPort); !ok {
		t.Fatalf("expected SQLPort, got %T", port)
	}
	_ = closeFn()

	if _, _, err := Open(ctx, config.StorageConfig{Backend: "tape"}, nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestPostgresPortContract(t *testing.T) {
	dsn := os.Getenv("STOREFRONT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_POSTGRES_DSN not set")
	}
	port, err := OpenPostgres(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { _ = port.Close() })
	storagetest.RunPortContract(t, port)
}

func TestMySQLPortContract(t *testing.T) {
	dsn := os.Getenv("STOREFRONT_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_MYSQL_DSN not set")
	}
	port, err := OpenMySQL(dsn)
	if err != nil {
		t.Fatalf("open mysql: %v", err)
	}
	t.Cleanup(func() { _ = port.Close() })
	storagetest.RunPortContract(t, port)
}

func TestRedisPortContract(t *testing.T) {
	addr := os.Getenv("STOREFRONT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STOREFRONT_TEST_REDIS_ADDR not set")
	}
	port, err := OpenRedis(context.Background(), addr, "", 0, "storefront-test:")
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	t.Cleanup(func() { _ = port.Close() })
	storagetest.RunPortContract(t, port)
}

func TestMongoPortContract(t *testing.T) {
	uri := os.Getenv("STOREFRONT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("STOREFRONT_TEST_MONGO_URI not set")
	}
	port, err := OpenMongo(context.Background(), uri, "storefront_test", "store_entries")
	if err != nil {
		t.Fatalf("open mongo: %v", err)
	}
	t.Cleanup(func() { _ = port.Close() })
	storagetest.RunPortContract(t, port)
}
