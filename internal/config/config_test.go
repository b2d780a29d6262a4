package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != "file" {
		t.Fatalf("expected file backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Orders.SigningDelay() != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s signing delay, got %v", cfg.Orders.SigningDelay())
	}
	if cfg.Seed.Properties.Sample != 20 || cfg.Seed.Properties.Extra != 50 {
		t.Fatalf("expected default seed sizes, got %+v", cfg.Seed.Properties)
	}
}

func TestLoadConfigOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	body := []byte(`
storage:
  backend: sqlite
  sqlite:
    path: /tmp/x.db
seed:
  properties:
    sample: 2
    extra: 3
orders:
  signing_delay_ms: 10
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.SQLite.Path != "/tmp/x.db" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Seed.Properties.Sample != 2 || cfg.Seed.Properties.Extra != 3 {
		t.Fatalf("unexpected seed sizes: %+v", cfg.Seed.Properties)
	}
	if cfg.Seed.Apartments.Base != 20 {
		t.Fatalf("expected untouched sections to keep defaults, got %+v", cfg.Seed.Apartments)
	}
	if cfg.Orders.SigningDelay() != 10*time.Millisecond {
		t.Fatalf("expected 10ms, got %v", cfg.Orders.SigningDelay())
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("storage: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("SIGNING_DELAY_MS", "not-a-number")
	t.Setenv("MEILISEARCH_HOST", "http://search:7700")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Storage.Backend != "postgres" {
		t.Fatalf("expected postgres, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Postgres.Host != "pg.internal" || cfg.Storage.Postgres.Port != 6543 {
		t.Fatalf("unexpected postgres config: %+v", cfg.Storage.Postgres)
	}
	if cfg.Orders.SigningDelayMillis != 1500 {
		t.Fatalf("expected invalid int to keep default, got %d", cfg.Orders.SigningDelayMillis)
	}
	if !cfg.Search.Enabled() {
		t.Fatal("expected search enabled")
	}
}

func TestDSN(t *testing.T) {
	pg := PostgresConfig{Host: "h", Port: 1, User: "u", Password: "p", Database: "d"}
	if got := pg.DSN(); got != "host=h port=1 user=u password=p dbname=d sslmode=disable" {
		t.Fatalf("unexpected postgres dsn %q", got)
	}
	my := MySQLConfig{Host: "h", Port: 2, User: "u", Password: "p", Database: "d"}
	if got := my.DSN(); got != "u:p@tcp(h:2)/d?charset=utf8mb4&parseTime=True&loc=Local" {
		t.Fatalf("unexpected mysql dsn %q", got)
	}
}
