package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() || cfg.App.IsDev() {
		t.Fatalf("unexpected env helpers for %q", cfg.App.Env)
	}
	if cfg.Sheets.Range != "A:D" {
		t.Fatalf("unexpected default range %q", cfg.Sheets.Range)
	}
	if cfg.Sheets.HeaderRows != 1 {
		t.Fatalf("expected one header row, got %d", cfg.Sheets.HeaderRows)
	}
	if got := cfg.Catalog.CacheTTL; got != 10*time.Minute {
		t.Fatalf("expected cache ttl 10m, got %v", got)
	}
	if cfg.Catalog.PageSize != 15 {
		t.Fatalf("expected page size 15, got %d", cfg.Catalog.PageSize)
	}
	if cfg.Session.UsesRedis() {
		t.Fatalf("memory store expected by default")
	}
	if cfg.Order.MessagingURL != "https://wa.me" {
		t.Fatalf("unexpected messaging url %q", cfg.Order.MessagingURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RedisStoreRequiresEndpoint(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvSessionStore, "redis")

	if _, err := Load(); err == nil {
		t.Fatal("expected redis session store without endpoint to fail")
	}

	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Session.UsesRedis() {
		t.Fatalf("expected redis session store")
	}
}

func TestLoad_RejectsUnknownSessionStore(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvSessionStore, "memcached")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown session store to fail")
	}
}

func TestOrderLocationFallsBackToUTC(t *testing.T) {
	if loc := (OrderConfig{Timezone: "Not/AZone"}).Location(); loc != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", loc)
	}
	if loc := (OrderConfig{}).Location(); loc != time.UTC {
		t.Fatalf("expected UTC for empty timezone, got %v", loc)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvSpreadsheetID, "sheet-123")
	t.Setenv(EnvRecipientNumber, "201000000000")
	t.Setenv(EnvSessionStore, "memory")
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvRedisAddr, "")
}

func TestLoad_PageSizeBounds(t *testing.T) {
	setMinimalEnv(t)

	for _, size := range []string{"0", "-3", "101"} {
		t.Setenv(EnvCatalogPageSize, size)
		if _, err := Load(); err == nil {
			t.Fatalf("expected page size %s to be rejected", size)
		}
	}

	t.Setenv(EnvCatalogPageSize, "100")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Catalog.PageSize != 100 {
		t.Fatalf("expected page size 100, got %d", cfg.Catalog.PageSize)
	}
}
