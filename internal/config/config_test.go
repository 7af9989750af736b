package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kento-1477/meal-log-app-new-sub002/internal/config"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, config.Default())
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("timezone: Asia/Tokyo\nlocale: ja\ncache_ttl_seconds: 120\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Timezone != "Asia/Tokyo" || cfg.Locale != "ja" || cfg.CacheTTLSeconds != 120 {
		t.Fatalf("cfg = %+v, want file values", cfg)
	}
}

func TestLoadFromEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("timezone: Asia/Tokyo\nlocale: ja\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("MEALLOG_TIMEZONE", "America/Los_Angeles")
	t.Setenv("MEALLOG_LOCALE", "en")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Timezone != "America/Los_Angeles" {
		t.Fatalf("timezone = %q, want env override", cfg.Timezone)
	}
	if cfg.Locale != "en" {
		t.Fatalf("locale = %q, want env override", cfg.Locale)
	}
}

func TestLoadFromRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timezone: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := config.LoadFrom(path); err == nil {
		t.Fatalf("expected parse error for malformed yaml")
	}
}

func TestLoadFromNormalizesNonPositiveTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("cache_ttl_seconds: -5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheTTLSeconds != config.Default().CacheTTLSeconds {
		t.Fatalf("ttl = %d, want default", cfg.CacheTTLSeconds)
	}
}
