package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI defaults a user would otherwise repeat on every
// invocation. Missing file means built-in defaults; env vars win over
// the file.
type Config struct {
	Timezone        string `yaml:"timezone"`
	Locale          string `yaml:"locale"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

const defaultCacheTTLSeconds = 60

func Default() Config {
	return Config{
		Timezone:        "",
		Locale:          "en",
		CacheTTLSeconds: defaultCacheTTLSeconds,
	}
}

func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "meallog", "config.yaml"), nil
}

// Load reads the config file, applies defaults for absent fields, then
// applies MEALLOG_* env overrides.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if v := strings.TrimSpace(os.Getenv("MEALLOG_TIMEZONE")); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(os.Getenv("MEALLOG_LOCALE")); v != "" {
		cfg.Locale = v
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = defaultCacheTTLSeconds
	}
	return cfg, nil
}

func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
