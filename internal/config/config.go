// Package config loads the global roost settings: config.json in the config
// directory, overridden by environment variables, with defaults from struct
// tags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/ilyakaznacheev/cleanenv"
)

// FileName is the global settings file inside the config directory.
const FileName = "config.json"

// DirEnv overrides the config directory.
const DirEnv = "ROOST_CONFIG_DIR"

// DefaultHTTPPort is used when neither config.json nor the environment sets
// http_port.
const DefaultHTTPPort = 9280

// Config is the global configuration. App definitions live next to it in
// the same directory and are loaded by the appconfig adapter.
type Config struct {
	Dir       string `json:"-"`
	TLD       string `json:"tld"        env:"ROOST_TLD"        env-default:"test"`
	HTTPPort  int    `json:"http_port"  env:"ROOST_HTTP_PORT"`
	RateLimit int    `json:"rate_limit" env:"ROOST_RATE_LIMIT" env-default:"100"`
	LogLevel  string `json:"log_level"  env:"LOG_LEVEL"        env-default:"info"`
}

// DefaultDir returns $ROOST_CONFIG_DIR, or ~/.config/roost.
func DefaultDir() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "roost")
	}
	return filepath.Join(home, ".config", "roost")
}

// Load reads configuration for dir (DefaultDir when empty).
// Priority: ENV > config.json > defaults.
// A missing config.json is not an error.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	// cleanenv applies env-default to any zero field, which would turn an
	// explicit "http_port": 0 back into the default.
	cfg := Config{Dir: dir, HTTPPort: DefaultHTTPPort}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	cfg.Dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	tld := strings.TrimSpace(c.TLD)
	if tld == "" {
		return fmt.Errorf("tld must not be empty")
	}
	if strings.HasPrefix(tld, ".") || strings.HasSuffix(tld, ".") {
		return fmt.Errorf("tld %q must not start or end with a dot", c.TLD)
	}
	if c.HTTPPort < 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("http_port must be 0-65535 (got %d)", c.HTTPPort)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be > 0 (got %d)", c.RateLimit)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Save writes cfg to config.json in cfg.Dir, atomically.
func Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	data = append(data, '\n')

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pending, err := renameio.NewPendingFile(filepath.Join(cfg.Dir, FileName), renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("config: create pending file: %w", err)
	}
	defer pending.Cleanup()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("config: replace: %w", err)
	}
	return nil
}
