package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full application configuration. Values come from an optional
// TOML file, then environment variables override field by field.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type StorageConfig struct {
	// Driver selects the snapshot backend: "sqlite" or "postgres".
	Driver string `toml:"driver"`
	// DSN is the sqlite file path or postgres connection string.
	DSN string `toml:"dsn"`
}

type LogConfig struct {
	Level  string `toml:"level"`  // trace, debug, info, warn, error
	Format string `toml:"format"` // console, json
}

// Default returns the configuration used when nothing else is set: a local
// sqlite file next to the binary and a console logger.
func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{Driver: "sqlite", DSN: "smart-erp.db"},
		Log:     LogConfig{Level: "info", Format: "console"},
	}
}

// Load builds the configuration: defaults, then the TOML file at path (if
// path is empty, "config.toml" is tried and silently skipped when absent),
// then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = "config.toml"
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ERP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ERP_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("ERP_STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	// DATABASE_URL implies the postgres backend unless a driver was forced.
	if v := os.Getenv("DATABASE_URL"); v != "" && os.Getenv("ERP_STORAGE_DRIVER") == "" {
		cfg.Storage.Driver = "postgres"
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.DSN == "" {
		return fmt.Errorf("storage DSN is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	return nil
}
