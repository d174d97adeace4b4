// Package config loads cellrules settings from defaults, an optional TOML
// file and CELLRULES_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "cellrules.toml"

// EnvPrefix marks environment overrides. A double underscore nests keys:
// CELLRULES_STORE__DRIVER sets store.driver.
const EnvPrefix = "CELLRULES_"

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the full cellrules configuration.
type Config struct {
	Store StoreConfig `koanf:"store"`
	Log   LogConfig   `koanf:"log"`
}

// StoreConfig selects and configures the automaton store.
type StoreConfig struct {
	Driver string       `koanf:"driver"`
	SQLite SQLiteConfig `koanf:"sqlite"`
	Redis  RedisConfig  `koanf:"redis"`
}

// SQLiteConfig locates the SQLite database file.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// RedisConfig holds the Redis connection and key namespace.
type RedisConfig struct {
	Addr      string `koanf:"addr"`
	Password  string `koanf:"password"`
	DB        int    `koanf:"db"`
	Namespace string `koanf:"namespace"`
}

// LogConfig controls log verbosity (0 warn .. 3 trace).
type LogConfig struct {
	Verbosity int `koanf:"verbosity"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"store.driver":          DriverSQLite,
		"store.sqlite.path":     "cellrules.db",
		"store.redis.addr":      "localhost:6379",
		"store.redis.db":        0,
		"store.redis.namespace": "default",
		"log.verbosity":         0,
	}
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	cfg, err := Load("")
	if err != nil {
		// defaults alone cannot fail to unmarshal
		panic(err)
	}
	return cfg
}

// Load builds the configuration. An explicit path must exist; with an empty
// path DefaultFile is used when present.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if _, err := os.Stat(DefaultFile); err == nil {
		if err := k.Load(file.Provider(DefaultFile), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config from %s: %w", DefaultFile, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("stat %s: %w", DefaultFile, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks that the selected store is usable.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Store.SQLite.Path) == "" {
			return fmt.Errorf("store.sqlite.path is required")
		}
	case DriverRedis:
		if strings.TrimSpace(c.Store.Redis.Addr) == "" {
			return fmt.Errorf("store.redis.addr is required")
		}
		if strings.TrimSpace(c.Store.Redis.Namespace) == "" {
			return fmt.Errorf("store.redis.namespace is required")
		}
	default:
		return fmt.Errorf("unknown store driver %q (want %q or %q)", c.Store.Driver, DriverSQLite, DriverRedis)
	}
	return nil
}
