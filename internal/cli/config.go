package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk CLI configuration, read from
// ~/.config/revset/config.toml. Flags override file values; every field has
// a working default so the file is optional.
//
// Example:
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8400"
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Backend is "file" (default) or "redis".
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`
	// RedisAddr is the host:port of the Redis backend.
	RedisAddr string `toml:"redis_addr"`
}

// StoreConfig selects the graph store.
type StoreConfig struct {
	// MongoURI enables the MongoDB store when set.
	MongoURI string `toml:"mongo_uri"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	// Addr is the listen address for `revset serve`.
	Addr string `toml:"addr"`
}

func defaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: "file"},
		Server: ServerConfig{Addr: ":8400"},
	}
}

// loadConfig reads the config file if present. A missing file yields the
// defaults; a malformed file is an error so typos do not pass silently.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	dir, err := configDir()
	if err != nil {
		return cfg, nil
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "file"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8400"
	}
	return cfg, nil
}
