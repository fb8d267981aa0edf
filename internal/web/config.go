// Package web implements the pagecraft editor API server.
//
// The server is transport glue: it loads a document from the store,
// calls the pure tree operations, and stores the result. It holds no
// tree semantics of its own, and every rejection surfaces as the
// structured error the core produced, mapped to an HTTP status.
package web

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the server configuration, loaded from a TOML file.
//
// Example:
//
//	listen = ":8080"
//
//	[store]
//	backend = "mongo"          # or "memory"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[session]
//	backend = "redis"          # or "memory", "file"
//	redis_addr = "localhost:6379"
//
//	[cache]
//	dir = "/var/cache/pagecraft"
//	ttl_minutes = 60
type Config struct {
	Listen string `toml:"listen"`

	Store struct {
		Backend       string `toml:"backend"`
		MongoURI      string `toml:"mongo_uri"`
		MongoDatabase string `toml:"mongo_database"`
	} `toml:"store"`

	Session struct {
		Backend       string `toml:"backend"`
		FileDir       string `toml:"file_dir"`
		RedisAddr     string `toml:"redis_addr"`
		RedisPassword string `toml:"redis_password"`
		RedisDB       int    `toml:"redis_db"`
	} `toml:"session"`

	Cache struct {
		Dir        string `toml:"dir"`
		TTLMinutes int    `toml:"ttl_minutes"`
	} `toml:"cache"`

	Auth struct {
		Disabled bool `toml:"disabled"`
	} `toml:"auth"`
}

// DefaultConfig returns a configuration suitable for local development:
// in-memory store and sessions, no auth, no cache.
func DefaultConfig() Config {
	var cfg Config
	cfg.Listen = ":8080"
	cfg.Store.Backend = "memory"
	cfg.Session.Backend = "memory"
	cfg.Auth.Disabled = true
	return cfg
}

// LoadConfig reads a TOML configuration file. Missing fields fall back
// to the development defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	return cfg, nil
}
