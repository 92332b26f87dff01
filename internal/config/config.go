// Package config loads the advisor configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Registry RegistryConfig `toml:"registry"`
	API      APIConfig      `toml:"api"`
	Cache    CacheConfig    `toml:"cache"`
	Trainer  TrainerConfig  `toml:"trainer"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// RegistryConfig points at the external card data document. An empty path
// means the embedded default data set is used without file watching.
type RegistryConfig struct {
	Path string `toml:"path"`
}

// APIConfig contains card-data API client settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"` // empty = production endpoint
	Token   string `toml:"token"`
}

// CacheConfig selects and configures the model cache backend.
type CacheConfig struct {
	Backend    string `toml:"backend"`     // "file", "sqlite" or "redis"
	Dir        string `toml:"dir"`         // file backend
	SQLitePath string `toml:"sqlite_path"` // sqlite backend
	RedisAddr  string `toml:"redis_addr"`  // redis backend
	RedisTTL   string `toml:"redis_ttl"`   // redis record TTL (e.g. "168h")
}

// TrainerConfig overrides the training hyperparameters. Zero values fall
// back to the documented defaults.
type TrainerConfig struct {
	Epochs       int     `toml:"epochs"`
	LearningRate float64 `toml:"learning_rate"`
	L2           float64 `toml:"l2"`
	MaxBattles   int     `toml:"max_battles"`
	MinExamples  int     `toml:"min_examples"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".royale-advisor")
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Registry: RegistryConfig{Path: ""},
		API:      APIConfig{},
		Cache: CacheConfig{
			Backend:    "file",
			Dir:        filepath.Join(base, "models"),
			SQLitePath: filepath.Join(base, "models.db"),
			RedisAddr:  "localhost:6379",
			RedisTTL:   "168h",
		},
		Trainer: TrainerConfig{},
	}
}

// Load reads the configuration from path. A missing file yields the default
// configuration.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Cache.Backend {
	case "file", "sqlite", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.RedisTTL != "" {
		if _, err := time.ParseDuration(c.Cache.RedisTTL); err != nil {
			return fmt.Errorf("invalid redis TTL %q: %w", c.Cache.RedisTTL, err)
		}
	}
	if c.Trainer.Epochs < 0 || c.Trainer.MaxBattles < 0 || c.Trainer.MinExamples < 0 {
		return fmt.Errorf("trainer values cannot be negative")
	}
	return nil
}

// GetRedisTTL returns the redis record TTL as a duration.
func (c *Config) GetRedisTTL() (time.Duration, error) {
	if c.Cache.RedisTTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Cache.RedisTTL)
}
