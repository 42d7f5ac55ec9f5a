package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `json:"server"`
	Logging    LoggingConfig    `json:"logging"`
	Reference  ReferenceConfig  `json:"reference"`
	Estimation EstimationConfig `json:"estimation"`
	Cache      CacheConfig      `json:"cache"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// LoggingConfig selects the zap level and encoder
type LoggingConfig struct {
	Level       string `json:"level"`
	Development bool   `json:"development"`
}

// ReferenceConfig points at an optional reference-data file.
// An empty path means the embedded catalog.
type ReferenceConfig struct {
	CatalogPath string `json:"catalog_path"`
}

// EstimationConfig controls the yield noise source
type EstimationConfig struct {
	JitterSeed    *uint64 `json:"jitter_seed,omitempty"`
	DisableJitter bool    `json:"disable_jitter"`
}

// CacheConfig
type CacheConfig struct {
	TTL time.Duration `json:"ttl"`
}

// Default returns the configuration used when nothing else is provided
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Cache: CacheConfig{
			TTL: 10 * time.Minute,
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// A missing file is not an error; defaults and env still apply
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := overrideWithEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func overrideWithEnv(config *Config) error {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT: %w", err)
		}
		config.Server.Port = p
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if dev := os.Getenv("LOG_DEVELOPMENT"); dev != "" {
		d, err := strconv.ParseBool(dev)
		if err != nil {
			return fmt.Errorf("invalid LOG_DEVELOPMENT: %w", err)
		}
		config.Logging.Development = d
	}
	if path := os.Getenv("CATALOG_PATH"); path != "" {
		config.Reference.CatalogPath = path
	}
	if seed := os.Getenv("JITTER_SEED"); seed != "" {
		s, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid JITTER_SEED: %w", err)
		}
		config.Estimation.JitterSeed = &s
	}
	if disabled := os.Getenv("JITTER_DISABLED"); disabled != "" {
		d, err := strconv.ParseBool(disabled)
		if err != nil {
			return fmt.Errorf("invalid JITTER_DISABLED: %w", err)
		}
		config.Estimation.DisableJitter = d
	}
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL: %w", err)
		}
		config.Cache.TTL = d
	}
	return nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl cannot be negative: %s", c.Cache.TTL)
	}
	return nil
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
