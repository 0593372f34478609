package core

import (
	"fmt"
	"strings"
	"time"
)

const DefaultPropertiesRoot = "cloud"

type PoolConfig struct {
	Providers       []string      `koanf:"providers" mapstructure:"providers"`
	MaxOpenConns    int           `koanf:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

type Config struct {
	PropertiesRoot string     `koanf:"properties_root" mapstructure:"properties_root"`
	Pool           PoolConfig `koanf:"pool" mapstructure:"pool"`
}

func DefaultConfig() Config {
	return Config{
		PropertiesRoot: DefaultPropertiesRoot,
		Pool:           PoolConfig{},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.PropertiesRoot) == "" {
		return fmt.Errorf("core: properties_root is required")
	}
	if c.Pool.MaxOpenConns < 0 {
		return fmt.Errorf("core: pool max_open_conns must be >= 0")
	}
	if c.Pool.MaxIdleConns < 0 {
		return fmt.Errorf("core: pool max_idle_conns must be >= 0")
	}
	return nil
}

// ConnectorConfig carries per-call creation options. PooledProviders is an
// ordered allow-list of provider-name substrings; empty means all registered
// providers are eligible.
type ConnectorConfig struct {
	PooledProviders []string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ConnectorConfigFromPool lifts the startup pool block into a per-call config.
func ConnectorConfigFromPool(pool PoolConfig) ConnectorConfig {
	return ConnectorConfig{
		PooledProviders: append([]string(nil), pool.Providers...),
		MaxOpenConns:    pool.MaxOpenConns,
		MaxIdleConns:    pool.MaxIdleConns,
		ConnMaxLifetime: pool.ConnMaxLifetime,
	}
}
