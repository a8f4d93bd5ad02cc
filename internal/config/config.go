// Package config manages the CLI's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrTradingDisabled is returned by order commands when trading has been
// switched off in the config file.
var ErrTradingDisabled = errors.New("trading is disabled in config (set trading_enabled: true to enable)")

// Config holds the CLI configuration. Secrets never live here; the API
// key is kept in the OS keyring.
type Config struct {
	Host           string `yaml:"host"`
	Exchange       string `yaml:"exchange"`
	IndexExchange  string `yaml:"index_exchange"`
	Product        string `yaml:"product"`
	OptionsProduct string `yaml:"options_product"`
	Strategy       string `yaml:"strategy"`
	TradingEnabled bool   `yaml:"trading_enabled"`
}

// DefaultConfig returns a config with OpenAlgo defaults: a local server
// and NSE conventions (MIS intraday for equity, NRML carry-forward for
// derivatives).
func DefaultConfig() *Config {
	return &Config{
		Host:           "http://127.0.0.1:5000",
		Exchange:       "NSE",
		IndexExchange:  "NSE_INDEX",
		Product:        "MIS",
		OptionsProduct: "NRML",
		Strategy:       "oa-cli",
		TradingEnabled: true,
	}
}

// Path returns the config file location: $XDG_CONFIG_HOME/oa/config.yaml
// or the platform equivalent.
func Path() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "oa", "config.yaml")
}

// Load reads the config from the given path. A missing file returns the
// defaults rather than an error so first-run commands work before
// configure.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the given path, creating parent directories
// as needed. The file is user-readable only.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
