// SPDX-License-Identifier: Apache-2.0

// Package config holds the CLI-level configuration file. The engine
// itself takes explicit arguments; this only carries run defaults.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultFile is the config file name looked up in the working
// directory.
const DefaultFile = "semmap.yaml"

// ValidatorConfig configures the external checker invocation.
type ValidatorConfig struct {
	// Command is the argv of the external SHACL/reasoner wrapper.
	Command []string `yaml:"command"`
	// TimeoutSeconds bounds one validation call.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Config is the CLI configuration.
type Config struct {
	Workers   int             `yaml:"workers"`
	Validator ValidatorConfig `yaml:"validator"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workers: 0, // 0 means GOMAXPROCS
		Validator: ValidatorConfig{
			TimeoutSeconds: 60,
		},
	}
}

// LoadFile reads a config file, layering it over the defaults. A
// missing file is not an error; the defaults apply unchanged.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.Validator.TimeoutSeconds <= 0 {
		return fmt.Errorf("validator timeout must be positive")
	}
	return nil
}
