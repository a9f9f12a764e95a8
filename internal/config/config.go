// Package config holds the pipeline settings shared by the CLI, the REPL
// and the language server. Values are layered: defaults, then an optional
// YAML file, then the environment, then command-line flags.
package config

import (
	"fmt"
	"os"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"cpsir/internal/cfg"
)

const (
	EnvConfig    = "CPSIR_CONFIG"
	EnvNormalize = "CPSIR_NORMALIZE"
	EnvOrder     = "CPSIR_ORDER"
	EnvVerbosity = "CPSIR_VERBOSITY"
	EnvLogFile   = "CPSIR_LOG_FILE"
	EnvNoColor   = "NO_COLOR"
)

type Config struct {
	// Normalize hoists value bindings above continuation bindings after
	// conversion.
	Normalize bool `yaml:"normalize"`

	// Order is the worklist pop order of the dataflow engine, lifo or fifo
	Order string `yaml:"order"`

	// Verbosity is the commonlog level: 0 logs nothing, higher is louder
	Verbosity int `yaml:"verbosity"`

	// LogFile receives log output instead of stderr when set
	LogFile string `yaml:"log_file"`

	Color bool `yaml:"color"`
}

func Default() *Config {
	return &Config{
		Normalize: false,
		Order:     cfg.LIFO.String(),
		Verbosity: 0,
		Color:     true,
	}
}

// Load reads the YAML file at path over the defaults
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overrides fields whose environment variable is set
func (c *Config) ApplyEnv() {
	if env.Has(EnvNormalize) {
		c.Normalize = env.Bool(EnvNormalize)
	}
	c.Order = env.Str(EnvOrder, c.Order)
	c.Verbosity = env.Int(EnvVerbosity, c.Verbosity)
	c.LogFile = env.Str(EnvLogFile, c.LogFile)
	if env.Has(EnvNoColor) {
		c.Color = false
	}
}

// Validate rejects settings no pass can run with
func (c *Config) Validate() error {
	if _, err := cfg.ParseOrder(c.Order); err != nil {
		return err
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}

// WorklistOrder returns the parsed Order. Call Validate first.
func (c *Config) WorklistOrder() cfg.Order {
	order, _ := cfg.ParseOrder(c.Order)
	return order
}

// Resolve loads path when it is not empty, applies the environment and
// validates the result.
func Resolve(path string) (*Config, error) {
	c := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
