// Package config handles configuration loading and validation for toast.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/toast/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Toast       ToastConfig       `yaml:"toast"`
	TUI         TUIConfig         `yaml:"tui"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	DataDir     string            `yaml:"-"` // set by caller, not from config file
}

// ToastConfig holds message store settings.
type ToastConfig struct {
	// DefaultTimeout applies to toasts raised without a timeout.
	// Zero makes them persistent until dismissed.
	DefaultTimeout time.Duration `yaml:"default_timeout"`
}

// TUIConfig holds rendering settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
	Width int    `yaml:"width"` // toast width in cells
}

// DiagnosticsConfig bounds the warn-level "no notifier registered" log.
type DiagnosticsConfig struct {
	WarnPerSecond float64 `yaml:"warn_per_second"`
	WarnBurst     int     `yaml:"warn_burst"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Port int `yaml:"port"` // 0 disables the endpoint
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Toast: ToastConfig{
			DefaultTimeout: 3 * time.Second,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
			Width: 50,
		},
		Diagnostics: DiagnosticsConfig{
			WarnPerSecond: 1,
			WarnBurst:     5,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Set after Unmarshal so the file cannot override it
	cfg.DataDir = dataDir

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills settings where zero is not a meaningful value.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.Width == 0 {
		c.TUI.Width = defaults.TUI.Width
	}
	if c.Diagnostics.WarnPerSecond == 0 {
		c.Diagnostics.WarnPerSecond = defaults.Diagnostics.WarnPerSecond
	}
	if c.Diagnostics.WarnBurst == 0 {
		c.Diagnostics.WarnBurst = defaults.Diagnostics.WarnBurst
	}
}
