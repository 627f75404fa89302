package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/internal/core/styles"
)

type Flags struct {
	LogLevel    string
	LogFile     string
	ConfigPath  string
	DataDir     string
	MetricsPort int

	// Config is set by LoadConfig.
	Config *config.Config
}

// LoadConfig loads and validates the config file once and applies its theme.
func (f *Flags) LoadConfig() (*config.Config, error) {
	if f.Config != nil {
		return f.Config, nil
	}

	cfg, err := config.Load(f.ConfigPath, f.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Validation guarantees the theme exists.
	palette, _ := styles.GetPalette(cfg.TUI.Theme)
	styles.SetTheme(palette)

	f.Config = cfg
	return cfg, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toast", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "toast")
}

// metricsPort prefers the flag over the config file.
func (f *Flags) metricsPort() int {
	if f.MetricsPort > 0 {
		return f.MetricsPort
	}
	if f.Config != nil {
		return f.Config.Metrics.Port
	}
	return 0
}
