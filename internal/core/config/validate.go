package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/toast/internal/core/styles"
)

const (
	minToastWidth = 10
	maxPort       = 65535
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("toast.default_timeout", c.Toast.DefaultTimeout, nonNegativeDuration),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		criterio.Run("tui.width", c.TUI.Width, atLeast(minToastWidth)),
		criterio.Run("diagnostics.warn_per_second", c.Diagnostics.WarnPerSecond, positiveRate),
		criterio.Run("diagnostics.warn_burst", c.Diagnostics.WarnBurst, atLeast(1)),
		criterio.Run("metrics.port", c.Metrics.Port, portInRange),
		criterio.Run("data_dir", c.DataDir, notEmpty),
	)
}

func nonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("must not be negative, got %s", d)
	}
	return nil
}

func knownTheme(name string) error {
	names := styles.ThemeNames()
	if !slices.Contains(names, name) {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names, ", "))
	}
	return nil
}

func atLeast(minimum int) func(int) error {
	return func(v int) error {
		if v < minimum {
			return fmt.Errorf("must be at least %d, got %d", minimum, v)
		}
		return nil
	}
}

func positiveRate(v float64) error {
	if v <= 0 {
		return fmt.Errorf("must be positive, got %g", v)
	}
	return nil
}

func portInRange(p int) error {
	if p < 0 || p > maxPort {
		return fmt.Errorf("must be between 0 and %d, got %d", maxPort, p)
	}
	return nil
}

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}
