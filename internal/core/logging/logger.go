// Package logging derives component-scoped zerolog loggers.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// componentKey tags every line with the subsystem that wrote it.
const componentKey = "cmp"

// Component returns a child of the global logger tagged with name.
func Component(name string) zerolog.Logger {
	return For(log.Logger, name)
}

// For returns a child of parent tagged with name. Used where a command
// builds its own logger instead of the global one.
func For(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str(componentKey, name).Logger()
}
