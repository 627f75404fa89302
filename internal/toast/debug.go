package toast

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger logs every change to s at debug level and reports
// subscriber panics at error level. The returned func stops the change
// logging; the panic hook stays for the life of the store.
func RegisterDebugLogger(s *Store, logger zerolog.Logger) (unsubscribe func()) {
	s.OnPanic(func(c Change, recovered any) {
		logger.Error().
			Str("change", string(c.Kind)).
			Int64("id", int64(c.ID)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("toast subscriber panicked")
	})

	return s.Subscribe(func(c Change) {
		ev := logger.Debug().
			Str("change", string(c.Kind)).
			Uint64("version", c.Version).
			Int("live", len(c.Messages))

		if c.Kind == ChangeCleared {
			ev = ev.Int("removed", c.Removed)
		} else {
			ev = ev.Int64("id", int64(c.ID))
		}
		ev.Msg("toast changed")
	})
}
