package logutils

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Notices buffers log messages at or above a level in memory until Flush is
// called. A full-screen UI uses it to show warnings after it releases the
// terminal. Safe for concurrent use.
type Notices struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	count int
}

// Attach returns a child of logger that also records messages at min or
// above.
func (n *Notices) Attach(logger zerolog.Logger, minLevel zerolog.Level) zerolog.Logger {
	return logger.Hook(zerolog.HookFunc(func(_ *zerolog.Event, level zerolog.Level, msg string) {
		if level < minLevel || msg == "" {
			return
		}
		n.mu.Lock()
		defer n.mu.Unlock()
		n.count++
		_, _ = fmt.Fprintf(&n.buf, "%s: %s\n", level, msg)
	}))
}

// Len returns how many messages are buffered.
func (n *Notices) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

// Flush writes all buffered messages to w and clears the buffer.
func (n *Notices) Flush(w io.Writer) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.buf.Len() == 0 {
		return nil
	}

	n.count = 0
	_, err := n.buf.WriteTo(w)
	return err
}
