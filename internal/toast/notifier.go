package toast

import (
	"time"

	"github.com/colonyops/toast/internal/core/notify"
)

var _ notify.Notifier = (*Notifier)(nil)

// Notifier adapts a Store to the notify.Notifier capability so it can be
// registered with a notify.Registry.
type Notifier struct {
	store *Store
}

// NewNotifier returns a Notifier that adds every request to s.
func NewNotifier(s *Store) *Notifier {
	return &Notifier{store: s}
}

func (n *Notifier) Success(text string, timeout ...time.Duration) {
	n.store.Success(text, timeout...)
}

func (n *Notifier) Error(text string, timeout ...time.Duration) {
	n.store.Error(text, timeout...)
}

func (n *Notifier) Warning(text string, timeout ...time.Duration) {
	n.store.Warning(text, timeout...)
}

func (n *Notifier) Info(text string, timeout ...time.Duration) {
	n.store.Info(text, timeout...)
}
