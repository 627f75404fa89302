package toast

import (
	"time"

	"github.com/colonyops/toast/internal/core/notify"
)

// ID identifies a message within one Store. IDs start at 0, increase by one
// per Add and are never reused.
type ID int64

// Message is a single live toast.
type Message struct {
	ID       ID
	Text     string
	Severity notify.Severity
	// Timeout is how long after CreatedAt the message auto-dismisses.
	// Zero means it stays until dismissed or cleared.
	Timeout   time.Duration
	CreatedAt time.Time
}

// TimeoutMs returns the timeout in whole milliseconds.
func (m Message) TimeoutMs() int64 {
	return m.Timeout.Milliseconds()
}

// Persistent reports whether the message never auto-dismisses.
func (m Message) Persistent() bool {
	return m.Timeout == 0
}

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	ChangeAdded     ChangeKind = "added"
	ChangeDismissed ChangeKind = "dismissed"
	ChangeExpired   ChangeKind = "expired"
	ChangeCleared   ChangeKind = "cleared"
)

// Change describes one effective mutation of the live sequence.
type Change struct {
	Kind ChangeKind
	// ID is the affected message. Unset for ChangeCleared.
	ID ID
	// Removed is the number of messages removed by ChangeCleared.
	Removed int
	// Messages is the live sequence after the change.
	Messages []Message
	// Version increases by one per change. Subscribers may receive changes
	// from concurrent mutations out of order and can use it to discard
	// stale snapshots.
	Version uint64
}
