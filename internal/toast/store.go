// Package toast owns the live set of toast messages: identity, display
// order, and timed removal.
package toast

import (
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/notify"
)

// DefaultTimeout is used when Add is called without a timeout and the store
// has not been given another default.
const DefaultTimeout = 3 * time.Second

// Options configures a Store.
type Options struct {
	// Clock defaults to RealClock.
	Clock  Clock
	Logger zerolog.Logger
	// DefaultTimeout applies to calls that omit the timeout. Zero uses
	// DefaultTimeout; use SetDefaultTimeout(0) for persistent-by-default.
	DefaultTimeout time.Duration
}

// Store is the authoritative, ordered set of live messages. Each message
// with a positive timeout owns one timer that dismisses exactly that id.
//
// Store is safe for concurrent use. Every method completes under a single
// lock, so the live sequence reflects the order calls acquired it.
type Store struct {
	mu             sync.Mutex
	clock          Clock
	log            zerolog.Logger
	defaultTimeout time.Duration

	next     ID
	version  uint64
	messages []Message
	timers   map[ID]Timer

	hooks hooks
}

// New creates an empty store.
func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.DefaultTimeout == 0 {
		opts.DefaultTimeout = DefaultTimeout
	}

	s := &Store{
		clock:  opts.Clock,
		log:    opts.Logger,
		timers: make(map[ID]Timer),
	}
	s.SetDefaultTimeout(opts.DefaultTimeout)
	return s
}

// SetDefaultTimeout changes the timeout used by calls that omit one.
// Zero makes such messages persistent; negative values are treated as zero.
// Messages already live keep their timeout.
func (s *Store) SetDefaultTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	s.defaultTimeout = d
	s.mu.Unlock()
}

// DefaultTimeout returns the timeout used by calls that omit one.
func (s *Store) DefaultTimeout() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultTimeout
}

// Add appends a message and returns its id. An empty severity means info;
// any other unknown severity is logged and stored as info. When timeout is
// omitted the store default applies; a negative timeout is logged and
// treated as zero (never auto-dismiss).
func (s *Store) Add(text string, severity notify.Severity, timeout ...time.Duration) ID {
	severity = s.normalizeSeverity(severity)

	s.mu.Lock()
	d := s.resolveTimeoutLocked(timeout)

	id := s.next
	s.next++

	s.messages = append(s.messages, Message{
		ID:        id,
		Text:      text,
		Severity:  severity,
		Timeout:   d,
		CreatedAt: s.clock.Now(),
	})

	if d > 0 {
		s.timers[id] = s.clock.AfterFunc(d, func() {
			s.remove(id, ChangeExpired)
		})
	}

	change := s.changeLocked(ChangeAdded, id, 0)
	s.mu.Unlock()

	s.publish(change)
	return id
}

// Dismiss removes the message with the given id. Unknown or already removed
// ids are ignored.
func (s *Store) Dismiss(id ID) {
	s.remove(id, ChangeDismissed)
}

// Clear removes every live message and cancels their timers.
func (s *Store) Clear() {
	s.mu.Lock()
	n := len(s.messages)
	if n == 0 {
		s.mu.Unlock()
		return
	}

	s.stopTimersLocked()
	s.messages = nil

	change := s.changeLocked(ChangeCleared, 0, n)
	s.mu.Unlock()

	s.publish(change)
}

// Close cancels all outstanding timers. Live messages are kept but no
// longer auto-dismiss. Close does not notify subscribers.
func (s *Store) Close() {
	s.mu.Lock()
	s.stopTimersLocked()
	s.mu.Unlock()
}

// Success adds a success message.
func (s *Store) Success(text string, timeout ...time.Duration) ID {
	return s.Add(text, notify.SeveritySuccess, timeout...)
}

// Error adds an error message.
func (s *Store) Error(text string, timeout ...time.Duration) ID {
	return s.Add(text, notify.SeverityError, timeout...)
}

// Warning adds a warning message.
func (s *Store) Warning(text string, timeout ...time.Duration) ID {
	return s.Add(text, notify.SeverityWarning, timeout...)
}

// Info adds an info message.
func (s *Store) Info(text string, timeout ...time.Duration) ID {
	return s.Add(text, notify.SeverityInfo, timeout...)
}

// Messages returns a copy of the live sequence in display order.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

// Get returns the live message with the given id.
func (s *Store) Get(id ID) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.messages[i], true
	}
	return Message{}, false
}

// Len returns the number of live messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Pending returns the number of armed auto-dismiss timers.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Store) remove(id ID, kind ChangeKind) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	s.messages = slices.Delete(s.messages, i, i+1)
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}

	change := s.changeLocked(kind, id, 0)
	s.mu.Unlock()

	s.publish(change)
}

func (s *Store) indexLocked(id ID) int {
	return slices.IndexFunc(s.messages, func(m Message) bool { return m.ID == id })
}

func (s *Store) stopTimersLocked() {
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Store) changeLocked(kind ChangeKind, id ID, removed int) Change {
	s.version++
	return Change{
		Kind:     kind,
		ID:       id,
		Removed:  removed,
		Messages: slices.Clone(s.messages),
		Version:  s.version,
	}
}

func (s *Store) normalizeSeverity(sev notify.Severity) notify.Severity {
	if sev.Valid() {
		return sev
	}
	if sev != "" {
		s.log.Warn().Str("severity", string(sev)).Msg("unknown toast severity, using info")
	}
	return notify.SeverityInfo
}

func (s *Store) resolveTimeoutLocked(timeout []time.Duration) time.Duration {
	if len(timeout) == 0 {
		return s.defaultTimeout
	}
	d := timeout[0]
	if d < 0 {
		s.log.Warn().Dur("timeout", d).Msg("negative toast timeout, message will not auto-dismiss")
		return 0
	}
	return d
}
