package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultWarnRate  = 1.0
	defaultWarnBurst = 5
)

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	// Logger receives the diagnostic emitted when a toast is raised with no
	// notifier registered.
	Logger zerolog.Logger

	// WarnRate and WarnBurst bound how often that diagnostic is logged at
	// warn level. Calls over the limit are still logged, at debug level.
	// Zero values use 1/s with a burst of 5.
	WarnRate  float64
	WarnBurst int
}

// Registry holds at most one active Notifier and forwards toast requests to
// it. Only one notifier is addressable at a time; registering a new one
// replaces the previous. A zero-notifier Registry drops every request with a
// diagnostic instead of failing.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	notifier Notifier

	log     zerolog.Logger
	limiter *rate.Limiter
}

// NewRegistry creates an empty registry.
func NewRegistry(opts RegistryOptions) *Registry {
	r := &Registry{log: opts.Logger}
	r.limiter = newWarnLimiter(opts.WarnRate, opts.WarnBurst)
	return r
}

func newWarnLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		perSecond = defaultWarnRate
	}
	if burst <= 0 {
		burst = defaultWarnBurst
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Register makes n the active notifier, replacing any previous one.
// Registering nil empties the slot.
func (r *Registry) Register(n Notifier) {
	r.mu.Lock()
	r.notifier = n
	r.mu.Unlock()
}

// Registered reports whether a notifier is currently registered.
func (r *Registry) Registered() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.notifier != nil
}

// SetWarnLimit replaces the limiter used for the missing-notifier diagnostic.
func (r *Registry) SetWarnLimit(perSecond float64, burst int) {
	l := newWarnLimiter(perSecond, burst)
	r.mu.Lock()
	r.limiter = l
	r.mu.Unlock()
}

// Success raises a success toast.
func (r *Registry) Success(text string, timeout ...time.Duration) {
	if n := r.active(SeveritySuccess, text); n != nil {
		n.Success(text, timeout...)
	}
}

// Error raises an error toast.
func (r *Registry) Error(text string, timeout ...time.Duration) {
	if n := r.active(SeverityError, text); n != nil {
		n.Error(text, timeout...)
	}
}

// Warning raises a warning toast.
func (r *Registry) Warning(text string, timeout ...time.Duration) {
	if n := r.active(SeverityWarning, text); n != nil {
		n.Warning(text, timeout...)
	}
}

// Info raises an info toast.
func (r *Registry) Info(text string, timeout ...time.Duration) {
	if n := r.active(SeverityInfo, text); n != nil {
		n.Info(text, timeout...)
	}
}

// active returns the registered notifier, or logs the drop and returns nil.
// The lock is released before the notifier runs so a notifier may call
// Register itself.
func (r *Registry) active(sev Severity, text string) Notifier {
	r.mu.RLock()
	n, limiter := r.notifier, r.limiter
	r.mu.RUnlock()

	if n != nil {
		return n
	}

	var ev *zerolog.Event
	if limiter.Allow() {
		ev = r.log.Warn()
	} else {
		ev = r.log.Debug()
	}
	ev.Str("severity", string(sev)).
		Str("text", text).
		Msg("toast dropped: no notifier registered")

	return nil
}
