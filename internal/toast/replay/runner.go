package replay

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/toast"
)

// Options configures a Runner.
type Options struct {
	Registry *notify.Registry
	Store    *toast.Store
	// Clock must be the clock the store was built with. A *toast.ManualClock
	// makes the run simulated; any other clock waits in real time.
	Clock  toast.Clock
	Out    io.Writer
	Logger zerolog.Logger
	// Detached leaves the registry empty so notify steps hit the
	// missing-notifier path.
	Detached bool
}

// Result summarizes a finished run.
type Result struct {
	Added   int
	Removed int
	Live    []toast.Message
}

// Runner executes scripts.
type Runner struct {
	opts Options

	mu     sync.Mutex
	start  time.Time
	result Result
}

type advancer interface {
	Advance(d time.Duration)
}

// NewRunner creates a runner. Out defaults to io.Discard and Clock to
// toast.RealClock.
func NewRunner(opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Clock == nil {
		opts.Clock = toast.RealClock{}
	}
	return &Runner{opts: opts}
}

// Run executes s and reports every store change to Out as it happens.
func (r *Runner) Run(ctx context.Context, s *Script) (Result, error) {
	r.mu.Lock()
	r.start = r.opts.Clock.Now()
	r.result = Result{}
	r.mu.Unlock()

	unsubscribe := r.opts.Store.Subscribe(r.report)
	defer unsubscribe()

	if !r.opts.Detached {
		r.opts.Registry.Register(toast.NewNotifier(r.opts.Store))
		defer r.opts.Registry.Register(nil)
	}

	for i, step := range s.Steps {
		if err := r.wait(ctx, step.After); err != nil {
			return r.finish(), fmt.Errorf("step %d: %w", i, err)
		}
		r.apply(step)
	}

	if err := r.wait(ctx, s.Tail); err != nil {
		return r.finish(), fmt.Errorf("tail: %w", err)
	}

	return r.finish(), nil
}

func (r *Runner) finish() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := r.result
	res.Live = r.opts.Store.Messages()
	return res
}

func (r *Runner) wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	if clk, ok := r.opts.Clock.(advancer); ok {
		clk.Advance(d)
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *Runner) apply(st Step) {
	switch {
	case st.Notify != nil:
		r.raise(st.Notify)
	case st.Dismiss != nil:
		r.opts.Store.Dismiss(st.Dismiss.ID)
	case st.Clear:
		r.opts.Store.Clear()
	}
}

func (r *Runner) raise(a *NotifyAction) {
	var timeout []time.Duration
	if a.Timeout != nil {
		timeout = []time.Duration{*a.Timeout}
	}

	sev := notify.SeverityInfo
	if a.Severity != "" {
		parsed, err := notify.ParseSeverity(a.Severity)
		if err != nil {
			r.opts.Logger.Warn().Err(err).Msg("replay: using info severity")
		} else {
			sev = parsed
		}
	}

	reg := r.opts.Registry
	switch sev {
	case notify.SeveritySuccess:
		reg.Success(a.Text, timeout...)
	case notify.SeverityError:
		reg.Error(a.Text, timeout...)
	case notify.SeverityWarning:
		reg.Warning(a.Text, timeout...)
	default:
		reg.Info(a.Text, timeout...)
	}
}

// report runs on whichever goroutine mutated the store.
func (r *Runner) report(c toast.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()

	offset := r.opts.Clock.Now().Sub(r.start)
	prefix := fmt.Sprintf("[%8.3fs] %-9s", offset.Seconds(), c.Kind)

	switch c.Kind {
	case toast.ChangeAdded:
		r.result.Added++
		// An added snapshot always ends with the new message.
		msg := c.Messages[len(c.Messages)-1]
		timeout := "persistent"
		if !msg.Persistent() {
			timeout = msg.Timeout.String()
		}
		_, _ = fmt.Fprintf(r.opts.Out, "%s #%d %-7s %q (%s)\n", prefix, msg.ID, msg.Severity, msg.Text, timeout)
	case toast.ChangeCleared:
		r.result.Removed += c.Removed
		_, _ = fmt.Fprintf(r.opts.Out, "%s %d removed\n", prefix, c.Removed)
	default:
		r.result.Removed++
		_, _ = fmt.Fprintf(r.opts.Out, "%s #%d\n", prefix, c.ID)
	}
}
