package replay

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/toast"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newRunner(t *testing.T, detached bool) (*Runner, *bytes.Buffer, *toast.Store, *bytes.Buffer) {
	t.Helper()
	clk := toast.NewManualClock(epoch)
	store := toast.New(toast.Options{Clock: clk, Logger: zerolog.Nop()})
	t.Cleanup(store.Close)

	var logs bytes.Buffer
	registry := notify.NewRegistry(notify.RegistryOptions{Logger: zerolog.New(&logs)})

	var out bytes.Buffer
	r := NewRunner(Options{
		Registry: registry,
		Store:    store,
		Clock:    clk,
		Out:      &out,
		Logger:   zerolog.Nop(),
		Detached: detached,
	})
	return r, &out, store, &logs
}

func TestLoad_Demo(t *testing.T) {
	s, err := Load("testdata/demo.yaml")
	require.NoError(t, err)

	require.Len(t, s.Steps, 6)
	assert.Equal(t, 5*time.Second, s.Tail)
	assert.Equal(t, 9*time.Second, s.Duration())

	first := s.Steps[0]
	require.NotNil(t, first.Notify)
	assert.Equal(t, "error", first.Notify.Severity)
	require.NotNil(t, first.Notify.Timeout)
	assert.Equal(t, 3*time.Second, *first.Notify.Timeout)

	assert.Nil(t, s.Steps[1].Notify.Timeout)
	assert.Equal(t, 500*time.Millisecond, s.Steps[1].After)

	require.NotNil(t, s.Steps[3].Dismiss)
	assert.Equal(t, toast.ID(2), s.Steps[3].Dismiss.ID)
	assert.True(t, s.Steps[5].Clear)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	require.Error(t, err)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("steps: [unterminated"))
	require.Error(t, err)
}

func TestScript_Validate(t *testing.T) {
	dur := func(d time.Duration) *time.Duration { return &d }

	tests := []struct {
		name   string
		script Script
		fields []string
	}{
		{
			name:   "empty steps",
			script: Script{},
			fields: []string{"steps"},
		},
		{
			name: "valid",
			script: Script{Steps: []Step{
				{Notify: &NotifyAction{Text: "hi"}},
				{Dismiss: &DismissAction{ID: 0}},
				{Clear: true},
			}},
		},
		{
			name: "no action",
			script: Script{Steps: []Step{
				{After: time.Second},
			}},
			fields: []string{"steps[0]"},
		},
		{
			name: "two actions",
			script: Script{Steps: []Step{
				{Notify: &NotifyAction{Text: "hi"}, Clear: true},
			}},
			fields: []string{"steps[0]"},
		},
		{
			name: "bad notify",
			script: Script{Steps: []Step{
				{Notify: &NotifyAction{Severity: "fatal", Text: " ", Timeout: dur(-time.Second)}},
			}},
			fields: []string{"steps[0].notify.text", "steps[0].notify.severity", "steps[0].notify.timeout"},
		},
		{
			name: "negative delays and id",
			script: Script{
				Tail: -time.Second,
				Steps: []Step{
					{After: -time.Millisecond, Dismiss: &DismissAction{ID: -1}},
				},
			},
			fields: []string{"tail", "steps[0].after", "steps[0].dismiss.id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.script.Validate()
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}

			var fe criterio.FieldErrors
			require.ErrorAs(t, err, &fe)

			got := make([]string, 0, len(fe))
			for _, e := range fe {
				got = append(got, e.Field)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestRunner_RunSimulated(t *testing.T) {
	s, err := Load("testdata/demo.yaml")
	require.NoError(t, err)

	r, out, store, _ := newRunner(t, false)

	res, err := r.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Added)
	assert.Equal(t, 4, res.Removed)
	assert.Empty(t, res.Live)
	assert.Equal(t, 0, store.Pending())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		`[   0.000s] added     #0 error   "disk full" (3s)`,
		`[   0.500s] added     #1 success "backup finished" (3s)`,
		`[   1.500s] added     #2 info    "pinned reminder" (persistent)`,
		`[   2.500s] dismissed #2`,
		`[   3.000s] expired   #0`,
		`[   3.500s] expired   #1`,
		`[   3.500s] added     #3 warning "cpu hot" (3s)`,
		`[   4.000s] cleared   1 removed`,
	}
	assert.Equal(t, want, lines)
}

func TestRunner_RunUnregistersWhenDone(t *testing.T) {
	r, _, store, _ := newRunner(t, false)

	_, err := r.Run(context.Background(), &Script{Steps: []Step{
		{Notify: &NotifyAction{Text: "pinned", Timeout: new(time.Duration)}},
	}})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	assert.False(t, r.opts.Registry.Registered())
}

func TestRunner_RunDetachedHitsFallback(t *testing.T) {
	r, out, store, logs := newRunner(t, true)

	res, err := r.Run(context.Background(), &Script{Steps: []Step{
		{Notify: &NotifyAction{Severity: "error", Text: "disk full"}},
	}})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "no notifier registered")
	assert.Contains(t, logs.String(), "disk full")
}

func TestRunner_RunRealTime(t *testing.T) {
	store := toast.New(toast.Options{Logger: zerolog.Nop()})
	t.Cleanup(store.Close)

	var out bytes.Buffer
	r := NewRunner(Options{
		Registry: notify.NewRegistry(notify.RegistryOptions{Logger: zerolog.Nop()}),
		Store:    store,
		Out:      &out,
	})

	timeout := 20 * time.Millisecond
	res, err := r.Run(context.Background(), &Script{
		Tail: 200 * time.Millisecond,
		Steps: []Step{
			{Notify: &NotifyAction{Text: "quick", Timeout: &timeout}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
	assert.Empty(t, res.Live)
	assert.Contains(t, out.String(), "expired")
}

func TestRunner_RunContextCancelled(t *testing.T) {
	store := toast.New(toast.Options{Logger: zerolog.Nop()})
	t.Cleanup(store.Close)

	r := NewRunner(Options{
		Registry: notify.NewRegistry(notify.RegistryOptions{Logger: zerolog.Nop()}),
		Store:    store,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx, &Script{Steps: []Step{
		{After: time.Hour, Clear: true},
	}})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
