package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/toast"
	"github.com/colonyops/toast/pkg/tuitest"
)

type fixture struct {
	store    *toast.Store
	registry *notify.Registry
	clock    *toast.ManualClock
}

func newModel(t *testing.T) (Model, fixture) {
	t.Helper()
	clk := toast.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store := toast.New(toast.Options{Clock: clk, Logger: zerolog.Nop()})
	t.Cleanup(store.Close)
	registry := notify.NewRegistry(notify.RegistryOptions{Logger: zerolog.Nop()})

	m := New(Deps{Store: store, Registry: registry, Logger: zerolog.Nop()})
	return m, fixture{store: store, registry: registry, clock: clk}
}

func press(t *testing.T, m Model, keys ...rune) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(tuitest.KeyPress(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestNew_RegistersStoreNotifier(t *testing.T) {
	_, f := newModel(t)

	require.True(t, f.registry.Registered())

	f.registry.Error("disk full", 3000*time.Millisecond)

	msgs := f.store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "disk full", msgs[0].Text)
	assert.Equal(t, notify.SeverityError, msgs[0].Severity)
	assert.Equal(t, int64(3000), msgs[0].TimeoutMs())
}

func TestModel_SeverityKeys(t *testing.T) {
	tests := []struct {
		key      rune
		severity notify.Severity
	}{
		{'s', notify.SeveritySuccess},
		{'e', notify.SeverityError},
		{'w', notify.SeverityWarning},
		{'i', notify.SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m, f := newModel(t)
			m = press(t, m, tt.key)

			msgs := f.store.Messages()
			require.Len(t, msgs, 1)
			assert.Equal(t, tt.severity, msgs[0].Severity)
			assert.Equal(t, toast.DefaultTimeout, msgs[0].Timeout)
			assert.Equal(t, 1, m.raised)
		})
	}
}

func TestModel_PinKeyIsPersistent(t *testing.T) {
	m, f := newModel(t)
	press(t, m, 'p')

	f.clock.Advance(time.Hour)

	msgs := f.store.Messages()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Persistent())
}

func TestModel_DismissNewestAndOldest(t *testing.T) {
	m, f := newModel(t)
	m = press(t, m, 's', 'e', 'w')

	all := f.store.Messages()
	require.Len(t, all, 3)

	m = press(t, m, 'd')
	got := f.store.Messages()
	require.Len(t, got, 2)
	assert.Equal(t, all[0].ID, got[0].ID)
	assert.Equal(t, all[1].ID, got[1].ID)

	press(t, m, 'x')
	got = f.store.Messages()
	require.Len(t, got, 1)
	assert.Equal(t, all[1].ID, got[0].ID)
}

func TestModel_DismissOnEmptyIsNoop(t *testing.T) {
	m, f := newModel(t)
	press(t, m, 'd', 'x', 'c')
	assert.Equal(t, 0, f.store.Len())
}

func TestModel_ClearKey(t *testing.T) {
	m, f := newModel(t)
	m = press(t, m, 's', 'p', 'i')
	require.Equal(t, 3, f.store.Len())

	press(t, m, 'c')
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, 0, f.store.Pending())
}

func TestModel_QuitUnregisters(t *testing.T) {
	for _, msg := range []tea.Msg{tuitest.KeyPress('q'), tuitest.KeyCtrl('c')} {
		m, f := newModel(t)

		next, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, next.(Model).quitting)
		assert.False(t, f.registry.Registered())

		// Raising after quit no longer reaches the store.
		f.registry.Info("late")
		assert.Equal(t, 0, f.store.Len())

		// The change listener is released.
		assert.Nil(t, waitForChange(m.sub)())
	}
}

func TestModel_TimerExpirySignalsChange(t *testing.T) {
	m, f := newModel(t)
	m = press(t, m, 's')

	// Drain the signal from the add.
	assert.Equal(t, storeChangedMsg{}, waitForChange(m.sub)())

	f.clock.Advance(toast.DefaultTimeout)
	require.Equal(t, 0, f.store.Len())

	msg := waitForChange(m.sub)()
	assert.Equal(t, storeChangedMsg{}, msg)

	next, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.IsType(t, Model{}, next)
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := newModel(t)

	next, cmd := m.Update(tuitest.WindowSize(120, 40))
	assert.Nil(t, cmd)

	got := next.(Model)
	assert.Equal(t, 120, got.width)
	assert.Equal(t, 40, got.height)
}

func TestModel_RenderMain(t *testing.T) {
	m, _ := newModel(t)
	m = press(t, m, 'i')

	out := tuitest.StripANSI(m.renderMain())
	assert.Contains(t, out, "1 live")
	assert.Contains(t, out, "default timeout 3s")
	assert.Contains(t, out, "d dismiss newest")
	assert.Contains(t, out, "q quit")
}

func TestModel_View(t *testing.T) {
	m, _ := newModel(t)
	assert.True(t, m.View().AltScreen)

	next, _ := m.Update(tuitest.KeyPress('q'))
	assert.False(t, next.(Model).View().AltScreen)
}
