package toast

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/toast/internal/core/notify"
)

func TestMetrics_Attach(t *testing.T) {
	s, clock := newTestStore(t)
	m := NewMetrics(prometheus.NewRegistry())
	detach := m.Attach(s)

	s.Error("e1", time.Second)
	s.Error("e2", 0)
	ok := s.Success("ok", 0)
	s.Add("bogus", notify.Severity("nope"), 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.added.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.added.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.added.WithLabelValues("info")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.active))

	clock.Advance(time.Second)
	s.Dismiss(ok)
	s.Clear()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.removed.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.removed.WithLabelValues("dismissed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.removed.WithLabelValues("cleared")))
	assert.Zero(t, testutil.ToFloat64(m.active))

	detach()
	s.Info("untracked")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.added.WithLabelValues("info")))
}

func TestMetrics_ActiveSumsAcrossStores(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	a, _ := newTestStore(t)
	b, _ := newTestStore(t)
	defer m.Attach(a)()
	defer m.Attach(b)()

	a.Info("a1", 0)
	a.Info("a2", 0)
	b.Info("b1", 0)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.active))

	b.Clear()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.active))
}

func TestMetrics_ActiveOutOfOrderDelivery(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	msg := Message{ID: 0, Text: "x", Severity: notify.SeverityInfo}

	// The dismissal of #0 arrives before the add that created it.
	m.observe(Change{Kind: ChangeDismissed, ID: 0, Version: 2})
	m.observe(Change{Kind: ChangeAdded, ID: 0, Messages: []Message{msg}, Version: 1})

	assert.Zero(t, testutil.ToFloat64(m.active))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.added.WithLabelValues("info")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.removed.WithLabelValues("dismissed")))
}

func TestRegisterDebugLogger(t *testing.T) {
	var buf bytes.Buffer
	s, _ := newTestStore(t)
	unsubscribe := RegisterDebugLogger(s, zerolog.New(&buf).Level(zerolog.DebugLevel))

	s.Subscribe(func(Change) { panic("subscriber broke") })

	id := s.Info("hello", 0)
	s.Dismiss(id)
	s.Info("again", 0)
	s.Clear()

	out := buf.String()
	assert.Contains(t, out, `"change":"added"`)
	assert.Contains(t, out, `"change":"dismissed"`)
	assert.Contains(t, out, `"removed":1`)
	assert.Contains(t, out, "toast subscriber panicked")
	assert.Contains(t, out, "subscriber broke")

	buf.Reset()
	unsubscribe()
	s.Info("quiet", 0)
	assert.NotContains(t, buf.String(), "toast changed")
}
