package toast

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports Prometheus counters for one or more stores.
type Metrics struct {
	added   *prometheus.CounterVec
	removed *prometheus.CounterVec
	active  prometheus.Gauge
}

// NewMetrics registers the toast metrics with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		added: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toast",
			Name:      "messages_added_total",
			Help:      "Total number of toast messages added, by severity",
		}, []string{"severity"}),

		removed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toast",
			Name:      "messages_removed_total",
			Help:      "Total number of toast messages removed, by reason",
		}, []string{"reason"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "toast",
			Name:      "messages_active",
			Help:      "Number of toast messages currently live",
		}),
	}
}

// Attach subscribes m to s. The returned func detaches it. Only changes
// observed while attached move the active gauge, so attach before the
// store receives messages.
func (m *Metrics) Attach(s *Store) (detach func()) {
	return s.Subscribe(m.observe)
}

// observe moves the gauge by deltas so it sums across stores and does not
// depend on the order changes are delivered in.
func (m *Metrics) observe(c Change) {
	switch c.Kind {
	case ChangeAdded:
		msg := c.Messages[len(c.Messages)-1]
		m.added.WithLabelValues(string(msg.Severity)).Inc()
		m.active.Inc()
	case ChangeDismissed, ChangeExpired:
		m.removed.WithLabelValues(string(c.Kind)).Inc()
		m.active.Dec()
	case ChangeCleared:
		m.removed.WithLabelValues(string(c.Kind)).Add(float64(c.Removed))
		m.active.Sub(float64(c.Removed))
	}
}
