// Package metric holds the platform-level prometheus collectors for the
// subscription client. Domain code increments them; the ops endpoint in
// infra/server/http exposes them.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains every collector the client maintains.
type Metrics struct {
	// UpdatesReceived counts inbound stream messages by variant.
	UpdatesReceived *prometheus.CounterVec

	// PingsAnswered counts liveness echoes sent back to the server.
	PingsAnswered prometheus.Counter

	// Reconnects counts supervisor retry attempts.
	Reconnects prometheus.Counter

	// StreamUp reports whether a subscription stream is currently live.
	StreamUp prometheus.Gauge
}

// NewMetrics creates the collector set. Collectors are inert until registered.
func NewMetrics() *Metrics {
	return &Metrics{
		UpdatesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "geyser",
				Subsystem: "stream",
				Name:      "updates_received_total",
				Help:      "Total inbound subscription updates by variant.",
			},
			[]string{"kind"},
		),
		PingsAnswered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "geyser",
				Subsystem: "stream",
				Name:      "pings_answered_total",
				Help:      "Total liveness pings echoed back to the server.",
			},
		),
		Reconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "geyser",
				Subsystem: "supervisor",
				Name:      "reconnects_total",
				Help:      "Total reconnect attempts made by the supervisor.",
			},
		),
		StreamUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "geyser",
				Subsystem: "stream",
				Name:      "up",
				Help:      "1 while a subscription stream is live, 0 otherwise.",
			},
		),
	}
}

// Register attaches all collectors to the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.UpdatesReceived,
		m.PingsAnswered,
		m.Reconnects,
		m.StreamUp,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
