package observe

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the client-side RPC collectors.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "todo",
				Subsystem: "rpc_client",
				Name:      "calls_total",
				Help:      "Total number of outgoing RPC calls by result code.",
			},
			[]string{"procedure", "protocol", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "todo",
				Subsystem: "rpc_client",
				Name:      "call_duration_seconds",
				Help:      "Duration of outgoing RPC calls.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"procedure"},
		),
	}
	reg.MustRegister(m.calls, m.duration)
	return m
}
