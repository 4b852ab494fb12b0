// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mokki"

// Metrics groups every collector the server records into.
type Metrics struct {
	RPCRequests       *prometheus.CounterVec
	RPCDuration       *prometheus.HistogramVec
	Recomputes        prometheus.Counter
	RecomputeDuration prometheus.Histogram
	CommandsApplied   *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Recomputes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recomputes_total",
			Help:      "Trip recomputations that did work.",
		}),
		RecomputeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recompute_duration_seconds",
			Help:      "Time spent applying removals and recomputing a trip.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		CommandsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_applied_total",
			Help:      "Trip edit commands applied, by op.",
		}, []string{"op"}),
	}
}

// ObserveRecompute records one recomputation that started at start.
// A nil receiver records nothing.
func (m *Metrics) ObserveRecompute(start time.Time, didWork bool) {
	if m == nil {
		return
	}
	m.RecomputeDuration.Observe(time.Since(start).Seconds())
	if didWork {
		m.Recomputes.Inc()
	}
}

// CountCommand records one applied command.
func (m *Metrics) CountCommand(op string) {
	if m == nil {
		return
	}
	m.CommandsApplied.WithLabelValues(op).Inc()
}

// ObserveRPC records one finished RPC with its result code.
func (m *Metrics) ObserveRPC(procedure, code string, start time.Time) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
}
