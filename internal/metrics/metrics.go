// Package metrics exposes the mock auth server's prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mock_auth"

// Results of an auth attempt.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultConflict = "conflict"
	ResultDenied   = "denied"
	ResultError    = "error"
)

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	Registry     *prometheus.Registry
	AuthAttempts *prometheus.CounterVec
	StoreLatency *prometheus.HistogramVec
}

// New creates a registry with the auth collectors and the go/process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		AuthAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Register and login attempts by action and result.",
		}, []string{"action", "result"}),
		StoreLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_duration_seconds",
			Help:      "Latency of user store operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	m.Registry.MustRegister(
		m.AuthAttempts,
		m.StoreLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Attempt counts one auth attempt. A nil receiver is a no-op.
func (m *Metrics) Attempt(action, result string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(action, result).Inc()
}

// ObserveStore records how long a store operation took. A nil receiver is a no-op.
func (m *Metrics) ObserveStore(op string, seconds float64) {
	if m == nil {
		return
	}
	m.StoreLatency.WithLabelValues(op).Observe(seconds)
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
