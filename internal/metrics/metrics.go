// Package metrics exposes Prometheus counters for the cache and upstream sources.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache lookup results.
const (
	LookupHit   = "hit"
	LookupMiss  = "miss"
	LookupStale = "stale"
	LookupError = "error"
)

// Upstream call outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the collectors and the registry they are registered on.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	cacheLookups     *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
}

// New creates a registry with process/Go collectors and the bingeworthy counters.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bingeworthy",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache reads by result (hit, miss, stale, error).",
		}, []string{"result"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bingeworthy",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Outbound API calls by source and outcome.",
		}, []string{"source", "outcome"}),
	}
	reg.MustRegister(m.cacheLookups, m.upstreamRequests)
	return m
}

// CacheLookup counts one cache read.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// Upstream counts one outbound call.
func (m *Metrics) Upstream(source string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.upstreamRequests.WithLabelValues(source, outcome).Inc()
}

// Registry returns the underlying registry (for tests and custom collectors).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
