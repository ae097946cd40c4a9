// Package metrics exposes Prometheus instruments for generation runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"arbor/internal/core"
)

// Metrics groups the arbor collectors on their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	Generations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Instances   *prometheus.CounterVec
	Cache       *prometheus.CounterVec
}

// New registers the arbor collectors plus the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_generations_total",
				Help: "Generation runs by variant and outcome.",
			},
			[]string{"variant", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arbor_generation_duration_seconds",
				Help:    "Time to expand and interpret one grammar.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"variant"},
		),
		Instances: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_instances_total",
				Help: "Instance transforms emitted by geometry class.",
			},
			[]string{"variant", "class"},
		),
		Cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_cache_lookups_total",
				Help: "Result cache lookups by result.",
			},
			[]string{"result"},
		),
	}
	m.Registry.MustRegister(
		m.Generations, m.Duration, m.Instances, m.Cache,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveGeneration records one run. res may be nil when err is set.
func (m *Metrics) ObserveGeneration(variant string, d time.Duration, res *core.Result, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Generations.WithLabelValues(variant, "error").Inc()
		return
	}
	m.Generations.WithLabelValues(variant, "ok").Inc()
	m.Duration.WithLabelValues(variant).Observe(d.Seconds())
	if res == nil || res.Transforms == nil {
		return
	}
	for class, n := range res.Transforms.Counts() {
		m.Instances.WithLabelValues(variant, string(class)).Add(float64(n))
	}
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.Cache.WithLabelValues("hit").Inc()
		return
	}
	m.Cache.WithLabelValues("miss").Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
