// Package telemetry implements feature.Observer on top of Prometheus
// client metrics, so operators can watch append throughput, conflict
// rates, and emission latency without the core feature package importing
// Prometheus itself.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a Prometheus-backed implementation of feature.Observer.
type Metrics struct {
	appends     *prometheus.CounterVec
	conflicts   *prometheus.CounterVec
	emissions   *prometheus.CounterVec
	emitLatency *prometheus.HistogramVec
}

// Option configures a Metrics registrar.
type Option func(*config)

type config struct {
	namespace string
	registerer prometheus.Registerer
}

// WithNamespace prefixes every metric name (e.g. "vmaf" produces
// "vmaf_feature_appends_total").
func WithNamespace(ns string) Option {
	return func(c *config) { c.namespace = ns }
}

// WithRegisterer overrides the Prometheus registerer metrics are attached
// to. Defaults to prometheus.DefaultRegisterer.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(c *config) { c.registerer = r }
}

// New constructs and registers a Metrics observer. Registration failures
// (e.g. duplicate registration against a shared registerer) are ignored in
// favor of the already-registered collectors, matching the common
// "MustRegister once, reuse everywhere" pattern for long-lived processes.
func New(opts ...Option) *Metrics {
	cfg := config{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Metrics{
		appends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "feature_appends_total",
			Help:      "Total number of successful score appends, by feature name.",
		}, []string{"feature"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "feature_conflicts_total",
			Help:      "Total number of rejected duplicate-write attempts, by feature name.",
		}, []string{"feature"}),
		emissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "feature_emissions_total",
			Help:      "Total number of emission-walk passes that emitted at least one frame, by model name.",
		}, []string{"model"}),
		emitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "feature_emission_latency_seconds",
			Help:      "Wall-clock duration of an emission-walk pass, by model name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"model"}),
	}

	m.appends = registerCounterVec(cfg.registerer, m.appends)
	m.conflicts = registerCounterVec(cfg.registerer, m.conflicts)
	m.emissions = registerCounterVec(cfg.registerer, m.emissions)
	m.emitLatency = registerHistogramVec(cfg.registerer, m.emitLatency)

	return m
}

// registerCounterVec registers c and returns it, unless c was already
// registered under the same descriptor (by an earlier Metrics instance
// sharing the same registerer), in which case the existing collector is
// returned instead so every Metrics instance observes into the same series.
func registerCounterVec(r prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := r.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return c
}

func registerHistogramVec(r prometheus.Registerer, h *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := r.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
	}
	return h
}

func (m *Metrics) OnAppend(feature string)   { m.appends.WithLabelValues(feature).Inc() }
func (m *Metrics) OnConflict(feature string) { m.conflicts.WithLabelValues(feature).Inc() }
func (m *Metrics) OnEmit(model string)       { m.emissions.WithLabelValues(model).Inc() }

func (m *Metrics) ObserveEmissionLatency(model string, d time.Duration) {
	m.emitLatency.WithLabelValues(model).Observe(d.Seconds())
}
