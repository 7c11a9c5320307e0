// Package metrics exposes the application's Prometheus instruments on a
// private registry. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mathlab"

// Metrics holds every instrument.
type Metrics struct {
	registry     *prometheus.Registry
	views        *prometheus.CounterVec
	lookupErrors *prometheus.CounterVec
	renderErrors *prometheus.CounterVec
	reloads      *prometheus.CounterVec
	activities   *prometheus.GaugeVec
	renderTime   *prometheus.HistogramVec
}

// New registers the instruments plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		views: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_total",
			Help:      "Rendered views by route kind.",
		}, []string{"kind"}),
		lookupErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_errors_total",
			Help:      "Routes that named an unknown activity, curriculum key or malformed route.",
		}, []string{"kind"}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Activity render entries that failed or panicked.",
		}, []string{"subject"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Content reloads by result.",
		}, []string{"result"}),
		activities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "activities",
			Help:      "Registered activities per subject, hidden ones included.",
		}, []string{"subject"}),
		renderTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering one view.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		m.views, m.lookupErrors, m.renderErrors, m.reloads, m.activities, m.renderTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// View counts one rendered view and its duration.
func (m *Metrics) View(kind string, seconds float64) {
	if m == nil {
		return
	}
	m.views.WithLabelValues(kind).Inc()
	m.renderTime.WithLabelValues(kind).Observe(seconds)
}

// LookupError counts a route that did not resolve.
func (m *Metrics) LookupError(kind string) {
	if m == nil {
		return
	}
	m.lookupErrors.WithLabelValues(kind).Inc()
}

// RenderError counts a failed activity render.
func (m *Metrics) RenderError(subject string) {
	if m == nil {
		return
	}
	m.renderErrors.WithLabelValues(subject).Inc()
}

// Reload counts a content reload; ok selects the result label.
func (m *Metrics) Reload(ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// SetActivities replaces the per-subject activity gauge.
func (m *Metrics) SetActivities(counts map[string]int) {
	if m == nil {
		return
	}
	m.activities.Reset()
	for subject, n := range counts {
		m.activities.WithLabelValues(subject).Set(float64(n))
	}
}
