// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers HTTP and catalog metrics.
type Collector struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	catalogQueries  prometheus.Counter
	catalogResults  prometheus.Histogram
	eventsPublished *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "happytime_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "happytime_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		catalogQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "happytime_catalog_queries_total",
			Help: "Catalog filter derivations served.",
		}),
		catalogResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "happytime_catalog_result_size",
			Help:    "Result set size of catalog queries.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "happytime_events_published_total",
			Help: "Domain events published by type and outcome.",
		}, []string{"type", "outcome"}),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.catalogQueries,
		c.catalogResults,
		c.eventsPublished,
	)

	return c
}

// RecordRequest records a completed HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCatalogQuery records one filter derivation and its result size.
func (c *Collector) RecordCatalogQuery(resultSize int) {
	c.catalogQueries.Inc()
	c.catalogResults.Observe(float64(resultSize))
}

// RecordEventPublished records an event publish attempt.
func (c *Collector) RecordEventPublished(eventType string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.eventsPublished.WithLabelValues(eventType, outcome).Inc()
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
