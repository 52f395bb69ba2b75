// Package metrics exposes asset pipeline counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kilometers.ai/assets/internal/core/ports"
)

const namespace = "assets"

// Metrics holds the pipeline collectors on a private registry
type Metrics struct {
	registry     *prometheus.Registry
	records      *prometheus.CounterVec
	failures     *prometheus.CounterVec
	pages        *prometheus.CounterVec
	pageDuration prometheus.Histogram
}

// New creates and registers the pipeline collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Asset records submitted during collection, by contributor and outcome.",
		}, []string{"contributor", "outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contributor_failures_total",
			Help:      "Contributors whose submissions were discarded.",
		}, []string{"contributor"}),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_rendered_total",
			Help:      "Page cycles run by the HTTP host, by result.",
		}, []string{"result"}),
		pageDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "page_cycle_seconds",
			Help:      "Time spent collecting and rendering assets for one page.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
	}

	m.registry.MustRegister(
		m.records,
		m.failures,
		m.pages,
		m.pageDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveCollected counts accepted and rejected records of one contributor
func (m *Metrics) ObserveCollected(contributor string, accepted, rejected int) {
	m.records.WithLabelValues(contributor, "accepted").Add(float64(accepted))
	m.records.WithLabelValues(contributor, "rejected").Add(float64(rejected))
}

// ObserveContributorFailure counts a discarded contributor
func (m *Metrics) ObserveContributorFailure(contributor string) {
	m.failures.WithLabelValues(contributor).Inc()
}

// ObservePage records one page cycle
func (m *Metrics) ObservePage(result string, elapsed time.Duration) {
	m.pages.WithLabelValues(result).Inc()
	m.pageDuration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

var _ ports.CollectionObserver = (*Metrics)(nil)
