package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	ReconcileBatches *prometheus.CounterVec
	ListingCache     *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ReconcileBatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_reconcile_batches_total",
			Help: "Profile reconciliation batches by resource and outcome.",
		}, []string{"resource", "outcome"}),
		ListingCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_listing_cache_total",
			Help: "Job listing cache lookups by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.ReconcileBatches, m.ListingCache)
	}
	return m
}
