// Package metrics exposes Prometheus instrumentation for the arrival pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the pipeline's metrics on a private registry.
type Collector struct {
	reg *prometheus.Registry

	FeedFetches        *prometheus.CounterVec // labels: source, outcome (ok|empty|failed)
	FeedCacheHits      prometheus.Counter
	DecodeFailures     prometheus.Counter
	SyntheticFallbacks prometheus.Counter

	ArrivalRequestDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "realtime_feed_fetches_total",
			Help: "Upstream feed fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		FeedCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "realtime_feed_cache_hits_total",
			Help: "Feed fetches served from the short-lived cache.",
		}),
		DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "realtime_decode_failures_total",
			Help: "Feed payloads that failed protobuf decoding.",
		}),
		SyntheticFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "realtime_synthetic_fallbacks_total",
			Help: "Requests answered with synthetic arrivals.",
		}),
		ArrivalRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "realtime_arrival_request_duration_seconds",
			Help:    "Duration of full fetch-extract-merge cycles.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}

	reg.MustRegister(
		c.FeedFetches,
		c.FeedCacheHits,
		c.DecodeFailures,
		c.SyntheticFallbacks,
		c.ArrivalRequestDuration,
	)
	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
