// Package metrics exposes Prometheus collectors for the zone engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ZonesLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "geozones_zones_loaded",
		Help: "Number of validated zones in the active store",
	})
	ContainmentQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geozones_containment_queries_total",
		Help: "Total containment queries answered",
	})
	ContainmentMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geozones_containment_misses_total",
		Help: "Total containment queries matching no zone",
	})
	QueryDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geozones_query_duration_ms",
		Help:    "Containment query duration in milliseconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
	})
	LookupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geozones_lookups_total",
		Help: "Total reverse geocoding calls issued",
	})
	LookupFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geozones_lookup_failures_total",
		Help: "Total reverse geocoding calls that failed",
	})
	LookupCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geozones_lookup_cache_hits_total",
		Help: "Total reverse geocoding lookups served from the memo cache",
	})
	LookupDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geozones_lookup_duration_ms",
		Help:    "Reverse geocoding call duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	CheckpointsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geozones_checkpoints_total",
		Help: "Total enrichment checkpoints persisted",
	})
	EnrichedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geozones_enriched_total",
		Help: "Total zones that received a city during enrichment",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geozones_http_requests_total",
		Help: "HTTP requests by method and status",
	}, []string{"method", "status"})
	HTTPRequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geozones_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
)

func init() {
	prometheus.MustRegister(ZonesLoaded)
	prometheus.MustRegister(ContainmentQueriesTotal)
	prometheus.MustRegister(ContainmentMissesTotal)
	prometheus.MustRegister(QueryDurationMs)
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(LookupFailuresTotal)
	prometheus.MustRegister(LookupCacheHitsTotal)
	prometheus.MustRegister(LookupDurationMs)
	prometheus.MustRegister(CheckpointsTotal)
	prometheus.MustRegister(EnrichedTotal)
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDurationMs)
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler { return promhttp.Handler() }
