package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search gateway Prometheus metrics.
var (
	CatalogRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchgate",
			Name:      "catalog_requests_total",
			Help:      "Total number of catalog backend requests",
		},
		[]string{"endpoint", "status"},
	)

	CatalogRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searchgate",
			Name:      "catalog_request_duration_seconds",
			Help:      "Catalog backend request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"endpoint"},
	)

	CatalogDedupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchgate",
			Name:      "catalog_dedup_total",
			Help:      "In-flight request coalescing outcomes",
		},
		[]string{"result"}, // "leader" / "shared"
	)

	CompatCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchgate",
			Name:      "compat_cache_total",
			Help:      "Compatibility mapping cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	TranslationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchgate",
			Name:      "translation_requests_total",
			Help:      "Total number of search term translation requests",
		},
		[]string{"status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers gateway metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogRequestsTotal)
	prometheus.MustRegister(CatalogRequestDuration)
	prometheus.MustRegister(CatalogDedupTotal)
	prometheus.MustRegister(CompatCacheTotal)
	prometheus.MustRegister(TranslationRequestsTotal)
	searchMetricsRegistered = true
}
