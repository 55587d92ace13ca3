package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomsearch",
			Name:      "searches_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"}, // "ok" / "error"
	)

	SearchResultsCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "roomsearch",
			Name:      "search_results_count",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	SearchDegradedItemsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomsearch",
			Name:      "search_degraded_items_total",
			Help:      "Items whose semantic score was degraded to 0 by embedding failures",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchResultsCount)
	prometheus.MustRegister(SearchDegradedItemsTotal)
	searchMetricsRegistered = true
}
