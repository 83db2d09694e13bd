package colleges

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// catalogListTotal counts catalog listings by whether filters were applied.
	catalogListTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collegefinder_catalog_list_total",
		Help: "Catalog list requests by whether filters were applied",
	}, []string{"filtered"})

	// catalogFilterResults tracks how many colleges survive a filter.
	catalogFilterResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "collegefinder_catalog_filter_results",
		Help:    "Number of colleges returned by a filtered listing",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
	})

	// shortlistOpsTotal counts like and compare mutations by outcome.
	shortlistOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collegefinder_shortlist_operations_total",
		Help: "Like and compare mutations by operation and result",
	}, []string{"operation", "result"})
)
