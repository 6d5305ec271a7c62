package duo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// regionsTotal counts replay regions by outcome (complete, capped, failed)
	regionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vbt_regions_total",
		Help: "Replay regions by outcome",
	}, []string{"outcome"})

	// regionPaths tracks distinct paths retained per region search
	regionPaths = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vbt_region_paths",
		Help:    "Distinct paths retained per region search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	// regionIterations tracks paths expanded per region search
	regionIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vbt_region_iterations",
		Help:    "Paths expanded per region search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	// recordsTotal counts emitted calls by side and decision
	recordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vbt_records_total",
		Help: "Calls by side and decision",
	}, []string{"side", "decision"})
)

func observeSearch(paths, iterations int) {
	regionPaths.Observe(float64(paths))
	regionIterations.Observe(float64(iterations))
}
