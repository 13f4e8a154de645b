package lookup

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cadastral",
			Name:      "lookups_total",
			Help:      "Total number of lookups by outcome",
		},
		[]string{"outcome"},
	)
	lookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cadastral",
			Name:      "lookup_duration_seconds",
			Help:      "Lookup duration in seconds, fetch and extraction included",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 45},
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(lookupsTotal, lookupDuration)
}

func observeLookup(outcome string, elapsed time.Duration) {
	lookupsTotal.WithLabelValues(outcome).Inc()
	lookupDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
