// Package metrics holds the Prometheus collectors for route queries and
// segment mutations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/atharv3903/roadtrip/internal/algo"
)

var (
	// RouteQueries counts route queries by result ("found", "self", "no_route").
	RouteQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadtrip_route_queries_total",
		Help: "Total route queries by result",
	}, []string{"result", "strategy"})

	// RouteDuration tracks search latency.
	RouteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roadtrip_route_query_duration_seconds",
		Help:    "Route search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
	}, []string{"strategy"})

	// RouteExplored tracks how many cities a search finalized.
	RouteExplored = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "roadtrip_route_explored_cities",
		Help:    "Cities finalized per route search",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 500, 1000},
	})

	// SegmentMutations counts add/remove operations by outcome.
	SegmentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadtrip_segment_mutations_total",
		Help: "Road segment mutations by operation and result",
	}, []string{"op", "result"})
)

// ObserveRoute records one search.
func ObserveRoute(s algo.Strategy, res algo.Result, took time.Duration) {
	result := "no_route"
	switch {
	case res.Found && res.Route.SelfRoute():
		result = "self"
	case res.Found:
		result = "found"
	}
	RouteQueries.WithLabelValues(result, s.String()).Inc()
	RouteDuration.WithLabelValues(s.String()).Observe(took.Seconds())
	RouteExplored.Observe(float64(res.Explored))
}

// ObserveMutation records an "add" or "remove" and whether it failed.
func ObserveMutation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SegmentMutations.WithLabelValues(op, result).Inc()
}
