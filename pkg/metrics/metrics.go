package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeOK                = "ok"
	OutcomeEmpty             = "empty"
	OutcomePartial           = "partial"
	OutcomeIncompleteProfile = "incomplete_profile"
	OutcomeNotFound          = "not_found"
	OutcomeError             = "error"
)

var (
	// Latency of a full recommendation pipeline run
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_request_duration_seconds",
		Help:    "Latency of the neighbor-based product recommendation pipeline",
		Buckets: prometheus.DefBuckets,
	})

	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Recommendation requests by outcome",
	}, []string{"outcome"})

	RecommendNeighbors = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_similar_users",
		Help:    "Number of similar users selected per recommendation request",
		Buckets: []float64{0, 1, 5, 10, 20, 30, 40, 50},
	})

	FinlifeFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "finlife_fetch_total",
		Help: "Finlife API page fetches by product kind and outcome",
	}, []string{"kind", "outcome"})
)

func Init() {
	prometheus.MustRegister(
		RecommendDuration,
		RecommendRequests,
		RecommendNeighbors,
		FinlifeFetches,
	)
}
