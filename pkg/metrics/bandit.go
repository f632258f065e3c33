package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handlers, by endpoint
	BanditRecommendLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bandit_recommend_latency_seconds",
		Help:    "Latency of bandit recommendation handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// Total number of recommendation requests served, by endpoint
	BanditRecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bandit_recommend_requests_total",
		Help: "Total number of bandit recommend requests",
	}, []string{"endpoint"})
)

func Init() {
	prometheus.MustRegister(
		BanditRecommendLatency,
		BanditRecommendRequests,
	)
}
