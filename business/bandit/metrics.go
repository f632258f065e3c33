package bandit

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BanditFeedbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_feedback_events_total",
			Help: "Count of club feedback events applied to the bandit, by event_type.",
		},
		[]string{"event_type"},
	)

	BanditModelUpdates = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bandit_model_updates",
		Help: "Number of updates folded into the live model since the last reset.",
	})
)

func init() {
	prometheus.MustRegister(BanditFeedbackEventsTotal, BanditModelUpdates)
}
