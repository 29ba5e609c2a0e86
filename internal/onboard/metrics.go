package onboard

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	onboardTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gangway_onboard_total",
			Help: "Onboarding attempts by outcome and failure reason.",
		},
		[]string{"outcome", "reason"},
	)
	onboardDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gangway_onboard_duration_seconds",
			Help:    "End-to-end onboarding duration.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(onboardTotal, onboardDuration)
}
