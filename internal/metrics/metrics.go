package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedeemDuration tracks the latency of the redemption workflow
	RedeemDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "perks_redeem_duration_seconds",
			Help: "Duration of points redemption requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		},
		[]string{"outcome"}, // success, rejected or error
	)

	// CodeValidations counts partner-terminal code lookups by result
	CodeValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perks_code_validations_total",
			Help: "Total discount code validation lookups",
		},
		[]string{"result"}, // valid or invalid
	)

	// CodeMarks counts codes flipped to used
	CodeMarks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "perks_codes_marked_used_total",
			Help: "Total discount codes marked as used",
		},
	)
)

// RecordRedeemDuration records the duration of one redemption request
func RecordRedeemDuration(outcome string, duration float64) {
	RedeemDuration.WithLabelValues(outcome).Observe(duration)
}

// RecordCodeValidation records one code validation lookup
func RecordCodeValidation(result string) {
	CodeValidations.WithLabelValues(result).Inc()
}

// RecordCodeMarked records one code transition to used
func RecordCodeMarked() {
	CodeMarks.Inc()
}
