package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the drift API.
type Metrics struct {
	Predictions        *prometheus.CounterVec // labels: outcome={success,fallback,invalid,error}
	OutOfBoundsSamples prometheus.Counter
	DegradedSteps      prometheus.Counter
	FallbackUsed       prometheus.Counter

	PredictionDuration prometheus.Histogram
	PredictionHours    prometheus.Histogram
}

// NewMetrics creates and registers all drift metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drift_api",
			Name:      "predictions_total",
			Help:      "Drift prediction requests by outcome.",
		}, []string{"outcome"}),
		OutOfBoundsSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drift_api",
			Name:      "out_of_bounds_samples_total",
			Help:      "Velocity samples outside field coverage, substituted with zero.",
		}),
		DegradedSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drift_api",
			Name:      "degraded_steps_total",
			Help:      "Integration steps completed with the degraded drift estimate.",
		}),
		FallbackUsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drift_api",
			Name:      "fallback_used_total",
			Help:      "Predictions served by the fallback estimator without field data.",
		}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "drift_api",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of a complete prediction including field loading.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		PredictionHours: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "drift_api",
			Name:      "prediction_hours",
			Help:      "Requested drift duration in hours.",
			Buckets:   []float64{1, 3, 6, 12, 24, 48, 72, 120},
		}),
	}

	prometheus.MustRegister(
		m.Predictions,
		m.OutOfBoundsSamples,
		m.DegradedSteps,
		m.FallbackUsed,
		m.PredictionDuration,
		m.PredictionHours,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Predictions:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "drift_api", Name: "predictions_total"}, []string{"outcome"}),
		OutOfBoundsSamples: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "drift_api", Name: "out_of_bounds_samples_total"}),
		DegradedSteps:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "drift_api", Name: "degraded_steps_total"}),
		FallbackUsed:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "drift_api", Name: "fallback_used_total"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "drift_api", Name: "prediction_duration_seconds"}),
		PredictionHours:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "drift_api", Name: "prediction_hours"}),
	}
}
