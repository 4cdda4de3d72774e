// Package metrics provides the centralized Prometheus metrics registry for
// the prediction engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	FixturesFoldedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fpl_predictor",
		Name:      "fixtures_folded_total",
		Help:      "Total number of completed fixtures folded into team ratings",
	})
	MarketsNormalizedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fpl_predictor",
		Name:      "markets_normalized_total",
		Help:      "Total number of odds markets converted to probability ladders",
	})
	QuotesDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fpl_predictor",
		Name:      "quotes_dropped_total",
		Help:      "Total number of malformed odds quotes dropped from averaging",
	})
	UnmatchedNamesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fpl_predictor",
		Name:      "unmatched_names_total",
		Help:      "Total number of bookmaker names resolved to placeholder players",
	})
	PredictionRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fpl_predictor",
		Name:      "prediction_runs_total",
		Help:      "Total number of completed prediction runs",
	})
)

// Gauge metrics
var (
	PlayersPredicted = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fpl_predictor",
		Name:      "players_predicted",
		Help:      "Number of players in the most recent prediction run",
	})
	RoundsPredicted = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fpl_predictor",
		Name:      "rounds_predicted",
		Help:      "Number of rounds covered by the most recent prediction run",
	})
)

// Histogram metrics
var (
	PredictionRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fpl_predictor",
		Name:      "prediction_run_duration_seconds",
		Help:      "Duration of full prediction runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(FixturesFoldedTotal)
		registry.MustRegister(MarketsNormalizedTotal)
		registry.MustRegister(QuotesDroppedTotal)
		registry.MustRegister(UnmatchedNamesTotal)
		registry.MustRegister(PredictionRunsTotal)

		registry.MustRegister(PlayersPredicted)
		registry.MustRegister(RoundsPredicted)

		registry.MustRegister(PredictionRunDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPredictionRun records a completed run and its duration.
func RecordPredictionRun(durationSeconds float64, players, rounds int) {
	PredictionRunsTotal.Inc()
	PredictionRunDuration.Observe(durationSeconds)
	PlayersPredicted.Set(float64(players))
	RoundsPredicted.Set(float64(rounds))
}
