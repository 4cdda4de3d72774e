package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestCounters(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		FixturesFoldedTotal.Inc()
		MarketsNormalizedTotal.Inc()
		QuotesDroppedTotal.Inc()
		UnmatchedNamesTotal.Inc()
	})
}

func TestRecordPredictionRun(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name    string
		players int
		rounds  int
	}{
		{
			name:    "typical run",
			players: 600,
			rounds:  1,
		},
		{
			name:    "multi round run",
			players: 600,
			rounds:  5,
		},
		{
			name:    "empty run",
			players: 0,
			rounds:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordPredictionRun(0.5, tt.players, tt.rounds)
			})
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}
