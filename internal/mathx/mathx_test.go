package mathx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-12)
	assert.InDelta(t, 0.8413, NormalCDF(1), 1e-3)
	assert.InDelta(t, 0.1587, NormalCDF(-1), 1e-3)
}

func TestPoissonPMF(t *testing.T) {
	assert.InDelta(t, math.Exp(-2), PoissonPMF(2, 0), 1e-12)
	assert.InDelta(t, 2*math.Exp(-2), PoissonPMF(2, 1), 1e-12)
	assert.Equal(t, 0.0, PoissonPMF(2, -1))
	assert.Equal(t, 1.0, PoissonPMF(0, 0))
	assert.Equal(t, 0.0, PoissonPMF(0, 3))
}

func TestPoissonPMFSumsToOne(t *testing.T) {
	sum := 0.0
	for k := 0; k <= 50; k++ {
		sum += PoissonPMF(3.5, k)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPoissonSurvival(t *testing.T) {
	assert.Equal(t, 1.0, PoissonSurvival(2, 0))
	assert.InDelta(t, 1-math.Exp(-2), PoissonSurvival(2, 1), 1e-12)

	// Survival plus CDF below the threshold covers everything.
	assert.InDelta(t, 1.0, PoissonCDF(4, 6)+PoissonSurvival(4, 7), 1e-12)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(1.5))
	assert.Equal(t, 0.3, Clamp01(0.3))
}
