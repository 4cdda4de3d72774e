package mathx

import "math"

// NormalCDF calculates the cumulative distribution function of the standard normal distribution.
// P(Z <= z) where Z ~ N(0,1)
func NormalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// PoissonPMF calculates P(X = k) for X ~ Poisson(lambda).
// Computed in log space to stay stable for large k.
func PoissonPMF(lambda float64, k int) float64 {
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	if k < 0 {
		return 0
	}
	logP := -lambda + float64(k)*math.Log(lambda) - logFactorial(k)
	return math.Exp(logP)
}

// PoissonCDF calculates P(X <= k) for X ~ Poisson(lambda).
func PoissonCDF(lambda float64, k int) float64 {
	if k < 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += PoissonPMF(lambda, i)
	}
	if sum > 1 {
		return 1
	}
	return sum
}

// PoissonSurvival calculates P(X >= k) for X ~ Poisson(lambda).
func PoissonSurvival(lambda float64, k int) float64 {
	if k <= 0 {
		return 1
	}
	return 1 - PoissonCDF(lambda, k-1)
}

func logFactorial(n int) float64 {
	lg, _ := math.Lgamma(float64(n) + 1)
	return lg
}

// Clamp01 restricts p to the [0, 1] probability range.
func Clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
