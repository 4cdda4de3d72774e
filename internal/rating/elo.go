package rating

import "math"

const (
	// KFactor is the step size of a single rating update.
	KFactor = 20

	// InitialRating seeds every team before any fixture is folded.
	InitialRating = 1200

	ratingBase  = 10
	ratingScale = 400
)

// ExpectedScore returns the logistic win expectation of a team rated ra
// against one rated rb.
func ExpectedScore(ra, rb float64) float64 {
	return 1 / (1 + math.Pow(ratingBase, -(ra-rb)/ratingScale))
}

// MarginMultiplier scales a rating update by the decisiveness of the
// result. Draws and one-goal wins carry no extra weight; blowouts grow
// slowly past three goals.
func MarginMultiplier(margin int) float64 {
	if margin < 0 {
		margin = -margin
	}
	switch {
	case margin <= 1:
		return 1.0
	case margin == 2:
		return 1.25
	case margin == 3:
		return 1.5
	default:
		return 1.75 + float64(margin-4)/8
	}
}

// Delta returns the rating change for a team rated ra against rb given
// the actual score (1 win, 0.5 draw, 0 loss) and the goal margin. The
// opposing team's delta is the exact negation.
func Delta(ra, rb, actual float64, margin int) float64 {
	return KFactor * MarginMultiplier(margin) * (actual - ExpectedScore(ra, rb))
}
