package bonus

import (
	"github.com/yourusername/fpl-predictor/internal/models"
	"github.com/yourusername/fpl-predictor/internal/rating"
)

// BPS-style weights for the performance proxy. The goal weights rise for
// more attacking positions because goals are rarer there per unit of BPS.
const (
	assistWeight      = 9
	tackleWeight      = 2
	fullMatchBonus    = 6
	fullMatchMinutes  = 60
	saveWeight        = 2.5
	cleanSheetWeight  = 12
	concededWeight    = -4
	defensiveGoal     = 12
	midfieldGoal      = 18
	forwardGoal       = 24
	totalFixtureBonus = 6
)

// Entry pairs a player with their blended expectation for one fixture.
type Entry struct {
	Player      models.Player
	Expectation models.MatchExpectation
}

// Score estimates a player's match performance on a BPS-like scale from
// their blended expectations and historical involvement rates.
func Score(p models.Player, exp models.MatchExpectation) float64 {
	s := exp.Assists * assistWeight
	s += perGame(p.Current.CBI, p.Prior.CBI, p) / 2
	s += perGame(p.Current.Recoveries, p.Prior.Recoveries, p) / 3
	s += perGame(p.Current.Tackles, p.Prior.Tackles, p) * tackleWeight
	if minutesPerGame(p) > fullMatchMinutes {
		s += fullMatchBonus
	}

	switch p.Position {
	case models.PositionGoalkeeper:
		s += exp.Saves * saveWeight
		s += exp.CleanSheetProb * cleanSheetWeight
		s += exp.GoalsConceded * concededWeight
		s += exp.Goals * defensiveGoal
	case models.PositionDefender:
		s += exp.CleanSheetProb * cleanSheetWeight
		s += exp.GoalsConceded * concededWeight
		s += exp.Goals * defensiveGoal
	case models.PositionMidfielder:
		s += exp.Goals * midfieldGoal
	case models.PositionForward:
		s += exp.Goals * forwardGoal
	}

	if s < 0 {
		return 0
	}
	return s
}

// ExpectedBonus allocates the fixture's six bonus points (3+2+1) across
// the pool by proportional share of the performance proxy: a player with
// score s among pool scores {s_i} expects 6*s / sum(s_i). The allocations
// of a fixture therefore always sum to exactly six.
func ExpectedBonus(entries []Entry) []float64 {
	scores := make([]float64, len(entries))
	total := 0.0
	for i, e := range entries {
		scores[i] = Score(e.Player, e.Expectation)
		total += scores[i]
	}

	out := make([]float64, len(entries))
	if total == 0 {
		return out
	}
	for i, s := range scores {
		out[i] = totalFixtureBonus * s / total
	}
	return out
}

func perGame(cur, prior int, p models.Player) float64 {
	w := rating.CurrentSeasonWeight
	den := float64(w*p.Current.Games + p.Prior.Games)
	if den == 0 {
		return 0
	}
	return float64(w*cur+prior) / den
}

func minutesPerGame(p models.Player) float64 {
	if p.Current.Games > 0 {
		return float64(p.Current.Minutes) / float64(p.Current.Games)
	}
	if p.Prior.Games > 0 {
		return float64(p.Prior.Minutes) / float64(p.Prior.Games)
	}
	return 0
}
