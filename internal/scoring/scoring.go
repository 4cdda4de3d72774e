package scoring

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/fpl-predictor/internal/mathx"
	"github.com/yourusername/fpl-predictor/internal/models"
)

// DCModel selects how the defensive-contribution threshold crossing is
// approximated.
type DCModel string

const (
	DCModelPoisson DCModel = "poisson"
	DCModelNormal  DCModel = "normal"
)

const (
	appearancePoints = 2

	defenderDCThreshold = 10
	outfieldDCThreshold = 12
	dcPoints            = 2

	managerWinPoints   = 6
	managerDrawPoints  = 3
	underdogWinPoints  = 10
	underdogDrawPoints = 5
	managerCleanSheet  = 2
)

// Aggregator turns blended expectations into predicted points using the
// position-specific scoring weights.
type Aggregator struct {
	includeBonus bool
	dcModel      DCModel
	log          *logrus.Logger
}

func NewAggregator(includeBonus bool, dcModel DCModel, log *logrus.Logger) *Aggregator {
	if dcModel != DCModelNormal {
		dcModel = DCModelPoisson
	}
	return &Aggregator{includeBonus: includeBonus, dcModel: dcModel, log: log}
}

// FixturePoints scores one player's expectation for one fixture. Every
// term is scaled by the player's chance of playing.
func (a *Aggregator) FixturePoints(p models.Player, exp models.MatchExpectation, bonusPoints float64) models.PointsBreakdown {
	var b models.PointsBreakdown

	switch p.Position {
	case models.PositionGoalkeeper:
		b.Appearance = appearancePoints
		b.Saves = exp.Saves / 3
		b.CleanSheets = exp.CleanSheetProb * 4
		b.GoalsConceded = -exp.GoalsConceded / 2
	case models.PositionDefender:
		b.Appearance = appearancePoints
		b.Goals = exp.Goals * 6
		b.Assists = exp.Assists * 3
		b.CleanSheets = exp.CleanSheetProb * 4
		b.GoalsConceded = -exp.GoalsConceded / 2
	case models.PositionMidfielder:
		b.Appearance = appearancePoints
		b.Goals = exp.Goals * 5
		b.Assists = exp.Assists * 3
		b.CleanSheets = exp.CleanSheetProb * 1
	case models.PositionForward:
		b.Appearance = appearancePoints
		b.Goals = exp.Goals * 4
		b.Assists = exp.Assists * 3
	case models.PositionManager:
		b.Manager = a.managerPoints(exp)
	default:
		// An unresolved bookmaker name is almost always a priced
		// goalscorer, so placeholder entries score like forwards.
		b.Appearance = appearancePoints
		b.Goals = exp.Goals * 4
		b.Assists = exp.Assists * 3
	}

	if p.Position.Outfield() || p.Position == models.PositionGoalkeeper {
		b.Defensive = dcPoints * a.defensiveCrossing(p.Position, exp.DefensiveActions)
	}
	if a.includeBonus {
		b.Bonus = bonusPoints
	}

	scale := p.ChanceOfPlaying
	b.Appearance *= scale
	b.Goals *= scale
	b.Assists *= scale
	b.CleanSheets *= scale
	b.GoalsConceded *= scale
	b.Saves *= scale
	b.Defensive *= scale
	b.Bonus *= scale
	b.Manager *= scale
	return b
}

// managerPoints scores the manager position: match result, the upset
// bonus when their side sits well below the opponent, a clean sheet
// share, and the team's goals.
func (a *Aggregator) managerPoints(exp models.MatchExpectation) float64 {
	pts := exp.WinProb*managerWinPoints + exp.DrawProb*managerDrawPoints
	if exp.UnderdogBonus {
		pts += exp.WinProb*underdogWinPoints + exp.DrawProb*underdogDrawPoints
	}
	pts += exp.CleanSheetProb * managerCleanSheet
	pts += exp.TeamGoals
	return pts
}

// defensiveCrossing is the probability of the player's defensive-action
// count reaching the position's threshold in one match.
func (a *Aggregator) defensiveCrossing(pos models.Position, rate float64) float64 {
	if rate <= 0 {
		return 0
	}
	threshold := outfieldDCThreshold
	if pos == models.PositionDefender {
		threshold = defenderDCThreshold
	}
	if a.dcModel == DCModelNormal {
		// Continuity-corrected normal approximation of the count.
		z := (float64(threshold) - 0.5 - rate) / math.Sqrt(rate)
		return mathx.Clamp01(1 - mathx.NormalCDF(z))
	}
	return mathx.PoissonSurvival(rate, threshold)
}
