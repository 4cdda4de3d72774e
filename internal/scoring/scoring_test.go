package scoring

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fpl-predictor/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func available(pos models.Position) models.Player {
	return models.Player{Position: pos, ChanceOfPlaying: 1}
}

func TestForwardPoints(t *testing.T) {
	a := NewAggregator(false, DCModelPoisson, testLogger())
	exp := models.MatchExpectation{Goals: 0.5, Assists: 0.2, CleanSheetProb: 0.4}

	b := a.FixturePoints(available(models.PositionForward), exp, 0)

	assert.InDelta(t, 2.0, b.Appearance, 1e-9)
	assert.InDelta(t, 2.0, b.Goals, 1e-9)
	assert.InDelta(t, 0.6, b.Assists, 1e-9)
	// Forwards get nothing for clean sheets.
	assert.Equal(t, 0.0, b.CleanSheets)
}

func TestMidfielderPoints(t *testing.T) {
	a := NewAggregator(false, DCModelPoisson, testLogger())
	exp := models.MatchExpectation{Goals: 0.4, Assists: 0.3, CleanSheetProb: 0.5}

	b := a.FixturePoints(available(models.PositionMidfielder), exp, 0)

	assert.InDelta(t, 2.0, b.Goals, 1e-9)
	assert.InDelta(t, 0.9, b.Assists, 1e-9)
	assert.InDelta(t, 0.5, b.CleanSheets, 1e-9)
}

func TestDefenderPoints(t *testing.T) {
	a := NewAggregator(false, DCModelPoisson, testLogger())
	exp := models.MatchExpectation{Goals: 0.1, Assists: 0.2, CleanSheetProb: 0.5, GoalsConceded: 1.2}

	b := a.FixturePoints(available(models.PositionDefender), exp, 0)

	assert.InDelta(t, 0.6, b.Goals, 1e-9)
	assert.InDelta(t, 2.0, b.CleanSheets, 1e-9)
	assert.InDelta(t, -0.6, b.GoalsConceded, 1e-9)
}

func TestGoalkeeperPoints(t *testing.T) {
	a := NewAggregator(false, DCModelPoisson, testLogger())
	exp := models.MatchExpectation{Saves: 3, CleanSheetProb: 0.4, GoalsConceded: 1.2}

	b := a.FixturePoints(available(models.PositionGoalkeeper), exp, 0)

	assert.InDelta(t, 1.0, b.Saves, 1e-9)
	assert.InDelta(t, 1.6, b.CleanSheets, 1e-9)
	assert.InDelta(t, -0.6, b.GoalsConceded, 1e-9)
	assert.Equal(t, 0.0, b.Goals)
}

func TestDefensiveContributionPoisson(t *testing.T) {
	a := NewAggregator(false, DCModelPoisson, testLogger())
	exp := models.MatchExpectation{DefensiveActions: 12}

	mid := a.FixturePoints(available(models.PositionMidfielder), exp, 0)
	def := a.FixturePoints(available(models.PositionDefender), exp, 0)

	// P(X >= 12) at a rate of 12 is just over a coin flip.
	assert.InDelta(t, 2*0.5384, mid.Defensive, 1e-3)
	// The defender threshold is lower, so the crossing is likelier.
	assert.Greater(t, def.Defensive, mid.Defensive)
}

func TestDefensiveContributionNormal(t *testing.T) {
	a := NewAggregator(false, DCModelNormal, testLogger())
	exp := models.MatchExpectation{DefensiveActions: 12}

	mid := a.FixturePoints(available(models.PositionMidfielder), exp, 0)

	// Continuity-corrected normal: z = (11.5-12)/sqrt(12).
	assert.InDelta(t, 2*0.5574, mid.Defensive, 1e-3)
}

func TestUnknownDCModelCoercedToPoisson(t *testing.T) {
	a := NewAggregator(false, DCModel("bogus"), testLogger())
	assert.Equal(t, DCModelPoisson, a.dcModel)
}

func TestManagerPoints(t *testing.T) {
	a := NewAggregator(false, DCModelPoisson, testLogger())
	exp := models.MatchExpectation{
		WinProb:        0.4,
		DrawProb:       0.3,
		CleanSheetProb: 0.5,
		TeamGoals:      1.5,
	}

	b := a.FixturePoints(available(models.PositionManager), exp, 0)
	assert.InDelta(t, 5.8, b.Manager, 1e-9)
	assert.Equal(t, 0.0, b.Appearance)

	exp.UnderdogBonus = true
	upset := a.FixturePoints(available(models.PositionManager), exp, 0)
	assert.InDelta(t, 5.8+0.4*10+0.3*5, upset.Manager, 1e-9)
}

func TestPlaceholderScoresLikeForward(t *testing.T) {
	a := NewAggregator(false, DCModelPoisson, testLogger())
	ph := models.NewPlaceholder("J. Smith")
	exp := models.MatchExpectation{Goals: 1.2}

	b := a.FixturePoints(ph, exp, 0)
	assert.InDelta(t, 2.0, b.Appearance, 1e-9)
	assert.InDelta(t, 4.8, b.Goals, 1e-9)
	assert.Equal(t, 0.0, b.CleanSheets)
	assert.InDelta(t, 6.8, b.Total(), 1e-9)
}

func TestBonusGate(t *testing.T) {
	exp := models.MatchExpectation{Goals: 0.5}
	fwd := available(models.PositionForward)

	with := NewAggregator(true, DCModelPoisson, testLogger()).FixturePoints(fwd, exp, 1.5)
	without := NewAggregator(false, DCModelPoisson, testLogger()).FixturePoints(fwd, exp, 1.5)

	assert.InDelta(t, 1.5, with.Bonus, 1e-9)
	assert.Equal(t, 0.0, without.Bonus)
}

func TestChanceOfPlayingScalesEverything(t *testing.T) {
	a := NewAggregator(true, DCModelPoisson, testLogger())
	exp := models.MatchExpectation{Goals: 0.5, Assists: 0.2}

	full := a.FixturePoints(available(models.PositionForward), exp, 2)
	doubtful := available(models.PositionForward)
	doubtful.ChanceOfPlaying = 0.5
	half := a.FixturePoints(doubtful, exp, 2)

	assert.InDelta(t, full.Total()/2, half.Total(), 1e-9)
}

func TestWriteCSV(t *testing.T) {
	results := []models.PredictionResult{
		{
			Player:          "Bukayo Saka",
			Team:            "Arsenal",
			Position:        models.PositionMidfielder,
			Price:           10.5,
			ChanceOfPlaying: 1,
			Expectations: []models.MatchExpectation{
				{Goals: 0.4, Assists: 0.3, CleanSheetProb: 0.5},
				{Goals: 0.2, Assists: 0.1, CleanSheetProb: 0.3},
			},
			Points: 9.123,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, csvHeader, rows[0])
	row := rows[1]
	assert.Equal(t, "Bukayo Saka", row[0])
	assert.Equal(t, "Arsenal", row[1])
	assert.Equal(t, string(models.PositionMidfielder), row[2])
	// Double gameweek expectations sum per column.
	assert.Equal(t, "0.600", row[11])
	assert.Equal(t, "0.400", row[12])
	assert.Equal(t, "9.123", row[16])
}
