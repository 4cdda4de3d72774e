package blend

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fpl-predictor/internal/models"
	"github.com/yourusername/fpl-predictor/internal/namematch"
	"github.com/yourusername/fpl-predictor/internal/rating"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func intPtr(v int) *int { return &v }

func testTeams() []models.Team {
	return []models.Team{
		{ID: 1, Name: "Arsenal", LeaguePosition: 2},
		{ID: 2, Name: "Brentford", LeaguePosition: 11},
	}
}

func testPlayers() []models.Player {
	return []models.Player{
		{
			ID: 10, Name: "Kai Havertz", TeamID: 1, Position: models.PositionForward,
			ChanceOfPlaying: 1,
			Current:         models.SeasonTotals{Minutes: 900, Games: 10, Goals: 5, Assists: 2},
		},
		{
			ID: 11, Name: "Bukayo Saka", TeamID: 1, Position: models.PositionMidfielder,
			ChanceOfPlaying: 1,
			Current:         models.SeasonTotals{Minutes: 900, Games: 10, Goals: 5, Assists: 4},
		},
		{
			ID: 12, Name: "David Raya", TeamID: 1, Position: models.PositionGoalkeeper,
			ChanceOfPlaying: 1,
			Current:         models.SeasonTotals{Minutes: 900, Games: 10, Saves: 30},
		},
		{
			ID: 20, Name: "Bryan Mbeumo", TeamID: 2, Position: models.PositionForward,
			ChanceOfPlaying: 1,
			Current:         models.SeasonTotals{Minutes: 900, Games: 10, Goals: 8, Assists: 2},
		},
	}
}

func testBlender(t *testing.T) *Blender {
	t.Helper()
	teams := testTeams()
	players := testPlayers()
	tracker := rating.NewTracker(teams, testLogger())
	matcher := namematch.NewMatcher(players, teams, testLogger())
	return NewBlender(tracker, matcher, teams, players, true, testLogger())
}

func upcoming() models.Fixture {
	return models.Fixture{ID: 5, Round: 12, Kickoff: time.Now(), HomeTeamID: 1, AwayTeamID: 2}
}

func quote(prob float64) []decimal.Decimal {
	return []decimal.Decimal{decimal.NewFromFloat(1 / prob)}
}

func TestFixtureContextWithoutOddsUsesModel(t *testing.T) {
	b := testBlender(t)

	ctx := b.BuildFixtureContext(upcoming(), nil)

	// No folded fixtures: both sides land on the league default.
	assert.False(t, ctx.HomeFromOdds)
	assert.False(t, ctx.AwayFromOdds)
	assert.InDelta(t, 1.35, ctx.HomeXG, 1e-9)
	assert.InDelta(t, 1.35, ctx.AwayXG, 1e-9)

	// Even ratings with a flat draw rate.
	assert.False(t, ctx.WinFromOdds)
	assert.InDelta(t, 0.25, ctx.Draw, 1e-9)
	assert.InDelta(t, 0.375, ctx.HomeWin, 1e-9)
	assert.InDelta(t, 1.0, ctx.HomeWin+ctx.Draw+ctx.AwayWin, 1e-9)
}

func TestFixtureContextPrefersBookmakerLadder(t *testing.T) {
	b := testBlender(t)

	bundle := &models.OddsBundle{
		HomeTeam: "Arsenal",
		AwayTeam: "Brentford",
		Markets: map[models.MarketType]*models.OddsMarket{
			models.MarketTotalHomeGoals: {
				Type: models.MarketTotalHomeGoals,
				Outcomes: map[string][]decimal.Decimal{
					"Over 1.5": quote(0.55),
					"Over 2.5": quote(0.20),
				},
			},
		},
	}

	ctx := b.BuildFixtureContext(upcoming(), bundle)

	require.True(t, ctx.HomeFromOdds)
	// 2*0.35 + 3*0.20 over the decomposed ladder.
	assert.InDelta(t, 1.3, ctx.HomeXG, 1e-9)
	assert.InDelta(t, 0.45, ctx.HomeZeroProb, 1e-9)

	// The away side had no market and falls back.
	assert.False(t, ctx.AwayFromOdds)
	assert.Equal(t, -1.0, ctx.AwayZeroProb)
}

func TestFixtureContextWinMarket(t *testing.T) {
	b := testBlender(t)

	bundle := &models.OddsBundle{
		Markets: map[models.MarketType]*models.OddsMarket{
			models.MarketWin: {
				Type: models.MarketWin,
				Outcomes: map[string][]decimal.Decimal{
					"Arsenal":   quote(0.50),
					"Draw":      quote(0.30),
					"Brentford": quote(0.40),
				},
			},
		},
	}

	ctx := b.BuildFixtureContext(upcoming(), bundle)

	require.True(t, ctx.WinFromOdds)
	assert.InDelta(t, 0.50/1.2, ctx.HomeWin, 1e-9)
	assert.InDelta(t, 1.0, ctx.HomeWin+ctx.Draw+ctx.AwayWin, 1e-9)
}

func TestScorerMarketOverridesShareModel(t *testing.T) {
	b := testBlender(t)

	bundle := &models.OddsBundle{
		Markets: map[models.MarketType]*models.OddsMarket{
			models.MarketAnytimeScorer: {
				Type: models.MarketAnytimeScorer,
				Outcomes: map[string][]decimal.Decimal{
					"Kai Havertz 1+ Goals": quote(0.55 * 1.05),
				},
			},
		},
	}

	ctx := b.BuildFixtureContext(upcoming(), bundle)

	havertz := testPlayers()[0]
	exp := b.PlayerExpectation(havertz, ctx)

	assert.True(t, exp.GoalsFromOdds)
	// Single tier only: anytime deflates back to 0.55 expected goals.
	assert.InDelta(t, 0.55, exp.Goals, 1e-9)

	// A teammate without a price stays on the share model.
	saka := testPlayers()[1]
	expSaka := b.PlayerExpectation(saka, ctx)
	assert.False(t, expSaka.GoalsFromOdds)
}

func TestUnmatchedScorerBecomesPlaceholder(t *testing.T) {
	b := testBlender(t)

	bundle := &models.OddsBundle{
		Markets: map[models.MarketType]*models.OddsMarket{
			models.MarketAnytimeScorer: {
				Type: models.MarketAnytimeScorer,
				Outcomes: map[string][]decimal.Decimal{
					"J. Smith 1+ Goals": quote(0.40),
				},
			},
		},
	}

	ctx := b.BuildFixtureContext(upcoming(), bundle)

	require.Len(t, ctx.Placeholders, 1)
	ph := ctx.Placeholders[0]
	assert.Equal(t, "J. Smith", ph.Player.Name)
	assert.True(t, ph.Player.Placeholder())
	assert.Greater(t, ph.Goals, 0.0)
}

func TestShareModelGoals(t *testing.T) {
	b := testBlender(t)

	ctx := b.BuildFixtureContext(upcoming(), nil)
	havertz := testPlayers()[0]

	exp := b.PlayerExpectation(havertz, ctx)

	// Havertz has 5 of the team's 10 goals with a full set of games:
	// share 0.5 of the 1.35 team expectation.
	assert.False(t, exp.GoalsFromOdds)
	assert.InDelta(t, 0.5*1.35, exp.Goals, 1e-9)
}

func TestCleanSheetProb(t *testing.T) {
	model := math.Exp(-1.2)
	assert.InDelta(t, model, cleanSheetProb(1.2, -1), 1e-12)
	assert.InDelta(t, (model+0.4)/2, cleanSheetProb(1.2, 0.4), 1e-12)
}

func TestGoalkeeperSavesFallback(t *testing.T) {
	b := testBlender(t)

	ctx := b.BuildFixtureContext(upcoming(), nil)
	raya := testPlayers()[2]

	exp := b.PlayerExpectation(raya, ctx)

	assert.False(t, exp.SavesFromOdds)
	assert.InDelta(t, 3.0, exp.Saves, 1e-9)
}

func TestGoalkeeperSavesLadder(t *testing.T) {
	b := testBlender(t)

	bundle := &models.OddsBundle{
		Markets: map[models.MarketType]*models.OddsMarket{
			models.MarketGoalkeeperSaves: {
				Type: models.MarketGoalkeeperSaves,
				Outcomes: map[string][]decimal.Decimal{
					"David Raya Over 2.5 Saves": quote(0.70),
					"David Raya Over 3.5 Saves": quote(0.40),
				},
			},
		},
	}

	ctx := b.BuildFixtureContext(upcoming(), bundle)
	raya := testPlayers()[2]

	exp := b.PlayerExpectation(raya, ctx)
	assert.True(t, exp.SavesFromOdds)
	assert.Greater(t, exp.Saves, 0.0)
}

func TestUnderdogDetection(t *testing.T) {
	b := testBlender(t)

	// Brentford (11th) against Arsenal (2nd) is a nine-place gap.
	assert.True(t, b.underdog(2, 1))
	assert.False(t, b.underdog(1, 2))
}

func TestSplitPlayerLabel(t *testing.T) {
	tests := []struct {
		label string
		name  string
		rest  string
	}{
		{"J. Smith 1+ Goals", "J. Smith", "1+ goals"},
		{"Alisson Over 2.5 Saves", "Alisson", "over 2.5 saves"},
		{"Erling Haaland To Score A Hat-Trick", "Erling Haaland", "to score a hat-trick"},
		{"Plain Name", "Plain Name", ""},
	}

	for _, tt := range tests {
		name, rest := splitPlayerLabel(tt.label)
		assert.Equal(t, tt.name, name, tt.label)
		assert.Equal(t, tt.rest, rest, tt.label)
	}
}

func TestPoissonMeanFromAnytime(t *testing.T) {
	assert.InDelta(t, 0.0, poissonMeanFromAnytime(0), 1e-12)
	assert.InDelta(t, -math.Log(0.5), poissonMeanFromAnytime(0.5), 1e-12)
}
