package blend

import (
	"math"

	"github.com/yourusername/fpl-predictor/internal/models"
	"github.com/yourusername/fpl-predictor/internal/odds"
	"github.com/yourusername/fpl-predictor/internal/rating"
)

// UnderdogPositionGap is how far above a team its opponent must sit in
// the table before a win counts as an upset for manager scoring.
const UnderdogPositionGap = 5

// PlayerExpectation blends every available signal into one player's
// expectation for one fixture. Missing markets degrade to the
// share-of-team model and then to historical rates; nothing errors.
func (b *Blender) PlayerExpectation(p models.Player, ctx *FixtureContext) models.MatchExpectation {
	home := p.TeamID == ctx.Fixture.HomeTeamID
	teamXG, concededXG := ctx.HomeXG, ctx.AwayXG
	oppZeroProb := ctx.AwayZeroProb
	oppID := ctx.Fixture.AwayTeamID
	winProb := ctx.HomeWin
	if !home {
		teamXG, concededXG = ctx.AwayXG, ctx.HomeXG
		oppZeroProb = ctx.HomeZeroProb
		oppID = ctx.Fixture.HomeTeamID
		winProb = ctx.AwayWin
	}

	sig := ctx.signals[p.ID]

	exp := models.MatchExpectation{
		FixtureID:        ctx.Fixture.ID,
		Round:            ctx.Fixture.Round,
		Opponent:         b.TeamName(oppID),
		Home:             home,
		TeamGoals:        teamXG,
		GoalsConceded:    concededXG,
		DefensiveActions: blendedPerGame(p.Current.DefensiveActions, p.Prior.DefensiveActions, p.Current.Games, p.Prior.Games),
		WinProb:          winProb,
		DrawProb:         ctx.Draw,
		UnderdogBonus:    b.underdog(p.TeamID, oppID),
	}

	exp.Goals, exp.GoalsFromOdds = b.playerGoals(p, sig, teamXG)
	exp.Assists, exp.AssistsFromOdds = b.playerAssists(p, sig, teamXG)
	exp.CleanSheetProb = cleanSheetProb(concededXG, oppZeroProb)
	exp.Saves, exp.SavesFromOdds = b.playerSaves(p, sig)
	return exp
}

// Signals extracts the raw per-market probability columns for the output
// table alongside the match-level goal expectations.
func (b *Blender) Signals(p models.Player, ctx *FixtureContext) models.SignalColumns {
	home := p.TeamID == ctx.Fixture.HomeTeamID
	cols := models.SignalColumns{
		TeamGoals:         ctx.HomeXG,
		TeamGoalsConceded: ctx.AwayXG,
	}
	if !home {
		cols.TeamGoals, cols.TeamGoalsConceded = ctx.AwayXG, ctx.HomeXG
	}
	if sig := ctx.signals[p.ID]; sig != nil {
		cols.AnytimeScorerProb = sig.tiers.anytime
		cols.TwoOrMoreProb = sig.tiers.twoPlus
		cols.HatTrickProb = sig.tiers.hatTrick
		cols.AssistProb = sig.assistProb
	}
	return cols
}

// playerGoals prefers the scorer-market tiers; without them the player's
// decayed share of team output carries the team expectation, blended with
// the raw per-90 rate when the share sample is thin.
func (b *Blender) playerGoals(p models.Player, sig *playerSignals, teamXG float64) (float64, bool) {
	if sig != nil && sig.tiers.anytime > 0 {
		return odds.ExpectedGoalsFromTiers(sig.tiers.anytime, sig.tiers.twoPlus, sig.tiers.hatTrick), true
	}
	xg := b.outputShare(p, p.Current.Goals, func(gs, as int) int { return gs }) * teamXG
	if p.Current.Games < unreliableShareGames {
		perMatch := per90Blend(p, p.Current.Goals, p.Prior.Goals) * minutesPerGame(p) / 90
		xg = (xg + perMatch) / 2
	}
	return xg, false
}

func (b *Blender) playerAssists(p models.Player, sig *playerSignals, teamXG float64) (float64, bool) {
	if sig != nil && sig.assistProb > 0 {
		return poissonMeanFromAnytime(sig.assistProb), true
	}
	xa := b.outputShare(p, p.Current.Assists, func(gs, as int) int { return as }) * teamXG * AssistsPerGoal
	if p.Current.Games < unreliableShareGames {
		perMatch := per90Blend(p, p.Current.Assists, p.Prior.Assists) * minutesPerGame(p) / 90
		xa = (xa + perMatch) / 2
	}
	return xa, false
}

func (b *Blender) playerSaves(p models.Player, sig *playerSignals) (float64, bool) {
	if p.Position != models.PositionGoalkeeper {
		return 0, false
	}
	if sig != nil && sig.saves != nil {
		return odds.ExpectedValue(sig.saves.ExactCounts()), true
	}
	if !b.useSavesFallback {
		return 0, false
	}
	return blendedPerGame(p.Current.Saves, p.Prior.Saves, p.Current.Games, p.Prior.Games), false
}

// outputShare is the fraction of the team's season output attributable to
// the player, inflated for games missed since the raw fraction
// understates involvement when the player actually plays.
func (b *Blender) outputShare(p models.Player, playerTotal int, pick func(goals, assists int) int) float64 {
	goals, assists, teamGames := b.teamSeasonTotals(p.TeamID)
	teamTotal := pick(goals, assists)
	if teamTotal == 0 || playerTotal == 0 || p.Current.Games == 0 {
		return 0
	}
	boost := float64(teamGames) / float64(p.Current.Games)
	if boost > maxMissedGamesBoost {
		boost = maxMissedGamesBoost
	}
	share := float64(playerTotal) / float64(teamTotal) * boost
	if share > 1 {
		share = 1
	}
	return share
}

// cleanSheetProb averages the Poisson zero-goal estimate with the
// bookmaker's zero rung when the opponent's goals ladder was priced.
func cleanSheetProb(concededXG, oppZeroProb float64) float64 {
	model := math.Exp(-concededXG)
	if oppZeroProb < 0 {
		return model
	}
	return (model + oppZeroProb) / 2
}

// poissonMeanFromAnytime inverts P(X>=1) = 1 - exp(-lambda) to recover
// the expected count behind an anytime price.
func poissonMeanFromAnytime(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p > 0.999 {
		p = 0.999
	}
	return -math.Log(1 - p)
}

// per90Blend is the cross-season per-90 rate, current season weighted
// like the team rates.
func per90Blend(p models.Player, cur, prior int) float64 {
	w := rating.CurrentSeasonWeight
	minutes := float64(w*p.Current.Minutes + p.Prior.Minutes)
	if minutes == 0 {
		return 0
	}
	return float64(w*cur+prior) / (minutes / 90)
}

// minutesPerGame estimates how long the player stays on the pitch, from
// the current season when available.
func minutesPerGame(p models.Player) float64 {
	if p.Current.Games > 0 {
		return float64(p.Current.Minutes) / float64(p.Current.Games)
	}
	if p.Prior.Games > 0 {
		return float64(p.Prior.Minutes) / float64(p.Prior.Games)
	}
	return 0
}

// blendedPerGame is the cross-season per-game rate for a raw count.
func blendedPerGame(cur, prior, curGames, priorGames int) float64 {
	w := rating.CurrentSeasonWeight
	den := float64(w*curGames + priorGames)
	if den == 0 {
		return 0
	}
	return float64(w*cur+prior) / den
}

func (b *Blender) underdog(teamID, oppID int) bool {
	team, okT := b.teams[teamID]
	opp, okO := b.teams[oppID]
	if !okT || !okO || team.LeaguePosition == 0 || opp.LeaguePosition == 0 {
		return false
	}
	return team.LeaguePosition-opp.LeaguePosition >= UnderdogPositionGap
}
