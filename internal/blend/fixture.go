package blend

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/fpl-predictor/internal/models"
	"github.com/yourusername/fpl-predictor/internal/odds"
)

// tierProbs are the margin-deflated scorer-market probabilities for one
// player.
type tierProbs struct {
	anytime  float64
	twoPlus  float64
	hatTrick float64
}

// playerSignals collects every bookmaker signal resolved to one player.
type playerSignals struct {
	tiers      tierProbs
	assistProb float64
	saves      *odds.Ladder
}

// Placeholder pairs an unresolved bookmaker name with the signals scraped
// for it, so the row still reaches the output table.
type Placeholder struct {
	Player models.Player
	Tiers  models.SignalColumns
	Goals  float64
}

// FixtureContext holds the normalized match-level signals shared by every
// player expectation for one fixture.
type FixtureContext struct {
	Fixture models.Fixture

	HomeXG       float64
	AwayXG       float64
	HomeFromOdds bool
	AwayFromOdds bool

	// Zero-goal probabilities from the team goals ladders, used for
	// clean sheets. Negative when no ladder was available.
	HomeZeroProb float64
	AwayZeroProb float64

	HomeWin     float64
	Draw        float64
	AwayWin     float64
	WinFromOdds bool

	signals      map[int]*playerSignals
	Placeholders []Placeholder
}

// BuildFixtureContext normalizes a fixture's odds bundle into match-level
// expectations and per-player signals, falling back to the team-strength
// model wherever the book is silent.
func (b *Blender) BuildFixtureContext(fx models.Fixture, bundle *models.OddsBundle) *FixtureContext {
	ctx := &FixtureContext{
		Fixture:      fx,
		HomeZeroProb: -1,
		AwayZeroProb: -1,
		signals:      map[int]*playerSignals{},
	}

	ctx.HomeXG, ctx.HomeFromOdds, ctx.HomeZeroProb = b.teamGoals(fx.HomeTeamID, fx.AwayTeamID, true, bundle, models.MarketTotalHomeGoals)
	ctx.AwayXG, ctx.AwayFromOdds, ctx.AwayZeroProb = b.teamGoals(fx.AwayTeamID, fx.HomeTeamID, false, bundle, models.MarketTotalAwayGoals)

	b.matchResult(ctx, bundle)
	if bundle != nil {
		b.playerMarkets(ctx, bundle)
	}
	return ctx
}

// teamGoals resolves one side's expected goals with the bookmaker ladder
// taking precedence over the rating model.
func (b *Blender) teamGoals(teamID, opponentID int, home bool, bundle *models.OddsBundle, market models.MarketType) (xg float64, fromOdds bool, zeroProb float64) {
	if bundle != nil {
		if m := bundle.Market(market); m != nil {
			ladder := odds.BuildLadder(m)
			if !ladder.Empty() {
				dist := ladder.ExactCounts()
				return odds.ExpectedValue(dist), true, dist[0]
			}
		}
	}
	return b.modelTeamGoals(teamID, opponentID, home), false, -1
}

// matchResult fills win/draw probabilities from the 1X2 market, falling
// back to the rating expectation with a flat draw rate.
func (b *Blender) matchResult(ctx *FixtureContext, bundle *models.OddsBundle) {
	const modelDrawRate = 0.25

	if bundle != nil {
		if m := bundle.Market(models.MarketWin); m != nil {
			var home, draw, away float64
			for label, quotes := range m.Outcomes {
				p := odds.Consensus(quotes)
				if p <= 0 {
					continue
				}
				switch b.resultSide(label, ctx.Fixture) {
				case "home":
					home = p
				case "draw":
					draw = p
				case "away":
					away = p
				}
			}
			if home > 0 && draw > 0 && away > 0 {
				ctx.HomeWin, ctx.Draw, ctx.AwayWin = odds.ThreeWay(home, draw, away)
				ctx.WinFromOdds = true
				return
			}
		}
	}

	e := b.tracker.ExpectedResult(ctx.Fixture.HomeTeamID, ctx.Fixture.AwayTeamID)
	ctx.Draw = modelDrawRate
	ctx.HomeWin = e * (1 - modelDrawRate)
	ctx.AwayWin = (1 - e) * (1 - modelDrawRate)
}

func (b *Blender) resultSide(label string, fx models.Fixture) string {
	if strings.EqualFold(strings.TrimSpace(label), "draw") {
		return "draw"
	}
	team, err := b.matcher.MatchTeam(label)
	if err != nil {
		return ""
	}
	switch team.ID {
	case fx.HomeTeamID:
		return "home"
	case fx.AwayTeamID:
		return "away"
	}
	return ""
}

// playerMarkets resolves every player-keyed outcome in the bundle. Scorer
// and assist prices are single-sided, so they are deflated by the default
// margin; saves rungs form a per-keeper ladder handled like any totals
// market.
func (b *Blender) playerMarkets(ctx *FixtureContext, bundle *models.OddsBundle) {
	type tierTarget func(*tierProbs, float64)
	scorerMarkets := []struct {
		market models.MarketType
		set    tierTarget
	}{
		{models.MarketAnytimeScorer, func(t *tierProbs, p float64) { t.anytime = p }},
		{models.MarketTwoOrMoreGoals, func(t *tierProbs, p float64) { t.twoPlus = p }},
		{models.MarketHatTrick, func(t *tierProbs, p float64) { t.hatTrick = p }},
	}

	placeholders := map[string]*Placeholder{}

	for _, sm := range scorerMarkets {
		m := bundle.Market(sm.market)
		if m == nil {
			continue
		}
		for label, quotes := range m.Outcomes {
			name, _ := splitPlayerLabel(label)
			p := odds.SingleSided(odds.Consensus(quotes))
			if name == "" || p <= 0 {
				continue
			}
			player := b.matcher.MatchPlayer(name, ctx.Fixture.HomeTeamID, ctx.Fixture.AwayTeamID)
			if player.Placeholder() {
				ph := placeholders[name]
				if ph == nil {
					ph = &Placeholder{Player: player}
					placeholders[name] = ph
				}
				switch sm.market {
				case models.MarketAnytimeScorer:
					ph.Tiers.AnytimeScorerProb = p
				case models.MarketTwoOrMoreGoals:
					ph.Tiers.TwoOrMoreProb = p
				case models.MarketHatTrick:
					ph.Tiers.HatTrickProb = p
				}
				continue
			}
			sig := ctx.signal(player.ID)
			sm.set(&sig.tiers, p)
		}
	}

	if m := bundle.Market(models.MarketPlayerAssists); m != nil {
		for label, quotes := range m.Outcomes {
			name, _ := splitPlayerLabel(label)
			p := odds.SingleSided(odds.Consensus(quotes))
			if name == "" || p <= 0 {
				continue
			}
			player := b.matcher.MatchPlayer(name, ctx.Fixture.HomeTeamID, ctx.Fixture.AwayTeamID)
			if player.Placeholder() {
				continue
			}
			ctx.signal(player.ID).assistProb = p
		}
	}

	if m := bundle.Market(models.MarketGoalkeeperSaves); m != nil {
		perKeeper := map[string]map[string][]decimal.Decimal{}
		for label, quotes := range m.Outcomes {
			name, rest := splitPlayerLabel(label)
			rung := savesRung(rest)
			if name == "" || rung == "" {
				continue
			}
			if perKeeper[name] == nil {
				perKeeper[name] = map[string][]decimal.Decimal{}
			}
			perKeeper[name][rung] = quotes
		}
		for name, outcomes := range perKeeper {
			player := b.matcher.MatchPlayer(name, ctx.Fixture.HomeTeamID, ctx.Fixture.AwayTeamID)
			if player.Placeholder() {
				continue
			}
			ladder := odds.BuildLadder(&models.OddsMarket{
				Type:     models.MarketGoalkeeperSaves,
				Outcomes: outcomes,
			})
			if !ladder.Empty() {
				ctx.signal(player.ID).saves = ladder
			}
		}
	}

	for _, ph := range placeholders {
		ph.Goals = odds.ExpectedGoalsFromTiers(ph.Tiers.AnytimeScorerProb, ph.Tiers.TwoOrMoreProb, ph.Tiers.HatTrickProb)
		ctx.Placeholders = append(ctx.Placeholders, *ph)
	}
}

func (ctx *FixtureContext) signal(playerID int) *playerSignals {
	s, ok := ctx.signals[playerID]
	if !ok {
		s = &playerSignals{}
		ctx.signals[playerID] = s
	}
	return s
}

// qualifier tokens terminate the player-name prefix of an outcome label
// like "J. Smith 1+ Goals" or "Alisson Over 2.5 Saves".
var qualifierTokens = map[string]bool{
	"over": true, "under": true, "goals": true, "goal": true,
	"saves": true, "save": true, "assists": true, "assist": true,
	"anytime": true, "scorer": true, "to": true, "score": true,
	"hat": true, "trick": true, "hat-trick": true, "or": true, "more": true,
}

// savesRung reduces a qualifier like "over 2.5 saves" to the bare
// "over 2.5" rung the ladder parser expects.
func savesRung(rest string) string {
	fields := strings.Fields(rest)
	if len(fields) < 2 || (fields[0] != "over" && fields[0] != "under") {
		return ""
	}
	return fields[0] + " " + fields[1]
}

// splitPlayerLabel separates an outcome label into the player-name prefix
// and the market qualifier remainder.
func splitPlayerLabel(label string) (name, rest string) {
	fields := strings.Fields(label)
	for i, f := range fields {
		lower := strings.ToLower(f)
		if qualifierTokens[lower] || strings.ContainsAny(f, "0123456789") {
			return strings.Join(fields[:i], " "), strings.ToLower(strings.Join(fields[i:], " "))
		}
	}
	return strings.Join(fields, " "), ""
}
