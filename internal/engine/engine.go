// Package engine orchestrates a full prediction run: fold ratings,
// normalize odds, blend expectations, simulate bonus, aggregate points.
package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fpl-predictor/internal/blend"
	"github.com/yourusername/fpl-predictor/internal/bonus"
	"github.com/yourusername/fpl-predictor/internal/dataset"
	"github.com/yourusername/fpl-predictor/internal/metrics"
	"github.com/yourusername/fpl-predictor/internal/models"
	"github.com/yourusername/fpl-predictor/internal/namematch"
	"github.com/yourusername/fpl-predictor/internal/rating"
	"github.com/yourusername/fpl-predictor/internal/scoring"
)

// Options are the run-level switches the caller owns.
type Options struct {
	IncludeBonusPoints bool
	UseSavesFallback   bool
	RoundsToPredict    int
	DCModel            scoring.DCModel
}

// Engine runs the prediction pipeline over one in-memory snapshot. Each
// run owns its own state; nothing persists between runs.
type Engine struct {
	opts Options
	log  *logrus.Logger
}

func New(opts Options, log *logrus.Logger) *Engine {
	if opts.RoundsToPredict < 1 {
		opts.RoundsToPredict = 1
	}
	return &Engine{opts: opts, log: log}
}

// Run executes the full pipeline and returns one row per roster player
// plus a row per placeholder created for unmatched bookmaker names.
func (e *Engine) Run(snap *dataset.Snapshot) (*models.PredictionRun, error) {
	start := time.Now()

	tracker := rating.NewTracker(snap.Teams, e.log)
	tracker.FoldSeason(snap.PriorFixtures, true)
	tracker.FoldSeason(snap.Fixtures, false)
	countFolded(snap.PriorFixtures)
	countFolded(snap.Fixtures)

	matcher := namematch.NewMatcher(snap.Players, snap.Teams, e.log)
	blender := blend.NewBlender(tracker, matcher, snap.Teams, snap.Players, e.opts.UseSavesFallback, e.log)
	aggregator := scoring.NewAggregator(e.opts.IncludeBonusPoints, e.opts.DCModel, e.log)

	rounds, fixtures := upcomingRounds(snap.Fixtures, e.opts.RoundsToPredict)
	if len(fixtures) == 0 {
		return nil, models.ErrNoFixtures
	}
	bundles := e.attachBundles(snap.Odds, fixtures, matcher)

	rows := map[int]*models.PredictionResult{}
	var placeholderRows []models.PredictionResult

	squads := map[int][]models.Player{}
	for _, p := range snap.Players {
		squads[p.TeamID] = append(squads[p.TeamID], p)
	}

	for _, fx := range fixtures {
		bundle := bundles[fx.ID]
		if bundle != nil {
			metrics.MarketsNormalizedTotal.Add(float64(len(bundle.Markets)))
		}
		ctx := blender.BuildFixtureContext(fx, bundle)

		pool := append(append([]models.Player{}, squads[fx.HomeTeamID]...), squads[fx.AwayTeamID]...)
		entries := make([]bonus.Entry, len(pool))
		for i, p := range pool {
			entries[i] = bonus.Entry{Player: p, Expectation: blender.PlayerExpectation(p, ctx)}
		}
		bonusPoints := bonus.ExpectedBonus(entries)

		for i, p := range pool {
			exp := entries[i].Expectation
			breakdown := aggregator.FixturePoints(p, exp, bonusPoints[i])

			row, ok := rows[p.ID]
			if !ok {
				row = &models.PredictionResult{
					Player:          p.Name,
					Team:            blender.TeamName(p.TeamID),
					Position:        p.Position,
					Price:           p.Price,
					ChanceOfPlaying: p.ChanceOfPlaying,
				}
				rows[p.ID] = row
			}
			row.Games++
			row.Expectations = append(row.Expectations, exp)
			row.Signals = mergeSignals(row.Signals, blender.Signals(p, ctx))
			row.Breakdown.Accumulate(breakdown)
		}

		for _, ph := range ctx.Placeholders {
			exp := models.MatchExpectation{
				FixtureID: fx.ID,
				Round:     fx.Round,
				Goals:     ph.Goals,
			}
			breakdown := aggregator.FixturePoints(ph.Player, exp, 0)
			placeholderRows = append(placeholderRows, models.PredictionResult{
				Player:          ph.Player.Name,
				Team:            "Unknown",
				Position:        models.PositionUnknown,
				ChanceOfPlaying: ph.Player.ChanceOfPlaying,
				Games:           1,
				Signals:         ph.Tiers,
				Expectations:    []models.MatchExpectation{exp},
				Breakdown:       breakdown,
			})
		}
	}

	// Blank rounds: a squad without a fixture in the window still gets a
	// zero-expectation row for each of its players, so the table always
	// covers the whole roster.
	for _, p := range snap.Players {
		if _, ok := rows[p.ID]; ok {
			continue
		}
		rows[p.ID] = &models.PredictionResult{
			Player:          p.Name,
			Team:            blender.TeamName(p.TeamID),
			Position:        p.Position,
			Price:           p.Price,
			ChanceOfPlaying: p.ChanceOfPlaying,
		}
	}

	results := make([]models.PredictionResult, 0, len(rows)+len(placeholderRows))
	for _, row := range rows {
		row.Points = row.Breakdown.Total()
		results = append(results, *row)
	}
	for i := range placeholderRows {
		placeholderRows[i].Points = placeholderRows[i].Breakdown.Total()
	}
	results = append(results, placeholderRows...)
	sort.Slice(results, func(i, j int) bool {
		if results[i].Points != results[j].Points {
			return results[i].Points > results[j].Points
		}
		return results[i].Player < results[j].Player
	})

	metrics.UnmatchedNamesTotal.Add(float64(matcher.UnmatchedCount()))
	metrics.RecordPredictionRun(time.Since(start).Seconds(), len(results), len(rounds))

	e.log.WithFields(logrus.Fields{
		"rounds":    rounds,
		"fixtures":  len(fixtures),
		"players":   len(rows),
		"unmatched": matcher.UnmatchedCount(),
		"duration":  time.Since(start),
	}).Info("Prediction run complete")

	return &models.PredictionRun{
		ID:      uuid.New(),
		Rounds:  rounds,
		RunAt:   start,
		Results: results,
	}, nil
}

// upcomingRounds picks the next n distinct rounds that still have
// unplayed fixtures, and every unplayed fixture within them.
func upcomingRounds(fixtures []models.Fixture, n int) ([]int, []models.Fixture) {
	seen := map[int]bool{}
	for _, fx := range fixtures {
		if !fx.Played() {
			seen[fx.Round] = true
		}
	}
	rounds := make([]int, 0, len(seen))
	for r := range seen {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)
	if len(rounds) > n {
		rounds = rounds[:n]
	}

	wanted := map[int]bool{}
	for _, r := range rounds {
		wanted[r] = true
	}
	var out []models.Fixture
	for _, fx := range fixtures {
		if !fx.Played() && wanted[fx.Round] {
			out = append(out, fx)
		}
	}
	models.SortFixturesChronologically(out)
	return rounds, out
}

// attachBundles resolves each odds bundle's team names and pairs it with
// the matching upcoming fixture.
func (e *Engine) attachBundles(bundles []*models.OddsBundle, fixtures []models.Fixture, matcher *namematch.Matcher) map[int]*models.OddsBundle {
	out := map[int]*models.OddsBundle{}
	for _, b := range bundles {
		home, errH := matcher.MatchTeam(b.HomeTeam)
		away, errA := matcher.MatchTeam(b.AwayTeam)
		if errH != nil || errA != nil {
			e.log.WithFields(logrus.Fields{
				"home": b.HomeTeam,
				"away": b.AwayTeam,
			}).Warn("Could not resolve odds bundle teams, skipping bundle")
			continue
		}
		for _, fx := range fixtures {
			if fx.HomeTeamID == home.ID && fx.AwayTeamID == away.ID {
				out[fx.ID] = b
				break
			}
		}
	}
	return out
}

func countFolded(fixtures []models.Fixture) {
	for _, fx := range fixtures {
		if fx.Played() {
			metrics.FixturesFoldedTotal.Inc()
		}
	}
}

// mergeSignals folds one fixture's signal columns into a player's row.
// The columns are per-match probabilities and rates, not additive
// tallies, so a double round keeps the strongest reading of each signal;
// the points breakdown is what accumulates across fixtures.
func mergeSignals(a, b models.SignalColumns) models.SignalColumns {
	if b.AnytimeScorerProb > a.AnytimeScorerProb {
		a.AnytimeScorerProb = b.AnytimeScorerProb
	}
	if b.TwoOrMoreProb > a.TwoOrMoreProb {
		a.TwoOrMoreProb = b.TwoOrMoreProb
	}
	if b.HatTrickProb > a.HatTrickProb {
		a.HatTrickProb = b.HatTrickProb
	}
	if b.AssistProb > a.AssistProb {
		a.AssistProb = b.AssistProb
	}
	if b.TeamGoals > a.TeamGoals {
		a.TeamGoals = b.TeamGoals
	}
	if b.TeamGoalsConceded > a.TeamGoalsConceded {
		a.TeamGoalsConceded = b.TeamGoalsConceded
	}
	return a
}
