package rating

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fpl-predictor/internal/models"
)

// TeamStrength is the folded rating state of one team: an overall rating
// axis, a separate home/away axis, and per-bucket goal rates for the
// current and prior season.
type TeamStrength struct {
	TeamID  int
	Overall float64
	Home    float64
	Away    float64
	Current SeasonRecord
	Prior   SeasonRecord
}

// Tracker folds completed fixtures into per-team strength state. It never
// mutates fixtures and folding the same season twice simply counts the
// games twice, so callers fold each fixture exactly once, in
// chronological order.
type Tracker struct {
	teams     map[int]models.Team
	strengths map[int]*TeamStrength
	log       *logrus.Logger
}

// NewTracker seeds every roster team at the initial rating.
func NewTracker(teams []models.Team, log *logrus.Logger) *Tracker {
	t := &Tracker{
		teams:     make(map[int]models.Team, len(teams)),
		strengths: make(map[int]*TeamStrength, len(teams)),
		log:       log,
	}
	for _, team := range teams {
		t.teams[team.ID] = team
		t.strengths[team.ID] = &TeamStrength{
			TeamID:  team.ID,
			Overall: InitialRating,
			Home:    InitialRating,
			Away:    InitialRating,
			Current: SeasonRecord{},
			Prior:   SeasonRecord{},
		}
	}
	return t
}

// FoldSeason folds a season's completed fixtures in kickoff order.
// Unplayed fixtures are skipped. Prior-season goals land in the prior
// record; ratings carry straight through both seasons.
func (t *Tracker) FoldSeason(fixtures []models.Fixture, prior bool) {
	sorted := make([]models.Fixture, len(fixtures))
	copy(sorted, fixtures)
	models.SortFixturesChronologically(sorted)

	folded := 0
	for _, fx := range sorted {
		if !fx.Played() {
			continue
		}
		if t.foldFixture(fx, prior) {
			folded++
		}
	}
	t.log.WithFields(logrus.Fields{
		"fixtures": folded,
		"prior":    prior,
	}).Debug("Folded season into team strengths")
}

func (t *Tracker) foldFixture(fx models.Fixture, prior bool) bool {
	home, okH := t.strengths[fx.HomeTeamID]
	away, okA := t.strengths[fx.AwayTeamID]
	if !okH || !okA {
		t.log.WithFields(logrus.Fields{
			"fixture":   fx.ID,
			"home_team": fx.HomeTeamID,
			"away_team": fx.AwayTeamID,
		}).Warn("Fixture references team outside roster, skipping")
		return false
	}

	hs, as := *fx.HomeScore, *fx.AwayScore
	actual := 0.5
	switch {
	case hs > as:
		actual = 1
	case hs < as:
		actual = 0
	}
	margin := fx.GoalMargin()

	dOverall := Delta(home.Overall, away.Overall, actual, margin)
	home.Overall += dOverall
	away.Overall -= dOverall

	dVenue := Delta(home.Home, away.Away, actual, margin)
	home.Home += dVenue
	away.Away -= dVenue

	homeRec, awayRec := home.Current, away.Current
	if prior {
		homeRec, awayRec = home.Prior, away.Prior
	}
	homeRec.add(t.bucketOf(fx.AwayTeamID, prior), true, hs, as)
	awayRec.add(t.bucketOf(fx.HomeTeamID, prior), false, as, hs)
	return true
}

// bucketOf classifies a team by the league position relevant to the
// season being folded.
func (t *Tracker) bucketOf(teamID int, prior bool) models.Bucket {
	team, ok := t.teams[teamID]
	if !ok {
		return models.BucketUnknown
	}
	pos := team.LeaguePosition
	if prior {
		pos = team.PriorPosition
	}
	return models.BucketForPosition(pos)
}

// Strength returns a team's folded state.
func (t *Tracker) Strength(teamID int) (*TeamStrength, bool) {
	s, ok := t.strengths[teamID]
	return s, ok
}

// ExpectedResult is the logistic expectation of the home team winning,
// taken on the venue axis.
func (t *Tracker) ExpectedResult(homeID, awayID int) float64 {
	home, okH := t.strengths[homeID]
	away, okA := t.strengths[awayID]
	if !okH || !okA {
		return 0.5
	}
	return ExpectedScore(home.Home, away.Away)
}

// BucketOf classifies a team by its current league position.
func (t *Tracker) BucketOf(teamID int) models.Bucket {
	return t.bucketOf(teamID, false)
}

// VenueRate is a team's cross-season blended goals-per-game at the given
// venue, across all opponent buckets. The boolean reports whether any
// folded games back the rate; promoted teams with no history get none.
func (t *Tracker) VenueRate(teamID int, home, conceded bool) (float64, bool) {
	s, ok := t.strengths[teamID]
	if !ok {
		return 0, false
	}
	return blendRate(s.Current.totals(home), s.Prior.totals(home), conceded)
}

// BucketRate is like VenueRate but restricted to opponents of one
// strength bucket.
func (t *Tracker) BucketRate(teamID int, bucket models.Bucket, home, conceded bool) (float64, bool) {
	s, ok := t.strengths[teamID]
	if !ok {
		return 0, false
	}
	return blendRate(s.Current.venue(bucket, home), s.Prior.venue(bucket, home), conceded)
}

// LeagueAverageGoals is the per-team per-game scoring rate across every
// folded fixture, current season weighted like everywhere else.
func (t *Tracker) LeagueAverageGoals() float64 {
	var cur, prior venueTotals
	for _, s := range t.strengths {
		for _, home := range []bool{true, false} {
			c := s.Current.totals(home)
			p := s.Prior.totals(home)
			cur.Games += c.Games
			cur.Scored += c.Scored
			prior.Games += p.Games
			prior.Scored += p.Scored
		}
	}
	if r, ok := blendRate(cur, prior, false); ok {
		return r
	}
	return leagueAverageFallback
}
