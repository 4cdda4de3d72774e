package blend

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fpl-predictor/internal/models"
	"github.com/yourusername/fpl-predictor/internal/namematch"
	"github.com/yourusername/fpl-predictor/internal/rating"
)

// AssistsPerGoal is the league-wide empirical link between goals and
// assists, used whenever assist-specific odds are absent.
const AssistsPerGoal = 0.70

// maxMissedGamesBoost caps the share inflation applied for games a player
// missed; without the cap a one-appearance player's share explodes.
const maxMissedGamesBoost = 5.0

// unreliableShareGames is the sample size below which the share-of-team
// signal gets blended with the raw per-90 rate.
const unreliableShareGames = 5

// Blender combines bookmaker probabilities, team-strength rates, and
// player history into per-player per-fixture expectations.
type Blender struct {
	tracker *rating.Tracker
	matcher *namematch.Matcher
	teams   map[int]models.Team
	squads  map[int][]models.Player
	log     *logrus.Logger

	useSavesFallback bool
}

func NewBlender(tracker *rating.Tracker, matcher *namematch.Matcher, teams []models.Team, players []models.Player, useSavesFallback bool, log *logrus.Logger) *Blender {
	byID := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	squads := make(map[int][]models.Player)
	for _, p := range players {
		squads[p.TeamID] = append(squads[p.TeamID], p)
	}
	return &Blender{
		tracker:          tracker,
		matcher:          matcher,
		teams:            byID,
		squads:           squads,
		log:              log,
		useSavesFallback: useSavesFallback,
	}
}

// TeamName resolves a team ID for output rows; placeholders carry team 0.
func (b *Blender) TeamName(teamID int) string {
	if t, ok := b.teams[teamID]; ok {
		return t.Name
	}
	return "Unknown"
}

// teamSeasonTotals sums a squad's current-season goals, assists and games.
// Team games is the deepest sample any squad member has, which survives
// mid-season transfers in and out.
func (b *Blender) teamSeasonTotals(teamID int) (goals, assists, games int) {
	for _, p := range b.squads[teamID] {
		goals += p.Current.Goals
		assists += p.Current.Assists
		if p.Current.Games > games {
			games = p.Current.Games
		}
	}
	return goals, assists, games
}

// modelTeamGoals is the team-strength estimate of a side's goals: the mean
// of its own venue scoring rate, the opponent's venue conceding rate, and
// the two bucket-specific rates, over whichever of the four have data.
func (b *Blender) modelTeamGoals(teamID, opponentID int, home bool) float64 {
	oppBucket := b.tracker.BucketOf(opponentID)
	ownBucket := b.tracker.BucketOf(teamID)

	sum, n := 0.0, 0
	if r, ok := b.tracker.VenueRate(teamID, home, false); ok {
		sum, n = sum+r, n+1
	}
	if r, ok := b.tracker.VenueRate(opponentID, !home, true); ok {
		sum, n = sum+r, n+1
	}
	if r, ok := b.tracker.BucketRate(teamID, oppBucket, home, false); ok {
		sum, n = sum+r, n+1
	}
	if r, ok := b.tracker.BucketRate(opponentID, ownBucket, !home, true); ok {
		sum, n = sum+r, n+1
	}
	if n == 0 {
		return b.tracker.LeagueAverageGoals()
	}
	return sum / float64(n)
}
