package namematch

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/fpl-predictor/internal/models"
)

// teamAliases maps the odds site's team spellings onto roster spellings.
var teamAliases = map[string]string{
	"Nott'm Forest": "Nottingham Forest",
	"Wolves":        "Wolverhampton",
	"Spurs":         "Tottenham",
}

// playerAliases covers players the odds site lists under a name the
// roster does not carry at all.
var playerAliases = map[string]string{
	"Diogo Jota":      "Diogo Teixeira Da Silva",
	"Yegor Yarmolyuk": "Yehor Yarmoliuk",
}

// Matcher resolves scraped names against the roster. Matching is fuzzy by
// necessity: odds sites abbreviate, drop diacritics, and use nicknames.
type Matcher struct {
	players []models.Player
	teams   map[int]models.Team
	log     *logrus.Logger

	unmatched map[string]struct{}
}

func NewMatcher(players []models.Player, teams []models.Team, log *logrus.Logger) *Matcher {
	byID := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	return &Matcher{
		players:   players,
		teams:     byID,
		log:       log,
		unmatched: map[string]struct{}{},
	}
}

// MatchTeam resolves a scraped team name to a roster team, applying the
// alias table before comparing normalized names and token subsets.
func (m *Matcher) MatchTeam(name string) (models.Team, error) {
	if alias, ok := teamAliases[name]; ok {
		name = alias
	}
	want := Tokens(name)
	for _, t := range m.teams {
		have := Tokens(t.Name)
		if tokensSubset(want, have) || tokensSubset(have, want) {
			return t, nil
		}
	}
	return models.Team{}, fmt.Errorf("resolving team %q: %w", name, models.ErrUnknownTeam)
}

// MatchPlayer resolves a scraped player name to a roster player. When the
// fixture's team IDs are known the search is restricted to those two
// squads, which is what makes short nicknames safe to match. An
// unresolvable name yields a placeholder entry so the row survives into
// the output instead of vanishing.
func (m *Matcher) MatchPlayer(name string, homeTeamID, awayTeamID int) models.Player {
	lookup := name
	if alias, ok := playerAliases[name]; ok {
		lookup = alias
	}
	want := Tokens(lookup)

	inFixture := func(p models.Player) bool {
		if homeTeamID == 0 && awayTeamID == 0 {
			return true
		}
		return p.TeamID == homeTeamID || p.TeamID == awayTeamID
	}

	// Full-name token subset, either direction.
	for _, p := range m.players {
		if !inFixture(p) {
			continue
		}
		have := Tokens(p.Name)
		if tokensSubset(want, have) || tokensSubset(have, want) {
			return p
		}
	}

	// Nicknames are short and collide across the league, so they only
	// count inside the fixture's two squads.
	if homeTeamID != 0 || awayTeamID != 0 {
		for _, p := range m.players {
			if !inFixture(p) || p.Nickname == "" {
				continue
			}
			have := Tokens(p.Nickname)
			if tokensSubset(want, have) || tokensSubset(have, want) {
				return p
			}
		}
	}

	if _, seen := m.unmatched[name]; !seen {
		m.unmatched[name] = struct{}{}
		m.log.WithField("name", name).Warn("No roster match for odds outcome, using placeholder")
	}
	return models.NewPlaceholder(name)
}

// UnmatchedCount reports how many distinct names fell through to
// placeholders.
func (m *Matcher) UnmatchedCount() int {
	return len(m.unmatched)
}
