// Package dataset loads the input snapshots the external collaborators
// produce: fixture lists, the scraped odds bundle, and roster metadata.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fpl-predictor/internal/config"
	"github.com/yourusername/fpl-predictor/internal/models"
	"github.com/yourusername/fpl-predictor/internal/odds"
)

// Snapshot is everything one prediction run consumes.
type Snapshot struct {
	Teams         []models.Team
	Players       []models.Player
	Fixtures      []models.Fixture
	PriorFixtures []models.Fixture
	Odds          []*models.OddsBundle
}

// Loader reads and validates snapshot files.
type Loader struct {
	validate *validator.Validate
	log      *logrus.Logger

	// DroppedQuotes counts quotes that failed to parse across all loads.
	DroppedQuotes int
	// StatDrift counts players whose fixture event lists outrun their
	// roster season totals, across all loads.
	StatDrift int
}

func NewLoader(log *logrus.Logger) *Loader {
	return &Loader{validate: validator.New(), log: log}
}

// Load assembles a full snapshot from the configured input files. The
// prior-fixtures and odds files are optional; the engine degrades to its
// fallbacks without them.
func (l *Loader) Load(inputs config.InputsConfig) (*Snapshot, error) {
	snap := &Snapshot{}

	var err error
	snap.Teams, snap.Players, err = l.LoadRoster(inputs.RosterFile)
	if err != nil {
		return nil, err
	}
	snap.Fixtures, err = l.LoadFixtures(inputs.FixturesFile)
	if err != nil {
		return nil, err
	}
	if inputs.PriorFixturesFile != "" {
		snap.PriorFixtures, err = l.LoadFixtures(inputs.PriorFixturesFile)
		if err != nil {
			return nil, err
		}
	}
	if inputs.OddsFile != "" {
		snap.Odds, err = l.LoadOdds(inputs.OddsFile)
		if err != nil {
			return nil, err
		}
	}
	l.reconcileFixtureStats(snap.Fixtures, snap.Players)
	return snap, nil
}

// reconcileFixtureStats cross-checks the fixtures' per-statistic event
// lists against the roster's season totals. The two feeds are scraped
// independently, so a player whose event sums exceed the roster figures
// means one of them is stale; that is worth a warning before the stale
// numbers feed the share models.
func (l *Loader) reconcileFixtureStats(fixtures []models.Fixture, players []models.Player) {
	type eventSums struct {
		goals, assists, saves, bps int
	}
	byPlayer := map[int]*eventSums{}
	tally := func(st *models.FixtureStat, pick func(*eventSums) *int) {
		if st == nil {
			return
		}
		for _, side := range [][]models.StatPair{st.Home, st.Away} {
			for _, pair := range side {
				s := byPlayer[pair.PlayerID]
				if s == nil {
					s = &eventSums{}
					byPlayer[pair.PlayerID] = s
				}
				*pick(s) += pair.Value
			}
		}
	}
	for i := range fixtures {
		fx := &fixtures[i]
		if !fx.Played() {
			continue
		}
		tally(fx.Stat(models.StatGoalsScored), func(s *eventSums) *int { return &s.goals })
		tally(fx.Stat(models.StatAssists), func(s *eventSums) *int { return &s.assists })
		tally(fx.Stat(models.StatSaves), func(s *eventSums) *int { return &s.saves })
		tally(fx.Stat(models.StatBPS), func(s *eventSums) *int { return &s.bps })
	}

	for _, p := range players {
		s := byPlayer[p.ID]
		if s == nil {
			continue
		}
		if s.goals > p.Current.Goals || s.assists > p.Current.Assists ||
			s.saves > p.Current.Saves || s.bps > p.Current.BPS {
			l.StatDrift++
			l.log.WithFields(logrus.Fields{
				"player":        p.Name,
				"event_goals":   s.goals,
				"event_assists": s.assists,
				"event_saves":   s.saves,
				"roster_goals":  p.Current.Goals,
			}).Warn("Fixture event lists outrun roster season totals")
		}
	}
}

type rosterFile struct {
	Teams   []models.Team   `json:"teams" validate:"required,min=1,dive"`
	Players []models.Player `json:"players" validate:"required,min=1,dive"`
}

// LoadRoster reads team and player metadata.
func (l *Loader) LoadRoster(path string) ([]models.Team, []models.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading roster file: %w", err)
	}
	var rf rosterFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, nil, fmt.Errorf("parsing roster file: %w", err)
	}
	if err := l.validate.Struct(&rf); err != nil {
		return nil, nil, fmt.Errorf("validating roster file: %w", err)
	}
	for _, p := range rf.Players {
		if !p.Position.Valid() {
			return nil, nil, fmt.Errorf("player %q has position %q: %w", p.Name, p.Position, models.ErrUnknownPosition)
		}
	}
	return rf.Teams, rf.Players, nil
}

// LoadFixtures reads one season's fixture list.
func (l *Loader) LoadFixtures(path string) ([]models.Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures file: %w", err)
	}
	var fixtures []models.Fixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parsing fixtures file: %w", err)
	}
	return fixtures, nil
}

// rawOddsFile mirrors the scraper's output: match title -> market name ->
// outcome label -> quote list. Quotes arrive as strings ("5/2", "3.50")
// or bare numbers depending on the scrape.
type rawOddsFile map[string]map[string]map[string][]json.RawMessage

// LoadOdds reads the scraped odds bundle. A quote that fails to parse is
// dropped from its averaging set; the rest of the market survives.
func (l *Loader) LoadOdds(path string) ([]*models.OddsBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading odds file: %w", err)
	}
	var raw rawOddsFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing odds file: %w", err)
	}

	bundles := make([]*models.OddsBundle, 0, len(raw))
	for title, markets := range raw {
		home, away, ok := splitMatchTitle(title)
		if !ok {
			l.log.WithField("title", title).Warn("Unrecognized match title in odds file, skipping")
			continue
		}
		bundle := &models.OddsBundle{
			HomeTeam: home,
			AwayTeam: away,
			Markets:  map[models.MarketType]*models.OddsMarket{},
		}
		for marketName, outcomes := range markets {
			m := &models.OddsMarket{
				Type:     models.MarketType(marketName),
				Outcomes: map[string][]decimal.Decimal{},
			}
			for label, quotes := range outcomes {
				parsed := make([]decimal.Decimal, 0, len(quotes))
				for _, q := range quotes {
					dec, err := parseRawQuote(q)
					if err != nil {
						l.DroppedQuotes++
						continue
					}
					parsed = append(parsed, dec)
				}
				if len(parsed) > 0 {
					m.Outcomes[label] = parsed
				}
			}
			for label := range m.Outcomes {
				if m.Thin(label) {
					l.log.WithFields(logrus.Fields{
						"market":  marketName,
						"outcome": label,
						"quotes":  len(m.Outcomes[label]),
					}).Debug("Outcome has fewer quotes than the reliable consensus minimum")
				}
			}
			if len(m.Outcomes) > 0 {
				bundle.Markets[m.Type] = m
			}
		}
		bundles = append(bundles, bundle)
	}
	return bundles, nil
}

func parseRawQuote(raw json.RawMessage) (decimal.Decimal, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return odds.ParseQuote(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f <= 1 {
			return decimal.Zero, models.ErrMalformedQuote
		}
		return decimal.NewFromFloat(f), nil
	}
	return decimal.Zero, models.ErrMalformedQuote
}

// splitMatchTitle parses the scraper's "Home v Away" titles.
func splitMatchTitle(title string) (home, away string, ok bool) {
	for _, sep := range []string{" v ", " vs ", " V ", " - "} {
		if h, a, found := strings.Cut(title, sep); found {
			return strings.TrimSpace(h), strings.TrimSpace(a), true
		}
	}
	return "", "", false
}
