package models

import "github.com/shopspring/decimal"

// MarketType identifies a bookmaker market. The names follow the labels the
// odds scraper collects them under.
type MarketType string

// Markets consumed by the prediction engine.
const (
	MarketWin             MarketType = "Win Market"
	MarketTotalHomeGoals  MarketType = "Total Home Goals"
	MarketTotalAwayGoals  MarketType = "Total Away Goals"
	MarketPlayerAssists   MarketType = "Player Assists"
	MarketGoalkeeperSaves MarketType = "Goalkeeper Saves"
	MarketAnytimeScorer   MarketType = "Anytime Goalscorer"
	MarketTwoOrMoreGoals  MarketType = "To Score 2 Or More Goals"
	MarketHatTrick        MarketType = "To Score A Hat-Trick"
)

// OddsMarket maps outcome labels to the decimal odds quotes collected from
// multiple bookmakers for one market of one match.
type OddsMarket struct {
	Type     MarketType
	Outcomes map[string][]decimal.Decimal
}

// MinReliableQuotes is the minimum number of independent quotes below which
// an outcome is considered statistically thin. Thin outcomes are still
// converted; discarding them is the caller's policy decision.
const MinReliableQuotes = 3

// Thin reports whether the outcome's quote set is too small to be reliable.
func (m *OddsMarket) Thin(outcome string) bool {
	return len(m.Outcomes[outcome]) < MinReliableQuotes
}

// OddsBundle holds every market scraped for one match, keyed by market type.
type OddsBundle struct {
	HomeTeam string
	AwayTeam string
	Markets  map[MarketType]*OddsMarket
}

// Market returns the named market, or nil when it was not scraped.
func (b *OddsBundle) Market(t MarketType) *OddsMarket {
	if b == nil {
		return nil
	}
	return b.Markets[t]
}
