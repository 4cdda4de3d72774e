package models

import (
	"sort"
	"time"
)

// Statistic identifiers carried on fixture event lists.
const (
	StatGoalsScored = "goals_scored"
	StatAssists     = "assists"
	StatSaves       = "saves"
	StatBPS         = "bps"
)

// StatPair attributes a statistic value to a player.
type StatPair struct {
	PlayerID int `json:"player_id" validate:"required,gt=0"`
	Value    int `json:"value"`
}

// FixtureStat is one per-statistic event list of a fixture, split by side.
type FixtureStat struct {
	Identifier string     `json:"identifier" validate:"required"`
	Home       []StatPair `json:"home"`
	Away       []StatPair `json:"away"`
}

// Fixture represents a single scheduled or completed match.
type Fixture struct {
	ID         int           `json:"id" validate:"required,gt=0"`
	Round      int           `json:"round" validate:"required,gte=1"`
	Kickoff    time.Time     `json:"kickoff"`
	HomeTeamID int           `json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID int           `json:"away_team_id" validate:"required,gt=0"`
	HomeScore  *int          `json:"home_score"`
	AwayScore  *int          `json:"away_score"`
	Finished   bool          `json:"finished"`
	Stats      []FixtureStat `json:"stats"`
}

// Played reports whether the fixture has a final score.
func (f *Fixture) Played() bool {
	return f.Finished && f.HomeScore != nil && f.AwayScore != nil
}

// Stat returns the event list for the given identifier, or nil.
func (f *Fixture) Stat(identifier string) *FixtureStat {
	for i := range f.Stats {
		if f.Stats[i].Identifier == identifier {
			return &f.Stats[i]
		}
	}
	return nil
}

// GoalMargin returns the absolute goal difference of a played fixture.
func (f *Fixture) GoalMargin() int {
	if !f.Played() {
		return 0
	}
	d := *f.HomeScore - *f.AwayScore
	if d < 0 {
		return -d
	}
	return d
}

// SortFixturesChronologically orders fixtures by kickoff time, falling back
// to round then ID for fixtures without timestamps. Rating folds depend on
// this ordering.
func SortFixturesChronologically(fixtures []Fixture) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		a, b := &fixtures[i], &fixtures[j]
		if !a.Kickoff.IsZero() && !b.Kickoff.IsZero() && !a.Kickoff.Equal(b.Kickoff) {
			return a.Kickoff.Before(b.Kickoff)
		}
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		return a.ID < b.ID
	})
}
