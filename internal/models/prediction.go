package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchExpectation is the per-player, per-fixture output of the outcome
// blender: the record every downstream component consumes.
type MatchExpectation struct {
	FixtureID        int     `json:"fixture_id"`
	Round            int     `json:"round"`
	Opponent         string  `json:"opponent"`
	Home             bool    `json:"home"`
	TeamGoals        float64 `json:"team_goals"`
	Goals            float64 `json:"goals"`
	Assists          float64 `json:"assists"`
	CleanSheetProb   float64 `json:"clean_sheet_prob"`
	GoalsConceded    float64 `json:"goals_conceded"`
	Saves            float64 `json:"saves"`
	DefensiveActions float64 `json:"defensive_actions"`

	// Win/draw probabilities drive manager scoring only.
	WinProb       float64 `json:"win_prob"`
	DrawProb      float64 `json:"draw_prob"`
	UnderdogBonus bool    `json:"underdog_bonus,omitempty"`

	// Source flags record which signal won the fallback precedence.
	GoalsFromOdds   bool `json:"goals_from_odds"`
	AssistsFromOdds bool `json:"assists_from_odds"`
	SavesFromOdds   bool `json:"saves_from_odds"`
}

// SignalColumns are the per-market probability columns carried through to
// the output table so every input signal stays inspectable alongside the
// final points figure.
type SignalColumns struct {
	AnytimeScorerProb float64 `json:"anytime_scorer_prob"`
	TwoOrMoreProb     float64 `json:"two_or_more_prob"`
	HatTrickProb      float64 `json:"hat_trick_prob"`
	AssistProb        float64 `json:"assist_prob"`
	TeamGoals         float64 `json:"team_goals"`
	TeamGoalsConceded float64 `json:"team_goals_conceded"`
}

// PointsBreakdown itemises the predicted points of one player.
type PointsBreakdown struct {
	Appearance    float64 `json:"appearance"`
	Goals         float64 `json:"goals"`
	Assists       float64 `json:"assists"`
	CleanSheets   float64 `json:"clean_sheets"`
	GoalsConceded float64 `json:"goals_conceded"`
	Saves         float64 `json:"saves"`
	Defensive     float64 `json:"defensive"`
	Bonus         float64 `json:"bonus"`
	Manager       float64 `json:"manager"`
}

// Accumulate adds another fixture's breakdown term by term, for summing
// a player across the rounds of a prediction window.
func (b *PointsBreakdown) Accumulate(other PointsBreakdown) {
	b.Appearance += other.Appearance
	b.Goals += other.Goals
	b.Assists += other.Assists
	b.CleanSheets += other.CleanSheets
	b.GoalsConceded += other.GoalsConceded
	b.Saves += other.Saves
	b.Defensive += other.Defensive
	b.Bonus += other.Bonus
	b.Manager += other.Manager
}

// Total sums every term of the breakdown.
func (b PointsBreakdown) Total() float64 {
	return b.Appearance + b.Goals + b.Assists + b.CleanSheets +
		b.GoalsConceded + b.Saves + b.Defensive + b.Bonus + b.Manager
}

// PredictionResult is one row of the output table: a player's expected
// points for the requested rounds plus the signals used to compute them.
type PredictionResult struct {
	Player          string             `json:"player"`
	Team            string             `json:"team"`
	Position        Position           `json:"position"`
	Price           float64            `json:"price"`
	ChanceOfPlaying float64            `json:"chance_of_playing"`
	Games           int                `json:"games"`
	Signals         SignalColumns      `json:"signals"`
	Expectations    []MatchExpectation `json:"expectations"`
	Breakdown       PointsBreakdown    `json:"breakdown"`
	Points          float64            `json:"points"`
}

// PredictionRun ties a batch of results to one engine invocation.
type PredictionRun struct {
	ID      uuid.UUID          `json:"id" validate:"required"`
	Rounds  []int              `json:"rounds" validate:"required,min=1"`
	RunAt   time.Time          `json:"run_at" validate:"required"`
	Results []PredictionResult `json:"results"`
}
