package scoring

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yourusername/fpl-predictor/internal/models"
)

var csvHeader = []string{
	"player", "team", "position", "price", "chance_of_playing",
	"anytime_scorer_prob", "two_or_more_prob", "hat_trick_prob", "assist_prob",
	"team_goals", "team_goals_conceded",
	"expected_goals", "expected_assists", "clean_sheet_prob",
	"expected_saves", "expected_bonus", "predicted_points",
}

// WriteCSV exports the result table in the column order the dashboard
// expects, one row per player.
func WriteCSV(w io.Writer, results []models.PredictionResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range results {
		var goals, assists, cs, saves float64
		for _, e := range r.Expectations {
			goals += e.Goals
			assists += e.Assists
			cs += e.CleanSheetProb
			saves += e.Saves
		}
		row := []string{
			r.Player,
			r.Team,
			string(r.Position),
			f(r.Price),
			f(r.ChanceOfPlaying),
			f(r.Signals.AnytimeScorerProb),
			f(r.Signals.TwoOrMoreProb),
			f(r.Signals.HatTrickProb),
			f(r.Signals.AssistProb),
			f(r.Signals.TeamGoals),
			f(r.Signals.TeamGoalsConceded),
			f(goals),
			f(assists),
			f(cs),
			f(saves),
			f(r.Breakdown.Bonus),
			f(r.Points),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.Player, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
