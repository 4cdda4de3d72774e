// Package main provides a CLI tool that prints the folded team strength
// table.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/yourusername/fpl-predictor/internal/config"
	"github.com/yourusername/fpl-predictor/internal/dataset"
	"github.com/yourusername/fpl-predictor/internal/logger"
	"github.com/yourusername/fpl-predictor/internal/rating"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
	)
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	lg := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	loader := dataset.NewLoader(lg)
	snap, err := loader.Load(cfg.Inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading snapshot: %v\n", err)
		os.Exit(1)
	}

	tracker := rating.NewTracker(snap.Teams, lg)
	tracker.FoldSeason(snap.PriorFixtures, true)
	tracker.FoldSeason(snap.Fixtures, false)

	type row struct {
		name    string
		overall float64
		home    float64
		away    float64
	}
	rows := make([]row, 0, len(snap.Teams))
	for _, team := range snap.Teams {
		s, ok := tracker.Strength(team.ID)
		if !ok {
			continue
		}
		rows = append(rows, row{team.Name, s.Overall, s.Home, s.Away})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].overall > rows[j].overall })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TEAM\tOVERALL\tHOME\tAWAY")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\n", r.name, r.overall, r.home, r.away)
	}
	w.Flush()
}
