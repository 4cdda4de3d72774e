package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/fpl-predictor/internal/config"
	"github.com/yourusername/fpl-predictor/internal/dataset"
	"github.com/yourusername/fpl-predictor/internal/engine"
	"github.com/yourusername/fpl-predictor/internal/health"
	"github.com/yourusername/fpl-predictor/internal/logger"
	"github.com/yourusername/fpl-predictor/internal/metrics"
	"github.com/yourusername/fpl-predictor/internal/models"
	"github.com/yourusername/fpl-predictor/internal/scoring"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	rounds     int
	outputCSV  string
	topN       int

	cfg *config.Config
	lg  *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVarP(&rounds, "rounds", "r", 0, "Override rounds to predict")
	rootCmd.Flags().StringVarP(&outputCSV, "output", "o", "", "Override CSV output path")
	rootCmd.Flags().IntVarP(&topN, "top", "t", 30, "Number of rows to print")
}

var rootCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict fantasy points for upcoming rounds",
	Long:  `Runs the full prediction pipeline over the configured snapshot files and prints the top players by expected points.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		lg = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrediction()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runPrediction() error {
	metrics.InitRegistry()

	var ops *health.Server
	if cfg.Metrics.Enabled {
		ops = health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Port:        strconv.Itoa(cfg.Metrics.Port),
			MetricsPath: cfg.Metrics.Path,
			Metrics:     metrics.Handler(),
			Logger:      lg,
		})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := ops.Start(ctx); err != nil {
			return fmt.Errorf("starting ops server: %w", err)
		}
	}

	loader := dataset.NewLoader(lg)
	snap, err := loader.Load(cfg.Inputs)
	if err != nil {
		return err
	}
	metrics.QuotesDroppedTotal.Add(float64(loader.DroppedQuotes))
	if ops != nil {
		ops.SetReady(true)
	}

	opts := engine.Options{
		IncludeBonusPoints: cfg.Prediction.IncludeBonusPoints,
		UseSavesFallback:   cfg.Prediction.UseSavesFallback,
		RoundsToPredict:    cfg.Prediction.RoundsToPredict,
		DCModel:            scoring.DCModel(cfg.Prediction.DCModel),
	}
	if rounds > 0 {
		opts.RoundsToPredict = rounds
	}

	run, err := engine.New(opts, lg).Run(snap)
	if err != nil {
		return err
	}

	printTable(run, topN)

	csvPath := cfg.Inputs.OutputCSV
	if outputCSV != "" {
		csvPath = outputCSV
	}
	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		if err := scoring.WriteCSV(f, run.Results); err != nil {
			return err
		}
		lg.WithField("path", csvPath).Info("Wrote prediction table")
	}
	return nil
}

func printTable(run *models.PredictionRun, n int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "PLAYER\tTEAM\tPOS\tPRICE\tPOINTS\n")
	for i, r := range run.Results {
		if i >= n {
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.2f\n", r.Player, r.Team, r.Position, r.Price, r.Points)
	}
	w.Flush()
}
