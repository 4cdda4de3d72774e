// Package config provides configuration management for the FPL predictor.
package config

import (
	"os"
	"testing"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	expansionConfigPath   = "testdata/expansion_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
	expectedNoErrorMsg    = "expected no error, got %v"
	expectedNonNilConfig  = "expected non-nil config"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != "fpl-predictor" {
		t.Errorf("expected app name 'fpl-predictor', got '%s'", cfg.App.Name)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("expected environment 'development', got '%s'", cfg.App.Environment)
	}

	if cfg.Prediction.RoundsToPredict != 3 {
		t.Errorf("expected 3 rounds to predict, got %d", cfg.Prediction.RoundsToPredict)
	}

	if !cfg.Prediction.IncludeBonusPoints {
		t.Error("expected include_bonus_points to be true")
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentExpansion tests ${VAR} expansion in the YAML file
func TestLoadConfigEnvironmentExpansion(t *testing.T) {
	os.Setenv("TEST_ODDS_FILE", "snapshots/odds.json")
	defer os.Unsetenv("TEST_ODDS_FILE")

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Inputs.OddsFile != "snapshots/odds.json" {
		t.Errorf("expected odds file from environment, got '%s'", cfg.Inputs.OddsFile)
	}
}

// TestLoadWithDefaults tests the defaulting path when no file exists
func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got '%s'", cfg.App.LogLevel)
	}

	if cfg.Prediction.RoundsToPredict != 1 {
		t.Errorf("expected default rounds_to_predict 1, got %d", cfg.Prediction.RoundsToPredict)
	}

	if cfg.Prediction.DCModel != "poisson" {
		t.Errorf("expected default dc_model 'poisson', got '%s'", cfg.Prediction.DCModel)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateRejectsBadValues tests the custom validators
func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "invalid environment",
			mutate: func(c *Config) { c.App.Environment = "invalid" },
		},
		{
			name:   "invalid log level",
			mutate: func(c *Config) { c.App.LogLevel = "verbose" },
		},
		{
			name:   "invalid dc model",
			mutate: func(c *Config) { c.Prediction.DCModel = "binomial" },
		},
		{
			name:   "zero rounds",
			mutate: func(c *Config) { c.Prediction.RoundsToPredict = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := *cfg
			tt.mutate(&bad)
			if err := Validate(&bad); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
