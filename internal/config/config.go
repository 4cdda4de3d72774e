// Package config provides configuration management for the FPL predictor.
package config

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Prediction PredictionConfig `mapstructure:"prediction" validate:"required"`
	Inputs     InputsConfig     `mapstructure:"inputs" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// PredictionConfig holds the engine options the core consumes.
type PredictionConfig struct {
	IncludeBonusPoints bool   `mapstructure:"include_bonus_points"`
	UseSavesFallback   bool   `mapstructure:"use_saves_fallback"`
	RoundsToPredict    int    `mapstructure:"rounds_to_predict" validate:"required,gte=1"`
	DCModel            string `mapstructure:"dc_model" validate:"required,dcmodel"`
}

// InputsConfig points at the snapshot files produced by the external
// scraper and roster fetcher.
type InputsConfig struct {
	FixturesFile      string `mapstructure:"fixtures_file" validate:"required"`
	PriorFixturesFile string `mapstructure:"prior_fixtures_file"`
	OddsFile          string `mapstructure:"odds_file"`
	RosterFile        string `mapstructure:"roster_file" validate:"required"`
	OutputCSV         string `mapstructure:"output_csv"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
