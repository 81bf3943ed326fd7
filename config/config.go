package config

import (
	"fmt"
	"time"

	"github.com/penwyp/TubeWrapped/models"
)

// Config represents the complete application configuration
type Config struct {
	// Application
	App AppConfig `yaml:"app" mapstructure:"app"`

	// Data source
	Data DataConfig `yaml:"data" mapstructure:"data"`

	// Metadata enrichment
	Enrich EnrichConfig `yaml:"enrich" mapstructure:"enrich"`

	// Metadata cache
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// Output
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// AppConfig contains general application settings
type AppConfig struct {
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	LogFile  string `yaml:"log_file" mapstructure:"log_file"`
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// DataConfig contains data source settings
type DataConfig struct {
	ExportPath string `yaml:"export_path" mapstructure:"export_path"`
	Year       int    `yaml:"year" mapstructure:"year"` // 0 = auto-detect
	Watch      bool   `yaml:"watch" mapstructure:"watch"`
}

// EnrichConfig contains metadata enrichment settings
type EnrichConfig struct {
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BatchSize int    `yaml:"batch_size" mapstructure:"batch_size"`
	Strict    bool   `yaml:"strict" mapstructure:"strict"`
	Offline   bool   `yaml:"offline" mapstructure:"offline"`
}

// CacheConfig contains metadata cache settings
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

// OutputConfig contains result output settings
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // summary, json, csv
	File   string `yaml:"file" mapstructure:"file"`     // empty = stdout
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			LogLevel: "info",
		},
		Data: DataConfig{
			ExportPath: models.DefaultExportFileName,
		},
		Enrich: EnrichConfig{
			BatchSize: models.MetadataBatchSize,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Output: OutputConfig{
			Format: "summary",
		},
	}
}

// Location resolves the configured timezone, defaulting to the system's
// local zone when unset or invalid.
func (c *Config) Location() *time.Location {
	if c.App.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Validate checks the configuration for values the pipeline cannot work
// with.
func (c *Config) Validate() error {
	if c.Data.ExportPath == "" {
		return fmt.Errorf("data.export_path is required")
	}
	if c.Enrich.BatchSize <= 0 || c.Enrich.BatchSize > models.MetadataBatchSize {
		return fmt.Errorf("enrich.batch_size must be between 1 and %d", models.MetadataBatchSize)
	}
	switch c.Output.Format {
	case "summary", "json", "csv":
	default:
		return fmt.Errorf("output.format must be summary, json or csv, got %q", c.Output.Format)
	}
	if c.App.Timezone != "" {
		if _, err := time.LoadLocation(c.App.Timezone); err != nil {
			return fmt.Errorf("app.timezone is invalid: %w", err)
		}
	}
	return nil
}
