package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/TubeWrapped/models"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Load builds the effective configuration: built-in defaults, overlaid by
// an optional YAML config file, overlaid by TUBEWRAPPED_* environment
// variables. cfgFile may be empty, in which case the default locations are
// probed.
func Load(cfgFile string) (*Config, error) {
	return LoadWithFlags(cfgFile, nil)
}

// flagBindings maps config keys to the command-line flags that override
// them.
var flagBindings = map[string]string{
	"app.log_level":    "log-level",
	"data.export_path": "input",
	"data.year":        "year",
	"data.watch":       "watch",
	"enrich.api_key":   "api-key",
	"enrich.offline":   "offline",
	"enrich.strict":    "strict",
	"output.format":    "output",
	"output.file":      "file",
}

// LoadWithFlags is Load with a command-line flag layer on top. Only flags
// the user actually set are bound, so flag defaults never shadow file or
// environment values.
func LoadWithFlags(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("app.log_level", defaults.App.LogLevel)
	v.SetDefault("app.log_file", defaults.App.LogFile)
	v.SetDefault("app.timezone", defaults.App.Timezone)
	v.SetDefault("data.export_path", defaults.Data.ExportPath)
	v.SetDefault("data.year", defaults.Data.Year)
	v.SetDefault("data.watch", defaults.Data.Watch)
	v.SetDefault("enrich.api_key", defaults.Enrich.APIKey)
	v.SetDefault("enrich.batch_size", defaults.Enrich.BatchSize)
	v.SetDefault("enrich.strict", defaults.Enrich.Strict)
	v.SetDefault("enrich.offline", defaults.Enrich.Offline)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.dir", defaults.Cache.Dir)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.file", defaults.Output.File)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(models.ConfigFileName, filepath.Ext(models.ConfigFileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(homeDir)
		}
	}

	v.SetEnvPrefix("TUBEWRAPPED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagBindings {
			flag := flags.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind %s flag: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A probed-but-absent config file is fine; an explicitly named one
		// that cannot be read is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The API key commonly lives in the environment rather than a file.
	if cfg.Enrich.APIKey == "" {
		cfg.Enrich.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
