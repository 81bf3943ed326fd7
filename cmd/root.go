package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/penwyp/TubeWrapped/config"
	"github.com/penwyp/TubeWrapped/enrich"
	"github.com/penwyp/TubeWrapped/fileio"
	"github.com/penwyp/TubeWrapped/internal"
	"github.com/penwyp/TubeWrapped/logging"
	"github.com/penwyp/TubeWrapped/ui"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	debug    bool

	// Run flags
	inputPath    string
	targetYear   int
	offline      bool
	strict       bool
	watch        bool
	outputFormat string
	outputFile   string
	apiKey       string
	noProgress   bool
)

var rootCmd = &cobra.Command{
	Use:   "tubewrapped",
	Short: "Year-in-review stats from a YouTube watch history export",
	Long: `tubewrapped turns a Google Takeout watch-history.json export into a
year-in-review report: top channels and categories, watching heatmap,
binge sessions, late-night habits, Shorts stats and more.

Video metadata (durations, categories) is fetched from the YouTube Data
API when an API key is available, with a local cache so repeat runs are
cheap. Without a key the report still works from the export alone.

Examples:
  tubewrapped -i watch-history.json                 # summary for the detected year
  tubewrapped -i watch-history.json --year 2024     # pin the year
  tubewrapped -i watch-history.json -o json -f out.json
  tubewrapped -i watch-history.json --watch         # re-run when the file changes`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// runRoot is assigned to rootCmd.RunE in init to avoid an initialization
// cycle between rootCmd and loadConfiguration.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if debug {
		cfg.App.LogLevel = "debug"
	}
	logging.InitLogger(cfg.App.LogLevel, cfg.App.LogFile, debug)

	ctx := cmd.Context()
	app, err := internal.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer app.Close()

	if err := runOnce(ctx, app, cfg); err != nil {
		return err
	}

	if cfg.Data.Watch {
		return watchLoop(ctx, app, cfg)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	// A .env file is the usual home for YOUTUBE_API_KEY during development.
	_ = godotenv.Load()

	rootCmd.RunE = runRoot
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tubewrapped.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the watch-history.json export")
	rootCmd.Flags().IntVar(&targetYear, "year", 0, "target year (default: most common year in the export)")
	rootCmd.Flags().BoolVar(&offline, "offline", false, "skip metadata fetching even if an API key is set")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "drop watches whose metadata cannot be resolved")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the report when the export file changes")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format (summary, json, csv)")
	rootCmd.Flags().StringVarP(&outputFile, "file", "f", "", "write output to a file instead of stdout")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "YouTube Data API key (overrides YOUTUBE_API_KEY)")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the enrichment progress bar")
}

func loadConfiguration() (*config.Config, error) {
	cfg, err := config.LoadWithFlags(cfgFile, rootCmd.Flags())
	if err != nil {
		return nil, err
	}
	applyRunFlags(cfg)
	return cfg, cfg.Validate()
}

func applyRunFlags(cfg *config.Config) {
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	if inputPath != "" {
		cfg.Data.ExportPath = inputPath
	}
	if targetYear != 0 {
		cfg.Data.Year = targetYear
	}
	if offline {
		cfg.Enrich.Offline = true
	}
	if strict {
		cfg.Enrich.Strict = true
	}
	if watch {
		cfg.Data.Watch = true
	}
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if outputFile != "" {
		cfg.Output.File = outputFile
	}
	if apiKey != "" {
		cfg.Enrich.APIKey = apiKey
	}
}

// runOnce executes a single pipeline pass and writes the report.
func runOnce(ctx context.Context, app *internal.App, cfg *config.Config) error {
	var onProgress enrich.ProgressFunc
	finish := func() {}
	if app.HasMetadataSource() && !noProgress && cfg.Output.Format == "summary" {
		onProgress, finish = ui.StartEnrichProgress()
	}

	result, err := app.Run(ctx, onProgress)
	finish()
	if err != nil {
		return describeRunError(err)
	}

	return internal.WriteStats(result.Stats, cfg.Output.Format, cfg.Output.File)
}

// describeRunError turns known pipeline failures into actionable messages.
func describeRunError(err error) error {
	var noData *enrich.NoDataError
	if errors.As(err, &noData) {
		return err
	}
	if errors.Is(err, enrich.ErrQuotaExceeded) {
		return fmt.Errorf("YouTube API quota exceeded - try again later, use --offline, or wait for the daily quota reset: %w", err)
	}
	return err
}

// watchLoop keeps the process alive and re-runs the report whenever the
// export file changes on disk.
func watchLoop(ctx context.Context, app *internal.App, cfg *config.Config) error {
	watcher, err := fileio.NewExportWatcher(cfg.Data.ExportPath)
	if err != nil {
		return fmt.Errorf("failed to watch export file: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Watching %s for changes, press Ctrl+C to stop\n", cfg.Data.ExportPath)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			logging.LogWarnf("watch error: %v", err)
		case _, ok := <-watcher.Changes():
			if !ok {
				return nil
			}
			logging.LogInfof("export file changed, re-running analysis")
			if err := runOnce(ctx, app, cfg); err != nil {
				// Keep watching; a half-written export will settle.
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
