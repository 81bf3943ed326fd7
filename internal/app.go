package internal

import (
	"context"
	"fmt"

	"github.com/penwyp/TubeWrapped/cache"
	"github.com/penwyp/TubeWrapped/calculations"
	"github.com/penwyp/TubeWrapped/config"
	"github.com/penwyp/TubeWrapped/enrich"
	"github.com/penwyp/TubeWrapped/fileio"
	"github.com/penwyp/TubeWrapped/logging"
	"github.com/penwyp/TubeWrapped/models"
)

// App wires the pipeline stages together: export reading, parsing,
// enrichment and analysis. The metadata cache and source are created once
// and shared across runs (watch mode re-runs the pipeline on the same App).
type App struct {
	config *config.Config
	cache  *cache.MetadataCache
	source enrich.MetadataSource
	stage  models.Stage
}

// RunResult is the terminal state of one pipeline run.
type RunResult struct {
	Stats         *models.WrappedStats
	Stage         models.Stage
	Year          int
	ParsedCount   int
	EnrichedCount int
}

// NewApp creates the application and its long-lived resources. The cache
// sweep runs here, once per process start.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	app := &App{config: cfg, stage: models.StageUpload}

	if cfg.Cache.Enabled {
		metaCache, err := cache.NewMetadataCache(cfg.Cache.Dir)
		if err != nil {
			// The cache is an optimization; a broken one must not stop a run.
			logging.LogWarnf("metadata cache unavailable, continuing without it: %v", err)
		} else {
			app.cache = metaCache
			metaCache.Sweep()
		}
	}

	if !cfg.Enrich.Offline && cfg.Enrich.APIKey != "" {
		source, err := enrich.NewYouTubeSource(ctx, cfg.Enrich.APIKey)
		if err != nil {
			logging.LogWarnf("metadata source unavailable, running in fallback mode: %v", err)
		} else {
			app.source = source
		}
	}

	return app, nil
}

// HasMetadataSource reports whether network enrichment will happen.
func (a *App) HasMetadataSource() bool {
	return a.source != nil
}

// Stage reports where the current (or last) pipeline run got to.
func (a *App) Stage() models.Stage {
	return a.stage
}

func (a *App) setStage(stage models.Stage) {
	a.stage = stage
	logging.LogDebugf("pipeline stage: %s", stage)
}

// Close releases the app's resources.
func (a *App) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logging.LogWarnf("failed to close metadata cache: %v", err)
		}
	}
}

// Run executes one full pipeline pass over the configured export file.
// onProgress may be nil. The returned error is terminal: either the input
// is unusable or the metadata quota is exhausted.
func (a *App) Run(ctx context.Context, onProgress enrich.ProgressFunc) (*RunResult, error) {
	a.setStage(models.StageParsing)
	logging.LogInfof("reading export file %s", a.config.Data.ExportPath)
	records, err := fileio.ReadExportFile(a.config.Data.ExportPath)
	if err != nil {
		return nil, err
	}

	year := a.config.Data.Year
	if year == 0 {
		year = fileio.DetectYear(records)
		logging.LogInfof("detected target year %d", year)
	}

	parsed := fileio.Parse(records, year)
	if len(parsed) == 0 {
		return nil, &enrich.NoDataError{Year: year}
	}
	logging.LogInfof("parsed %d watch events from %d raw records", len(parsed), len(records))

	a.setStage(models.StageEnriching)
	enricher := enrich.NewEnricherWithBatchSize(a.source, a.cache, a.config.Enrich.BatchSize)
	var enriched []models.EnrichedVideo
	if a.config.Enrich.Strict && a.source != nil {
		enriched, err = enricher.Enrich(ctx, parsed, onProgress)
	} else {
		enriched, err = enricher.EnrichOrFallback(ctx, parsed, onProgress)
	}
	if err != nil {
		return nil, err
	}
	logging.LogInfof("enriched %d watch events", len(enriched))

	a.setStage(models.StageAnalyzing)
	analyzer := calculations.NewAnalyzer(a.config.Location())
	stats := analyzer.Analyze(enriched, year)

	a.setStage(models.StageReady)
	return &RunResult{
		Stats:         &stats,
		Stage:         models.StageReady,
		Year:          year,
		ParsedCount:   len(parsed),
		EnrichedCount: len(enriched),
	}, nil
}
