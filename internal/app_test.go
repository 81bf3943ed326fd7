package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/TubeWrapped/config"
	"github.com/penwyp/TubeWrapped/enrich"
	"github.com/penwyp/TubeWrapped/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `[
  {
    "header": "YouTube",
    "title": "Watched Go Concurrency Patterns",
    "titleUrl": "https://www.youtube.com/watch?v=f6kdp27TYZs",
    "subtitles": [{"name": "Google Developers", "url": "https://www.youtube.com/channel/abc"}],
    "time": "2024-03-15T20:30:00.000Z",
    "products": ["YouTube"]
  },
  {
    "header": "YouTube",
    "title": "Watched Go Concurrency Patterns",
    "titleUrl": "https://www.youtube.com/watch?v=f6kdp27TYZs",
    "subtitles": [{"name": "Google Developers", "url": "https://www.youtube.com/channel/abc"}],
    "time": "2024-03-16T21:00:00.000Z",
    "products": ["YouTube"]
  },
  {
    "header": "YouTube",
    "title": "Searched for golang generics",
    "titleUrl": "https://www.youtube.com/results?search_query=golang+generics",
    "time": "2024-03-16T21:05:00.000Z",
    "products": ["YouTube"]
  }
]`

func writeSampleExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watch-history.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0644))
	return path
}

func offlineConfig(exportPath string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Data.ExportPath = exportPath
	cfg.Enrich.Offline = true
	cfg.Cache.Enabled = false
	return cfg
}

func TestNewAppRequiresConfig(t *testing.T) {
	_, err := NewApp(context.Background(), nil)
	assert.Error(t, err)
}

func TestAppRunOffline(t *testing.T) {
	cfg := offlineConfig(writeSampleExport(t))
	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.False(t, app.HasMetadataSource())

	result, err := app.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2024, result.Year)
	assert.Equal(t, 2, result.ParsedCount)
	assert.Equal(t, 2, result.EnrichedCount)
	assert.Equal(t, 2, result.Stats.TotalVideos)
	assert.Equal(t, "Google Developers", result.Stats.TopChannels[0].Name)
	assert.Equal(t, models.StageReady, app.Stage())
}

func TestAppRunExplicitYear(t *testing.T) {
	cfg := offlineConfig(writeSampleExport(t))
	cfg.Data.Year = 2023

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	_, err = app.Run(context.Background(), nil)
	var noData *enrich.NoDataError
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, 2023, noData.Year)
}

func TestAppRunMissingExport(t *testing.T) {
	cfg := offlineConfig(filepath.Join(t.TempDir(), "nope.json"))

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	_, err = app.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestAppRunWithCache(t *testing.T) {
	cfg := offlineConfig(writeSampleExport(t))
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	result, err := app.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.TotalVideos)
}
