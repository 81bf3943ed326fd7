package internal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/penwyp/TubeWrapped/models"
	"github.com/penwyp/TubeWrapped/ui"
)

// WriteStats emits the analysis result in the requested format. An empty
// file path writes to stdout.
func WriteStats(stats *models.WrappedStats, format, file string) error {
	var out io.Writer = os.Stdout
	if file != "" {
		f, err := os.Create(file)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		return ExportJSON(out, stats)
	case "csv":
		return ExportCSV(out, stats)
	case "summary":
		_, err := fmt.Fprintln(out, ui.RenderSummary(stats))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// ExportJSON writes the full stats object as indented JSON.
func ExportJSON(w io.Writer, stats *models.WrappedStats) error {
	data, err := sonic.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// ExportCSV writes a flat metric/value table plus the channel and category
// rankings. Spreadsheet imports only need the headline numbers, so nested
// detail like the heatmap stays JSON-only.
func ExportCSV(w io.Writer, stats *models.WrappedStats) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"metric", "value"},
		{"year", strconv.Itoa(stats.Year)},
		{"total_videos", strconv.Itoa(stats.TotalVideos)},
		{"total_watch_time_seconds", strconv.Itoa(stats.TotalWatchTimeSeconds)},
		{"active_days", strconv.Itoa(stats.ActiveDays)},
		{"late_night_count", strconv.Itoa(stats.LateNightCount)},
		{"genre_personality", stats.GenrePersonality},
		{"longest_day", stats.LongestDay.Date},
		{"longest_day_count", strconv.Itoa(stats.LongestDay.Count)},
		{"most_rewatched_title", stats.MostRewatched.Title},
		{"most_rewatched_count", strconv.Itoa(stats.MostRewatched.Count)},
		{"shorts_count", strconv.Itoa(stats.ShortsStats.ShortsCount)},
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}

	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := cw.Write([]string{"rank", "channel", "watch_count", "total_seconds"}); err != nil {
		return err
	}
	for i, ch := range stats.TopChannels {
		row := []string{strconv.Itoa(i + 1), ch.Name, strconv.Itoa(ch.WatchCount), strconv.Itoa(ch.TotalSeconds)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := cw.Write([]string{"rank", "category", "watch_count"}); err != nil {
		return err
	}
	for i, cat := range stats.TopCategories {
		row := []string{strconv.Itoa(i + 1), cat.Name, strconv.Itoa(cat.WatchCount)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
