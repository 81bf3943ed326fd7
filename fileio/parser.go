package fileio

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/TubeWrapped/models"
)

var videoURLRegex = regexp.MustCompile(`watch\?v=([a-zA-Z0-9_-]{11})`)

// extractVideoID pulls the 11-character video id out of a watch URL.
func extractVideoID(url string) string {
	match := videoURLRegex.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}

// isValidEntry filters out records that are not real video watches: library
// and music-service entries, site visits, searches, and removed videos.
func isValidEntry(entry *models.RawWatchEntry) bool {
	if entry.TitleURL == "" {
		return false
	}
	if entry.Title == "" || entry.Title == models.RemovedVideoTitle {
		return false
	}
	if entry.Header == "YouTube Music" {
		return false
	}
	if strings.HasPrefix(entry.Title, "Visited ") {
		return false
	}
	if strings.HasPrefix(entry.Title, "Searched for ") {
		return false
	}
	// Music URLs slip through with header "YouTube"
	if strings.Contains(entry.TitleURL, "music.youtube.com") {
		return false
	}
	return true
}

// parseTimestamp parses an export timestamp. The export writes RFC 3339
// with optional fractional seconds.
func parseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}

// Parse converts raw export records into clean, deduplicated watch entries
// for the target year, sorted ascending by watch time. Invalid records are
// dropped, never reported; the export format is too noisy for per-record
// errors to be useful.
func Parse(records []models.RawWatchEntry, targetYear int) []models.ParsedWatchEntry {
	seen := make(map[string]struct{})
	entries := make([]models.ParsedWatchEntry, 0, len(records))

	for i := range records {
		record := &records[i]
		if !isValidEntry(record) {
			continue
		}

		videoID := extractVideoID(record.TitleURL)
		if videoID == "" {
			continue
		}

		watchedAt, err := parseTimestamp(record.Time)
		if err != nil {
			continue
		}
		if watchedAt.Year() != targetYear {
			continue
		}

		dedupeKey := fmt.Sprintf("%s_%d", videoID, watchedAt.UnixMilli())
		if _, dup := seen[dedupeKey]; dup {
			continue
		}
		seen[dedupeKey] = struct{}{}

		channelName := models.DefaultChannelName
		channelURL := ""
		if len(record.Subtitles) > 0 && record.Subtitles[0].Name != "" {
			channelName = record.Subtitles[0].Name
			channelURL = record.Subtitles[0].URL
		}

		entries = append(entries, models.ParsedWatchEntry{
			VideoID:     videoID,
			Title:       strings.TrimPrefix(record.Title, "Watched "),
			ChannelName: channelName,
			ChannelURL:  channelURL,
			WatchedAt:   watchedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].WatchedAt.Before(entries[j].WatchedAt)
	})

	return entries
}

// DetectYear scans all records and returns the calendar year with the most
// parseable timestamps, defaulting to the current year when nothing parses.
func DetectYear(records []models.RawWatchEntry) int {
	yearCounts := make(map[int]int)
	for i := range records {
		if records[i].Time == "" {
			continue
		}
		ts, err := parseTimestamp(records[i].Time)
		if err != nil {
			continue
		}
		yearCounts[ts.Year()]++
	}

	maxYear := time.Now().Year()
	maxCount := 0
	for year, count := range yearCounts {
		// Ties resolve to the lower year so repeat runs agree.
		if count > maxCount || (count == maxCount && count > 0 && year < maxYear) {
			maxCount = count
			maxYear = year
		}
	}
	return maxYear
}
