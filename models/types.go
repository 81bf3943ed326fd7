package models

import (
	"time"
)

// RawWatchEntry represents a single record from a watch-history export file.
// The export format is untrusted: every field may be missing or malformed,
// so all fields are optional and validated during parsing.
type RawWatchEntry struct {
	Header           string        `json:"header"`
	Title            string        `json:"title"`
	TitleURL         string        `json:"titleUrl,omitempty"`
	Subtitles        []RawSubtitle `json:"subtitles,omitempty"`
	Time             string        `json:"time"`
	Products         []string      `json:"products,omitempty"`
	ActivityControls []string      `json:"activityControls,omitempty"`
}

// RawSubtitle is an attribution entry on a raw record, normally the channel.
type RawSubtitle struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// ParsedWatchEntry is a canonical watch event extracted from a raw record.
// Entries are unique per (VideoID, WatchedAt) pair.
type ParsedWatchEntry struct {
	VideoID     string    `json:"video_id"`
	Title       string    `json:"title"`
	ChannelName string    `json:"channel_name"`
	ChannelURL  string    `json:"channel_url,omitempty"`
	WatchedAt   time.Time `json:"watched_at"`
}

// VideoMetadata contains resolved facts about a video id, fetched from the
// metadata source and cached locally.
type VideoMetadata struct {
	VideoID         string   `json:"video_id"`
	Title           string   `json:"title"`
	ChannelName     string   `json:"channel_name"`
	ChannelID       string   `json:"channel_id"`
	DurationSeconds int      `json:"duration_seconds"`
	CategoryID      string   `json:"category_id"`
	CategoryName    string   `json:"category_name"`
	Tags            []string `json:"tags"`
	ViewCount       int64    `json:"view_count"`
	LikeCount       int64    `json:"like_count"`
}

// EnrichedVideo is a watch event joined with its metadata. The same video id
// can appear many times, once per watch.
type EnrichedVideo struct {
	VideoID         string    `json:"video_id"`
	Title           string    `json:"title"`
	ChannelName     string    `json:"channel_name"`
	ChannelID       string    `json:"channel_id,omitempty"`
	WatchedAt       time.Time `json:"watched_at"`
	DurationSeconds int       `json:"duration_seconds"`
	CategoryID      string    `json:"category_id"`
	CategoryName    string    `json:"category_name"`
	Tags            []string  `json:"tags,omitempty"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
}

// ChannelStat aggregates watch activity for a single channel.
type ChannelStat struct {
	Name         string `json:"name"`
	WatchCount   int    `json:"watch_count"`
	TotalSeconds int    `json:"total_seconds"`
}

// CategoryStat aggregates watch activity for a single category.
type CategoryStat struct {
	Name         string `json:"name"`
	CategoryID   string `json:"category_id"`
	WatchCount   int    `json:"watch_count"`
	TotalSeconds int    `json:"total_seconds"`
}

// HourDayStat is one cell of the 7x24 watching heatmap.
// Day uses 0=Sunday..6=Saturday, Hour is the local hour of day.
type HourDayStat struct {
	Hour  int `json:"hour"`
	Day   int `json:"day"`
	Count int `json:"count"`
}

// MonthlyStat aggregates watch activity for one calendar month.
// Month is zero-based (0=January) to match the heatmap's numeric style.
type MonthlyStat struct {
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	Label        string `json:"label"`
	WatchCount   int    `json:"watch_count"`
	TotalSeconds int    `json:"total_seconds"`
}

// DayRecord is the single calendar day with the most watches.
type DayRecord struct {
	Date         string `json:"date"`
	Count        int    `json:"count"`
	TotalSeconds int    `json:"total_seconds"`
}

// RewatchRecord is the most rewatched video of the year.
type RewatchRecord struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	ChannelName string `json:"channel_name"`
	Count       int    `json:"count"`
}

// BingeSession is a maximal run of consecutive watches on the same channel.
type BingeSession struct {
	ChannelName string          `json:"channel_name"`
	VideoCount  int             `json:"video_count"`
	Videos      []EnrichedVideo `json:"videos"`
}

// ShortsStats aggregates short-form watch activity.
type ShortsStats struct {
	ShortsCount           int           `json:"shorts_count"`
	ShortsWatchTimeSecond int           `json:"shorts_watch_time_seconds"`
	ShortsPercentage      float64       `json:"shorts_percentage"`
	TopShortsChannels     []ChannelStat `json:"top_shorts_channels"`
}

// WrappedStats is the complete year-in-review output of the analysis
// pipeline. It is created once per run and never mutated afterwards.
type WrappedStats struct {
	TotalVideos           int            `json:"total_videos"`
	TotalWatchTimeSeconds int            `json:"total_watch_time_seconds"`
	ActiveDays            int            `json:"active_days"`
	TopChannels           []ChannelStat  `json:"top_channels"`
	TopCategories         []CategoryStat `json:"top_categories"`
	WatchingHeatmap       []HourDayStat  `json:"watching_heatmap"`
	MonthlyTrends         []MonthlyStat  `json:"monthly_trends"`
	LongestDay            DayRecord      `json:"longest_day"`
	MostRewatched         RewatchRecord  `json:"most_rewatched"`
	LateNightCount        int            `json:"late_night_count"`
	LateNightSeconds      int            `json:"late_night_seconds"`
	BingeSessions         []BingeSession `json:"binge_sessions"`
	GenrePersonality      string         `json:"genre_personality"`
	FirstVideo            *EnrichedVideo `json:"first_video"`
	LastVideo             *EnrichedVideo `json:"last_video"`
	ShortsStats           ShortsStats    `json:"shorts_stats"`
	Year                  int            `json:"year"`
}

// Stage identifies where a pipeline run currently is.
type Stage string

const (
	StageUpload    Stage = "upload"
	StageParsing   Stage = "parsing"
	StageEnriching Stage = "enriching"
	StageAnalyzing Stage = "analyzing"
	StageReady     Stage = "ready"
)
