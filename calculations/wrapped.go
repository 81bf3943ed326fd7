package calculations

import (
	"math"
	"sort"
	"time"

	"github.com/penwyp/TubeWrapped/models"
	"github.com/penwyp/TubeWrapped/sessions"
)

// Analyzer computes year-in-review statistics from enriched watch events.
// Hour-of-day, day-of-week and calendar-date groupings use the configured
// timezone.
type Analyzer struct {
	timezone *time.Location
	detector *sessions.Detector
}

// NewAnalyzer creates an analyzer for the given timezone. A nil timezone
// falls back to the system's local zone.
func NewAnalyzer(tz *time.Location) *Analyzer {
	if tz == nil {
		tz = time.Local
	}
	return &Analyzer{
		timezone: tz,
		detector: sessions.NewDetector(),
	}
}

// Analyze computes the full WrappedStats for one year. Pure with respect to
// its input: videos are never mutated, the result is freshly allocated.
func (a *Analyzer) Analyze(videos []models.EnrichedVideo, year int) models.WrappedStats {
	sorted := make([]models.EnrichedVideo, len(videos))
	copy(sorted, videos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WatchedAt.Before(sorted[j].WatchedAt)
	})

	totalVideos := len(sorted)
	totalSeconds := 0
	for i := range sorted {
		totalSeconds += sorted[i].DurationSeconds
	}

	var firstVideo, lastVideo *models.EnrichedVideo
	activeDays := 1
	if totalVideos > 0 {
		first := sorted[0]
		last := sorted[totalVideos-1]
		firstVideo = &first
		lastVideo = &last

		span := last.WatchedAt.Sub(first.WatchedAt)
		activeDays = int(math.Ceil(span.Hours()/24)) + 1
		if activeDays < 1 {
			activeDays = 1
		}
	}

	topCategories := a.computeTopCategories(sorted)
	lateNightCount, lateNightSeconds := a.computeLateNight(sorted)

	return models.WrappedStats{
		TotalVideos:           totalVideos,
		TotalWatchTimeSeconds: totalSeconds,
		ActiveDays:            activeDays,
		TopChannels:           a.computeTopChannels(sorted, models.TopChannelsLimit),
		TopCategories:         topCategories,
		WatchingHeatmap:       a.computeHeatmap(sorted),
		MonthlyTrends:         a.computeMonthlyTrends(sorted, year),
		LongestDay:            a.computeLongestDay(sorted),
		MostRewatched:         a.computeMostRewatched(sorted),
		LateNightCount:        lateNightCount,
		LateNightSeconds:      lateNightSeconds,
		BingeSessions:         a.detector.Detect(sorted),
		GenrePersonality:      GenrePersonality(topCategories),
		FirstVideo:            firstVideo,
		LastVideo:             lastVideo,
		ShortsStats:           a.computeShortsStats(sorted),
		Year:                  year,
	}
}

// channelAccumulator groups by channel name while remembering the order
// channels were first seen, which is the documented tie-break.
type channelAccumulator struct {
	order []string
	stats map[string]*models.ChannelStat
}

func newChannelAccumulator() *channelAccumulator {
	return &channelAccumulator{stats: make(map[string]*models.ChannelStat)}
}

func (c *channelAccumulator) add(video *models.EnrichedVideo) {
	stat, ok := c.stats[video.ChannelName]
	if !ok {
		stat = &models.ChannelStat{Name: video.ChannelName}
		c.stats[video.ChannelName] = stat
		c.order = append(c.order, video.ChannelName)
	}
	stat.WatchCount++
	stat.TotalSeconds += video.DurationSeconds
}

func (c *channelAccumulator) ranked(limit int) []models.ChannelStat {
	result := make([]models.ChannelStat, 0, len(c.order))
	for _, name := range c.order {
		result = append(result, *c.stats[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].WatchCount > result[j].WatchCount
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (a *Analyzer) computeTopChannels(videos []models.EnrichedVideo, limit int) []models.ChannelStat {
	acc := newChannelAccumulator()
	for i := range videos {
		acc.add(&videos[i])
	}
	return acc.ranked(limit)
}

func (a *Analyzer) computeTopCategories(videos []models.EnrichedVideo) []models.CategoryStat {
	order := []string{}
	stats := make(map[string]*models.CategoryStat)

	for i := range videos {
		video := &videos[i]
		stat, ok := stats[video.CategoryName]
		if !ok {
			stat = &models.CategoryStat{
				Name:       video.CategoryName,
				CategoryID: video.CategoryID,
			}
			stats[video.CategoryName] = stat
			order = append(order, video.CategoryName)
		}
		stat.WatchCount++
		stat.TotalSeconds += video.DurationSeconds
	}

	result := make([]models.CategoryStat, 0, len(order))
	for _, name := range order {
		result = append(result, *stats[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].WatchCount > result[j].WatchCount
	})
	if len(result) > models.TopCategoriesLimit {
		result = result[:models.TopCategoriesLimit]
	}
	return result
}

// computeHeatmap builds the 7x24 day-of-week by hour-of-day grid. Every
// cell is present, zero or not, so consumers can render it directly.
func (a *Analyzer) computeHeatmap(videos []models.EnrichedVideo) []models.HourDayStat {
	var grid [7][24]int
	for i := range videos {
		local := videos[i].WatchedAt.In(a.timezone)
		grid[int(local.Weekday())][local.Hour()]++
	}

	result := make([]models.HourDayStat, 0, 7*24)
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			result = append(result, models.HourDayStat{
				Hour:  hour,
				Day:   day,
				Count: grid[day][hour],
			})
		}
	}
	return result
}

// computeMonthlyTrends returns one entry per calendar month of the target
// year. Events outside the year are excluded from this view only.
func (a *Analyzer) computeMonthlyTrends(videos []models.EnrichedVideo, year int) []models.MonthlyStat {
	months := make([]models.MonthlyStat, 12)
	for m := 0; m < 12; m++ {
		months[m] = models.MonthlyStat{
			Month: m,
			Year:  year,
			Label: time.Date(year, time.Month(m+1), 1, 0, 0, 0, 0, a.timezone).Format("Jan"),
		}
	}

	for i := range videos {
		local := videos[i].WatchedAt.In(a.timezone)
		if local.Year() != year {
			continue
		}
		m := int(local.Month()) - 1
		months[m].WatchCount++
		months[m].TotalSeconds += videos[i].DurationSeconds
	}
	return months
}

func (a *Analyzer) computeLongestDay(videos []models.EnrichedVideo) models.DayRecord {
	order := []string{}
	days := make(map[string]*models.DayRecord)

	for i := range videos {
		key := videos[i].WatchedAt.In(a.timezone).Format(models.DayKeyFormat)
		record, ok := days[key]
		if !ok {
			record = &models.DayRecord{Date: key}
			days[key] = record
			order = append(order, key)
		}
		record.Count++
		record.TotalSeconds += videos[i].DurationSeconds
	}

	best := models.DayRecord{}
	for _, key := range order {
		if days[key].Count > best.Count {
			best = *days[key]
		}
	}
	return best
}

func (a *Analyzer) computeMostRewatched(videos []models.EnrichedVideo) models.RewatchRecord {
	order := []string{}
	counts := make(map[string]*models.RewatchRecord)

	for i := range videos {
		video := &videos[i]
		record, ok := counts[video.VideoID]
		if !ok {
			record = &models.RewatchRecord{
				VideoID:     video.VideoID,
				Title:       video.Title,
				ChannelName: video.ChannelName,
			}
			counts[video.VideoID] = record
			order = append(order, video.VideoID)
		}
		record.Count++
	}

	best := models.RewatchRecord{}
	for _, id := range order {
		if counts[id].Count > best.Count {
			best = *counts[id]
		}
	}
	return best
}

func (a *Analyzer) computeLateNight(videos []models.EnrichedVideo) (count, seconds int) {
	for i := range videos {
		hour := videos[i].WatchedAt.In(a.timezone).Hour()
		if hour >= models.LateNightStartHour && hour < models.LateNightEndHour {
			count++
			seconds += videos[i].DurationSeconds
		}
	}
	return count, seconds
}

func (a *Analyzer) computeShortsStats(videos []models.EnrichedVideo) models.ShortsStats {
	shorts := make([]models.EnrichedVideo, 0)
	for i := range videos {
		if videos[i].IsShort() {
			shorts = append(shorts, videos[i])
		}
	}

	seconds := 0
	for i := range shorts {
		seconds += shorts[i].DurationSeconds
	}

	percentage := 0.0
	if len(videos) > 0 {
		percentage = float64(len(shorts)) / float64(len(videos)) * 100
	}

	return models.ShortsStats{
		ShortsCount:           len(shorts),
		ShortsWatchTimeSecond: seconds,
		ShortsPercentage:      percentage,
		TopShortsChannels:     a.computeTopChannels(shorts, models.TopShortsChannelsLimit),
	}
}
