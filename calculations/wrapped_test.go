package calculations

import (
	"testing"
	"time"

	"github.com/penwyp/TubeWrapped/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUTCAnalyzer() *Analyzer {
	return NewAnalyzer(time.UTC)
}

func video(id, channel, category string, watchedAt time.Time, duration int) models.EnrichedVideo {
	return models.EnrichedVideo{
		VideoID:         id,
		Title:           "Title " + id,
		ChannelName:     channel,
		WatchedAt:       watchedAt,
		DurationSeconds: duration,
		CategoryID:      "0",
		CategoryName:    category,
	}
}

func TestAnalyze_Empty(t *testing.T) {
	stats := newUTCAnalyzer().Analyze(nil, 2024)

	assert.Equal(t, 0, stats.TotalVideos)
	assert.Equal(t, 0, stats.TotalWatchTimeSeconds)
	assert.Equal(t, 1, stats.ActiveDays)
	assert.Empty(t, stats.TopChannels)
	assert.Empty(t, stats.BingeSessions)
	assert.Nil(t, stats.FirstVideo)
	assert.Nil(t, stats.LastVideo)
	assert.Equal(t, models.DayRecord{}, stats.LongestDay)
	assert.Equal(t, models.RewatchRecord{}, stats.MostRewatched)
	assert.Len(t, stats.WatchingHeatmap, 7*24)
	assert.Len(t, stats.MonthlyTrends, 12)
	assert.Equal(t, 2024, stats.Year)
}

func TestAnalyze_TotalsAndSpan(t *testing.T) {
	videos := []models.EnrichedVideo{
		video("videoaaaaaa", "ChanA", "Gaming", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 100),
		video("videobbbbbb", "ChanA", "Gaming", time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), 200),
	}

	stats := newUTCAnalyzer().Analyze(videos, 2024)

	assert.Equal(t, 2, stats.TotalVideos)
	assert.Equal(t, 300, stats.TotalWatchTimeSeconds)
	// Two full days of span, ceil + 1
	assert.Equal(t, 3, stats.ActiveDays)
	require.NotNil(t, stats.FirstVideo)
	require.NotNil(t, stats.LastVideo)
	assert.Equal(t, "videoaaaaaa", stats.FirstVideo.VideoID)
	assert.Equal(t, "videobbbbbb", stats.LastVideo.VideoID)
}

func TestAnalyze_TopChannelsRankedWithTieBreak(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	videos := []models.EnrichedVideo{
		video("v0000000001", "First", "Gaming", base, 60),
		video("v0000000002", "Second", "Gaming", base.Add(time.Minute), 60),
		video("v0000000003", "Second", "Gaming", base.Add(2*time.Minute), 60),
		video("v0000000004", "First", "Gaming", base.Add(3*time.Minute), 60),
	}

	stats := newUTCAnalyzer().Analyze(videos, 2024)

	require.Len(t, stats.TopChannels, 2)
	// Tie on count: first-encountered channel wins
	assert.Equal(t, "First", stats.TopChannels[0].Name)
	assert.Equal(t, 2, stats.TopChannels[0].WatchCount)
	assert.Equal(t, 120, stats.TopChannels[0].TotalSeconds)
	assert.Equal(t, "Second", stats.TopChannels[1].Name)
}

func TestAnalyze_CategoryCountInvariant(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	categories := []string{"Gaming", "Music", "Comedy", "Education"}
	var videos []models.EnrichedVideo
	for i := 0; i < 40; i++ {
		videos = append(videos, video(
			"vid00000"+string(rune('a'+i%26))+string(rune('a'+i/26)),
			"Chan",
			categories[i%len(categories)],
			base.Add(time.Duration(i)*time.Minute),
			30,
		))
	}

	stats := newUTCAnalyzer().Analyze(videos, 2024)

	sum := 0
	for _, c := range stats.TopCategories {
		sum += c.WatchCount
	}
	// Four categories, no truncation: counts add up to the total
	assert.Equal(t, stats.TotalVideos, sum)
}

func TestAnalyze_Heatmap(t *testing.T) {
	// Tuesday 2024-03-05, 22:00 UTC
	at := time.Date(2024, 3, 5, 22, 0, 0, 0, time.UTC)
	videos := []models.EnrichedVideo{
		video("heatmapvid1", "Chan", "Gaming", at, 60),
		video("heatmapvid2", "Chan", "Gaming", at.Add(time.Minute), 60),
	}

	stats := newUTCAnalyzer().Analyze(videos, 2024)

	require.Len(t, stats.WatchingHeatmap, 7*24)
	for _, cell := range stats.WatchingHeatmap {
		if cell.Day == 2 && cell.Hour == 22 {
			assert.Equal(t, 2, cell.Count)
		} else {
			assert.Zero(t, cell.Count)
		}
	}
}

func TestAnalyze_MonthlyTrendsScopedToYear(t *testing.T) {
	videos := []models.EnrichedVideo{
		video("monthlyvid1", "Chan", "Gaming", time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC), 100),
		video("monthlyvid2", "Chan", "Gaming", time.Date(2024, 2, 11, 12, 0, 0, 0, time.UTC), 50),
		// A stray event outside the target year is excluded from this view
		video("monthlyvid3", "Chan", "Gaming", time.Date(2023, 2, 11, 12, 0, 0, 0, time.UTC), 999),
	}

	stats := newUTCAnalyzer().Analyze(videos, 2024)

	require.Len(t, stats.MonthlyTrends, 12)
	feb := stats.MonthlyTrends[1]
	assert.Equal(t, "Feb", feb.Label)
	assert.Equal(t, 2, feb.WatchCount)
	assert.Equal(t, 150, feb.TotalSeconds)
	for m, trend := range stats.MonthlyTrends {
		if m != 1 {
			assert.Zero(t, trend.WatchCount)
		}
	}
}

func TestAnalyze_LongestDay(t *testing.T) {
	videos := []models.EnrichedVideo{
		video("longestday1", "Chan", "Gaming", time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC), 10),
		video("longestday2", "Chan", "Gaming", time.Date(2024, 7, 2, 8, 0, 0, 0, time.UTC), 20),
		video("longestday3", "Chan", "Gaming", time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC), 30),
	}

	stats := newUTCAnalyzer().Analyze(videos, 2024)

	assert.Equal(t, "2024-07-02", stats.LongestDay.Date)
	assert.Equal(t, 2, stats.LongestDay.Count)
	assert.Equal(t, 50, stats.LongestDay.TotalSeconds)
}

func TestAnalyze_MostRewatchedTieBreak(t *testing.T) {
	base := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	var videos []models.EnrichedVideo
	// "earlyrepeat" is first encountered before "laterrepeat"; both are
	// watched 5 times.
	for i := 0; i < 5; i++ {
		videos = append(videos,
			video("earlyrepeat", "Chan", "Gaming", base.Add(time.Duration(2*i)*time.Hour), 60),
			video("laterrepeat", "Chan", "Gaming", base.Add(time.Duration(2*i+1)*time.Hour), 60),
		)
	}

	stats := newUTCAnalyzer().Analyze(videos, 2024)

	assert.Equal(t, "earlyrepeat", stats.MostRewatched.VideoID)
	assert.Equal(t, 5, stats.MostRewatched.Count)
}

func TestAnalyze_LateNightBoundary(t *testing.T) {
	videos := []models.EnrichedVideo{
		video("latenight01", "Chan", "Gaming", time.Date(2024, 9, 10, 3, 59, 0, 0, time.UTC), 100),
		video("notlate0001", "Chan", "Gaming", time.Date(2024, 9, 10, 4, 0, 0, 0, time.UTC), 200),
		video("latenight02", "Chan", "Gaming", time.Date(2024, 9, 11, 0, 0, 0, 0, time.UTC), 50),
	}

	stats := newUTCAnalyzer().Analyze(videos, 2024)

	assert.Equal(t, 2, stats.LateNightCount)
	assert.Equal(t, 150, stats.LateNightSeconds)
}

func TestAnalyze_ShortsStats(t *testing.T) {
	base := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	short1 := video("shortvideo1", "ShortsChan", "Gaming", base, 45)
	short2 := video("shortvideo2", "ShortsChan", "Entertainment", base.Add(time.Minute), 600)
	short2.CategoryID = models.ShortsCategoryID
	long1 := video("longvideo01", "LongChan", "Education", base.Add(2*time.Minute), 1200)

	stats := newUTCAnalyzer().Analyze([]models.EnrichedVideo{short1, short2, long1}, 2024)

	assert.Equal(t, 2, stats.ShortsStats.ShortsCount)
	assert.Equal(t, 645, stats.ShortsStats.ShortsWatchTimeSecond)
	assert.InDelta(t, 66.67, stats.ShortsStats.ShortsPercentage, 0.01)
	require.Len(t, stats.ShortsStats.TopShortsChannels, 1)
	assert.Equal(t, "ShortsChan", stats.ShortsStats.TopShortsChannels[0].Name)
}

func TestAnalyze_Idempotent(t *testing.T) {
	base := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)
	var videos []models.EnrichedVideo
	channels := []string{"A", "A", "A", "B", "C", "C"}
	for i, ch := range channels {
		videos = append(videos, video(
			"idempotent"+string(rune('0'+i)),
			ch,
			"Music",
			base.Add(time.Duration(i)*30*time.Minute),
			90,
		))
	}

	analyzer := newUTCAnalyzer()
	first := analyzer.Analyze(videos, 2024)
	second := analyzer.Analyze(videos, 2024)

	assert.Equal(t, first, second)
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	videos := []models.EnrichedVideo{
		video("mutatecheck", "B", "Gaming", time.Date(2024, 2, 2, 2, 0, 0, 0, time.UTC), 60),
		video("mutatechec2", "A", "Gaming", time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), 60),
	}

	newUTCAnalyzer().Analyze(videos, 2024)

	// Input order is untouched even though analysis sorts internally
	assert.Equal(t, "mutatecheck", videos[0].VideoID)
	assert.Equal(t, "mutatechec2", videos[1].VideoID)
}
