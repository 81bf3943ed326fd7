package sessions

import (
	"sort"

	"github.com/penwyp/TubeWrapped/models"
)

// Detector finds binge sessions: maximal runs of consecutive watches on the
// same channel, in chronological order, at least threshold videos long.
type Detector struct {
	threshold int
	limit     int
}

// NewDetector creates a detector with the standard policy: runs of 3+ count
// as a binge, top 10 retained.
func NewDetector() *Detector {
	return &Detector{
		threshold: models.BingeThreshold,
		limit:     models.TopBingeSessionsLimit,
	}
}

// NewDetectorWithOptions creates a detector with custom run threshold and
// result limit.
func NewDetectorWithOptions(threshold, limit int) *Detector {
	return &Detector{
		threshold: threshold,
		limit:     limit,
	}
}

// Detect returns the longest binge sessions, ranked descending by run
// length. Input order is not trusted: entries are re-sorted by timestamp
// before scanning. A run ends whenever the channel changes, so two runs on
// the same channel separated by a different channel stay separate sessions.
func (d *Detector) Detect(videos []models.EnrichedVideo) []models.BingeSession {
	if len(videos) == 0 {
		return []models.BingeSession{}
	}

	sorted := make([]models.EnrichedVideo, len(videos))
	copy(sorted, videos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WatchedAt.Before(sorted[j].WatchedAt)
	})

	sessions := []models.BingeSession{}
	currentChannel := ""
	var currentRun []models.EnrichedVideo

	flush := func() {
		if len(currentRun) >= d.threshold {
			sessions = append(sessions, models.BingeSession{
				ChannelName: currentChannel,
				VideoCount:  len(currentRun),
				Videos:      currentRun,
			})
		}
	}

	for i := range sorted {
		video := sorted[i]
		if i > 0 && video.ChannelName == currentChannel {
			currentRun = append(currentRun, video)
			continue
		}
		flush()
		currentChannel = video.ChannelName
		currentRun = []models.EnrichedVideo{video}
	}
	// The final open run still counts
	flush()

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].VideoCount > sessions[j].VideoCount
	})
	if len(sessions) > d.limit {
		sessions = sessions[:d.limit]
	}
	return sessions
}
