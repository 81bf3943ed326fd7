package models

import "time"

// Analysis policy thresholds. These are fixed policy values today; they are
// exported so a future config surface can take them over.
const (
	// BingeThreshold is the minimum run length of consecutive same-channel
	// watches that counts as a binge session.
	BingeThreshold = 3

	// ShortsMaxDurationSeconds classifies a video as short-form by length.
	ShortsMaxDurationSeconds = 60

	// ShortsCategoryID is the platform's dedicated short-form category.
	ShortsCategoryID = "42"
)

// Result list limits
const (
	TopChannelsLimit       = 20
	TopCategoriesLimit     = 10
	TopBingeSessionsLimit  = 10
	TopShortsChannelsLimit = 5
)

// Metadata cache settings
const (
	MetadataCacheTTL       = 7 * 24 * time.Hour
	MetadataCacheKeyPrefix = "yt-wrapped-cache-"
)

// MetadataBatchSize is the maximum number of video ids per metadata API
// call, matching the videos.list documented limit.
const MetadataBatchSize = 50

// Late-night window: local hours in [LateNightStartHour, LateNightEndHour).
const (
	LateNightStartHour = 0
	LateNightEndHour   = 4
)

// File paths and patterns
const (
	DefaultExportFileName = "watch-history.json"
	ConfigFileName        = ".tubewrapped.yml"
)

// Time formats
const (
	DayKeyFormat      = "2006-01-02"
	DisplayTimeFormat = "2006-01-02 15:04:05"
)

// DefaultChannelName is used when a raw record carries no attribution.
const DefaultChannelName = "Unknown Channel"

// RemovedVideoTitle is the sentinel title the export uses for deleted videos.
const RemovedVideoTitle = "Watched a video that has been removed"

// VideoCategories maps the platform's category ids to display names.
// Unknown ids map to "Other" via CategoryName.
var VideoCategories = map[string]string{
	"1":  "Film & Animation",
	"2":  "Autos & Vehicles",
	"10": "Music",
	"15": "Pets & Animals",
	"17": "Sports",
	"18": "Short Movies",
	"19": "Travel & Events",
	"20": "Gaming",
	"21": "Videoblogging",
	"22": "People & Blogs",
	"23": "Comedy",
	"24": "Entertainment",
	"25": "News & Politics",
	"26": "Howto & Style",
	"27": "Education",
	"28": "Science & Technology",
	"29": "Nonprofits & Activism",
	"30": "Movies",
	"31": "Anime/Animation",
	"32": "Action/Adventure",
	"33": "Classics",
	"34": "Comedy",
	"35": "Documentary",
	"36": "Drama",
	"37": "Family",
	"38": "Foreign",
	"39": "Horror",
	"40": "Sci-Fi/Fantasy",
	"41": "Thriller",
	"42": "Shorts",
	"43": "Shows",
	"44": "Trailers",
}

// CategoryName resolves a category id to its display name, falling back to
// "Other" for ids the table does not know.
func CategoryName(categoryID string) string {
	if name, ok := VideoCategories[categoryID]; ok {
		return name
	}
	return "Other"
}

// IsShort reports whether a video counts as short-form content, either by
// the dedicated category or by duration.
func (v *EnrichedVideo) IsShort() bool {
	return v.CategoryID == ShortsCategoryID || v.DurationSeconds <= ShortsMaxDurationSeconds
}
