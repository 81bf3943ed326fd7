package enrich

import (
	"context"
	"errors"
	"fmt"

	"github.com/penwyp/TubeWrapped/models"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

// YouTubeSource fetches video metadata from the YouTube Data API v3.
type YouTubeSource struct {
	service *youtube.Service
}

// NewYouTubeSource creates a metadata source authenticated by API key.
func NewYouTubeSource(ctx context.Context, apiKey string) (*YouTubeSource, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &YouTubeSource{service: service}, nil
}

// MaxBatchSize returns the videos.list documented id limit per call.
func (s *YouTubeSource) MaxBatchSize() int {
	return models.MetadataBatchSize
}

// FetchBatch resolves metadata for up to MaxBatchSize video ids. Ids the
// API does not know (deleted or private videos) are simply absent from the
// result. Quota refusals map to ErrQuotaExceeded.
func (s *YouTubeSource) FetchBatch(ctx context.Context, videoIDs []string) ([]models.VideoMetadata, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > s.MaxBatchSize() {
		return nil, fmt.Errorf("batch of %d ids exceeds the per-call limit of %d", len(videoIDs), s.MaxBatchSize())
	}

	response, err := s.service.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoIDs...).
		MaxResults(int64(len(videoIDs))).
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == 403 || apiErr.Code == 429) {
			return nil, fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return nil, fmt.Errorf("videos.list call failed: %w", err)
	}

	results := make([]models.VideoMetadata, 0, len(response.Items))
	for _, item := range response.Items {
		meta := models.VideoMetadata{VideoID: item.Id}
		if item.Snippet != nil {
			meta.Title = item.Snippet.Title
			meta.ChannelName = item.Snippet.ChannelTitle
			meta.ChannelID = item.Snippet.ChannelId
			meta.CategoryID = item.Snippet.CategoryId
			meta.CategoryName = models.CategoryName(item.Snippet.CategoryId)
			meta.Tags = item.Snippet.Tags
		}
		if item.ContentDetails != nil {
			meta.DurationSeconds = models.ParseISODuration(item.ContentDetails.Duration)
		}
		if item.Statistics != nil {
			meta.ViewCount = int64(item.Statistics.ViewCount)
			meta.LikeCount = int64(item.Statistics.LikeCount)
		}
		results = append(results, meta)
	}

	return results, nil
}
