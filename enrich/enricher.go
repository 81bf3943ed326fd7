package enrich

import (
	"context"
	"errors"

	"github.com/penwyp/TubeWrapped/cache"
	"github.com/penwyp/TubeWrapped/logging"
	"github.com/penwyp/TubeWrapped/models"
)

// ProgressFunc receives coarse-grained enrichment progress. It is called
// once before any network activity with the cache-hit count and once after
// each batch with the cumulative fetched count, capped at total. Callers
// may update UI state from it; it must not block.
type ProgressFunc func(fetched, total int)

// MetadataSource resolves video metadata for a bounded batch of ids.
type MetadataSource interface {
	FetchBatch(ctx context.Context, videoIDs []string) ([]models.VideoMetadata, error)
	MaxBatchSize() int
}

// Enricher joins parsed watch entries with video metadata, resolving ids
// through the cache first and the metadata source for the rest.
type Enricher struct {
	source    MetadataSource
	cache     *cache.MetadataCache
	batchSize int
}

// NewEnricher creates an enricher. Both the source and the cache may be
// nil: a nil cache disables caching, a nil source forces fallback mode.
func NewEnricher(source MetadataSource, metaCache *cache.MetadataCache) *Enricher {
	return NewEnricherWithBatchSize(source, metaCache, 0)
}

// NewEnricherWithBatchSize creates an enricher that caps fetch batches at
// batchSize. The source's own per-call limit still applies; a batchSize of
// 0 means no extra cap.
func NewEnricherWithBatchSize(source MetadataSource, metaCache *cache.MetadataCache, batchSize int) *Enricher {
	return &Enricher{
		source:    source,
		cache:     metaCache,
		batchSize: batchSize,
	}
}

// Enrich resolves metadata for every unique video id and projects each
// watch entry into an EnrichedVideo. Entries whose id could not be
// resolved are dropped (strict mode); use CreateEnrichedFromParsed for the
// degraded projection. Batches are fetched sequentially so cache writes
// and progress reports stay deterministic and the source's rate limits are
// respected.
func (e *Enricher) Enrich(ctx context.Context, entries []models.ParsedWatchEntry, onProgress ProgressFunc) ([]models.EnrichedVideo, error) {
	uniqueIDs := collectUniqueIDs(entries)

	resolved, err := e.resolveMetadata(ctx, uniqueIDs, onProgress)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedVideo, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		meta, ok := resolved[entry.VideoID]
		if !ok {
			continue
		}
		enriched = append(enriched, projectEntry(entry, &meta))
	}

	return enriched, nil
}

// EnrichOrFallback runs strict enrichment and degrades to the parsed-only
// projection when the source is missing, fails outright, or returns
// nothing usable. Quota exhaustion is the one terminal condition: it
// propagates instead of degrading.
func (e *Enricher) EnrichOrFallback(ctx context.Context, entries []models.ParsedWatchEntry, onProgress ProgressFunc) ([]models.EnrichedVideo, error) {
	if e.source == nil {
		return CreateEnrichedFromParsed(entries), nil
	}

	enriched, err := e.Enrich(ctx, entries, onProgress)
	if err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return nil, err
		}
		logging.LogWarnf("enrichment failed, falling back to parsed data: %v", err)
		return CreateEnrichedFromParsed(entries), nil
	}
	if len(enriched) == 0 {
		logging.LogWarnf("enrichment resolved no metadata, falling back to parsed data")
		return CreateEnrichedFromParsed(entries), nil
	}
	return enriched, nil
}

// CreateEnrichedFromParsed projects watch entries without metadata:
// zero duration, category "Unknown", no engagement numbers.
func CreateEnrichedFromParsed(entries []models.ParsedWatchEntry) []models.EnrichedVideo {
	enriched := make([]models.EnrichedVideo, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		enriched = append(enriched, models.EnrichedVideo{
			VideoID:         entry.VideoID,
			Title:           entry.Title,
			ChannelName:     entry.ChannelName,
			WatchedAt:       entry.WatchedAt,
			DurationSeconds: 0,
			CategoryID:      "0",
			CategoryName:    "Unknown",
			Tags:            []string{},
		})
	}
	return enriched
}

// resolveMetadata maps unique ids to metadata via cache hits plus batched
// source fetches. A failed batch leaves its ids unresolved for this run; a
// quota error aborts everything.
func (e *Enricher) resolveMetadata(ctx context.Context, videoIDs []string, onProgress ProgressFunc) (map[string]models.VideoMetadata, error) {
	resolved := make(map[string]models.VideoMetadata, len(videoIDs))
	var uncached []string

	for _, id := range videoIDs {
		if e.cache != nil {
			if meta, ok := e.cache.Get(id); ok {
				resolved[id] = meta
				continue
			}
		}
		uncached = append(uncached, id)
	}

	total := len(videoIDs)
	fetched := len(resolved)
	reportProgress(onProgress, fetched, total)

	if e.source == nil || len(uncached) == 0 {
		return resolved, nil
	}

	batchSize := e.source.MaxBatchSize()
	if batchSize <= 0 || batchSize > models.MetadataBatchSize {
		batchSize = models.MetadataBatchSize
	}
	if e.batchSize > 0 && e.batchSize < batchSize {
		batchSize = e.batchSize
	}

	for start := 0; start < len(uncached); start += batchSize {
		end := start + batchSize
		if end > len(uncached) {
			end = len(uncached)
		}
		batch := uncached[start:end]

		results, err := e.source.FetchBatch(ctx, batch)
		if err != nil {
			if errors.Is(err, ErrQuotaExceeded) {
				return nil, err
			}
			logging.LogWarnf("metadata batch of %d ids failed, skipping: %v", len(batch), err)
		} else {
			for i := range results {
				meta := results[i]
				resolved[meta.VideoID] = meta
				if e.cache != nil {
					e.cache.Put(meta.VideoID, meta)
				}
			}
		}

		fetched += len(batch)
		reportProgress(onProgress, fetched, total)
	}

	return resolved, nil
}

func reportProgress(onProgress ProgressFunc, fetched, total int) {
	if onProgress == nil {
		return
	}
	if fetched > total {
		fetched = total
	}
	onProgress(fetched, total)
}

// projectEntry merges fetched metadata onto a watch entry, preferring the
// fetched title and channel but keeping the parsed values when the source
// returned blanks.
func projectEntry(entry *models.ParsedWatchEntry, meta *models.VideoMetadata) models.EnrichedVideo {
	title := meta.Title
	if title == "" {
		title = entry.Title
	}
	channelName := meta.ChannelName
	if channelName == "" {
		channelName = entry.ChannelName
	}

	return models.EnrichedVideo{
		VideoID:         entry.VideoID,
		Title:           title,
		ChannelName:     channelName,
		ChannelID:       meta.ChannelID,
		WatchedAt:       entry.WatchedAt,
		DurationSeconds: meta.DurationSeconds,
		CategoryID:      meta.CategoryID,
		CategoryName:    meta.CategoryName,
		Tags:            meta.Tags,
		ViewCount:       meta.ViewCount,
		LikeCount:       meta.LikeCount,
	}
}

// collectUniqueIDs returns the distinct video ids across all entries.
func collectUniqueIDs(entries []models.ParsedWatchEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for i := range entries {
		id := entries[i].VideoID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
