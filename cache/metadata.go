package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dgraph-io/badger/v3"
	"github.com/penwyp/TubeWrapped/logging"
	"github.com/penwyp/TubeWrapped/models"
)

// MetadataCache stores fetched video metadata in a local BadgerDB keyed
// store so repeat runs skip the network. It is a performance optimization
// only: every failure path degrades to a cache miss or a discarded write,
// never an error the pipeline has to handle.
type MetadataCache struct {
	db  *badger.DB
	ttl time.Duration

	// now is swappable for TTL tests.
	now func() time.Time
}

// envelope wraps cached metadata with its fetch time. Values written by
// older releases are bare VideoMetadata without the wrapper; Get accepts
// both and Put migrates lazily.
type envelope struct {
	Data models.VideoMetadata `json:"data"`
	TS   int64                `json:"ts"`
}

// DefaultCacheDir returns the on-disk location of the metadata cache.
func DefaultCacheDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tubewrapped", "metadata")
	}
	return filepath.Join(homeDir, ".cache", "tubewrapped", "metadata")
}

// NewMetadataCache opens (or creates) the metadata cache at dir.
func NewMetadataCache(dir string) (*MetadataCache, error) {
	if dir == "" {
		dir = DefaultCacheDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	opts := badger.DefaultOptions(dir)
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata cache: %w", err)
	}

	return &MetadataCache{
		db:  db,
		ttl: models.MetadataCacheTTL,
		now: time.Now,
	}, nil
}

func cacheKey(videoID string) []byte {
	return []byte(models.MetadataCacheKeyPrefix + videoID)
}

// Get returns the cached metadata for a video id. Entries older than the
// TTL are evicted and reported as misses.
func (c *MetadataCache) Get(videoID string) (models.VideoMetadata, bool) {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(videoID))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return models.VideoMetadata{}, false
	}

	meta, expired, ok := c.decode(raw)
	if !ok {
		c.evict(videoID)
		return models.VideoMetadata{}, false
	}
	if expired {
		c.evict(videoID)
		return models.VideoMetadata{}, false
	}
	return meta, true
}

// Put stores metadata with the current time. Write failures are discarded:
// the cache must never turn into a correctness dependency.
func (c *MetadataCache) Put(videoID string, meta models.VideoMetadata) {
	data, err := sonic.Marshal(envelope{Data: meta, TS: c.now().UnixMilli()})
	if err != nil {
		logging.LogDebugf("metadata cache: marshal failed for %s: %v", videoID, err)
		return
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(videoID), data)
	})
	if err != nil {
		logging.LogDebugf("metadata cache: write failed for %s: %v", videoID, err)
	}
}

// Sweep removes all expired and corrupt entries. Called once at startup.
func (c *MetadataCache) Sweep() int {
	prefix := []byte(models.MetadataCacheKeyPrefix)
	var stale [][]byte

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			raw, err := item.ValueCopy(nil)
			if err != nil {
				stale = append(stale, item.KeyCopy(nil))
				continue
			}
			if _, expired, ok := c.decode(raw); !ok || expired {
				stale = append(stale, item.KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		logging.LogWarnf("metadata cache: sweep scan failed: %v", err)
		return 0
	}

	evicted := 0
	for _, key := range stale {
		err := c.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		})
		if err == nil {
			evicted++
		}
	}

	if evicted > 0 {
		logging.LogInfof("metadata cache: swept %d stale entries", evicted)
	}
	return evicted
}

// Clear removes every cached entry.
func (c *MetadataCache) Clear() error {
	return c.db.DropPrefix([]byte(models.MetadataCacheKeyPrefix))
}

// Close releases the underlying store.
func (c *MetadataCache) Close() error {
	return c.db.Close()
}

// decode unpacks a stored value. Legacy values written without the
// timestamp envelope count as valid, non-expired hits.
func (c *MetadataCache) decode(raw []byte) (meta models.VideoMetadata, expired bool, ok bool) {
	var env envelope
	if err := sonic.Unmarshal(raw, &env); err == nil && env.TS > 0 {
		age := c.now().Sub(time.UnixMilli(env.TS))
		return env.Data, age > c.ttl, true
	}

	var legacy models.VideoMetadata
	if err := sonic.Unmarshal(raw, &legacy); err == nil && legacy.VideoID != "" {
		return legacy, false, true
	}

	return models.VideoMetadata{}, false, false
}

func (c *MetadataCache) evict(videoID string) {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(cacheKey(videoID))
	})
	if err != nil {
		logging.LogDebugf("metadata cache: evict failed for %s: %v", videoID, err)
	}
}
