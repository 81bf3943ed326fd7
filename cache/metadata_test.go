package cache

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dgraph-io/badger/v3"
	"github.com/penwyp/TubeWrapped/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *MetadataCache {
	t.Helper()
	c, err := NewMetadataCache(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func sampleMetadata(id string) models.VideoMetadata {
	return models.VideoMetadata{
		VideoID:         id,
		Title:           "Sample Video",
		ChannelName:     "Sample Channel",
		ChannelID:       "UCsample",
		DurationSeconds: 245,
		CategoryID:      "20",
		CategoryName:    "Gaming",
		Tags:            []string{"sample", "test"},
		ViewCount:       123456,
		LikeCount:       7890,
	}
}

func TestMetadataCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	meta := sampleMetadata("roundtrip01")

	c.Put("roundtrip01", meta)

	got, ok := c.Get("roundtrip01")
	require.True(t, ok)
	assert.Equal(t, meta, got)
}

func TestMetadataCache_MissingKey(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.Get("nevervisits")
	assert.False(t, ok)
}

func TestMetadataCache_TTLExpiry(t *testing.T) {
	c := newTestCache(t)
	c.Put("expiringvid", sampleMetadata("expiringvid"))

	// Advance the clock past the TTL
	c.now = func() time.Time { return time.Now().Add(models.MetadataCacheTTL + time.Hour) }

	_, ok := c.Get("expiringvid")
	assert.False(t, ok)

	// The expired entry is evicted, so it stays gone even after the clock
	// returns to normal.
	c.now = time.Now
	_, ok = c.Get("expiringvid")
	assert.False(t, ok)
}

func TestMetadataCache_LegacyValueIsValidHit(t *testing.T) {
	c := newTestCache(t)
	meta := sampleMetadata("legacyvideo")

	// Write in the old schema: bare metadata, no timestamp wrapper.
	raw, err := sonic.Marshal(meta)
	require.NoError(t, err)
	require.NoError(t, c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey("legacyvideo"), raw)
	}))

	got, ok := c.Get("legacyvideo")
	require.True(t, ok)
	assert.Equal(t, meta, got)

	// A fresh Put migrates the entry to the wrapped schema.
	c.Put("legacyvideo", meta)
	var stored []byte
	require.NoError(t, c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey("legacyvideo"))
		if err != nil {
			return err
		}
		stored, err = item.ValueCopy(nil)
		return err
	}))
	var env envelope
	require.NoError(t, sonic.Unmarshal(stored, &env))
	assert.Greater(t, env.TS, int64(0))
}

func TestMetadataCache_SweepEvictsExpiredAndCorrupt(t *testing.T) {
	c := newTestCache(t)

	c.Put("freshvideo1", sampleMetadata("freshvideo1"))

	// An expired entry
	old, err := sonic.Marshal(envelope{
		Data: sampleMetadata("expiredvid1"),
		TS:   time.Now().Add(-models.MetadataCacheTTL - time.Hour).UnixMilli(),
	})
	require.NoError(t, err)
	require.NoError(t, c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey("expiredvid1"), old)
	}))

	// A corrupt entry
	require.NoError(t, c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey("corruptvid1"), []byte("{not json"))
	}))

	evicted := c.Sweep()

	assert.Equal(t, 2, evicted)

	_, ok := c.Get("freshvideo1")
	assert.True(t, ok)
	_, ok = c.Get("expiredvid1")
	assert.False(t, ok)
	_, ok = c.Get("corruptvid1")
	assert.False(t, ok)
}

func TestMetadataCache_Clear(t *testing.T) {
	c := newTestCache(t)
	c.Put("clearedvid1", sampleMetadata("clearedvid1"))

	require.NoError(t, c.Clear())

	_, ok := c.Get("clearedvid1")
	assert.False(t, ok)
}

func TestMetadataCache_PutIsIdempotentReplace(t *testing.T) {
	c := newTestCache(t)

	first := sampleMetadata("replacedvid")
	second := first
	second.Title = "Updated Title"

	c.Put("replacedvid", first)
	c.Put("replacedvid", second)

	got, ok := c.Get("replacedvid")
	require.True(t, ok)
	assert.Equal(t, "Updated Title", got.Title)
}
