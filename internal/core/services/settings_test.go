package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rsvp-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

func knownMerger(name string) bool { return name == "merger" }

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"segmentation.max_segment_chars": int64(20),
		"segmentation.min_join_length":   int64(2),
		"segmentation.post_processors":   []any{},
		"playback.interval_ms":           int64(250),
		"tokenizer.dictionary":           "uni",
		"cache.ttl_seconds":              int64(0),
	})
	service := NewSettingsService(store, nil)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.SegmentationSettings{MaxSegmentChars: 20, MinJoinLength: 2}, settings.Segmentation)
	assert.Equal(t, 250*time.Millisecond, settings.Playback.Interval)
	assert.Equal(t, domain.DictionaryUni, settings.Tokenizer.Dictionary)
	assert.Zero(t, settings.Cache.TTL)
	assert.Empty(t, settings.PostProcessors)
}

func TestSettingsService_Get_NormalisesStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"segmentation.max_segment_chars": 100,
		"segmentation.min_join_length":   -3,
		"playback.interval_ms":           5,
		"tokenizer.dictionary":           "neologd",
		"cache.ttl_seconds":              -10,
	})
	service := NewSettingsService(store, nil)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 32, settings.Segmentation.MaxSegmentChars)
	assert.Equal(t, 1, settings.Segmentation.MinJoinLength)
	assert.Equal(t, domain.MinPlaybackInterval, settings.Playback.Interval)
	assert.Equal(t, domain.DictionaryIPA, settings.Tokenizer.Dictionary)
	assert.Zero(t, settings.Cache.TTL)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, knownMerger)

	settings := domain.DefaultAppSettings()
	settings.Segmentation = domain.SegmentationSettings{MaxSegmentChars: 40, MinJoinLength: 50}
	settings.Playback.Interval = 333 * time.Millisecond
	settings.Tokenizer.Dictionary = domain.DictionaryUni
	settings.Cache.TTL = 90 * time.Second

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, 32, store.GetInt("segmentation.max_segment_chars"))
	assert.Equal(t, 31, store.GetInt("segmentation.min_join_length"))
	assert.Equal(t, 330, store.GetInt("playback.interval_ms"))
	assert.Equal(t, "uni", store.GetString("tokenizer.dictionary"))
	assert.Equal(t, 90, store.GetInt("cache.ttl_seconds"))
	assert.Equal(t, []string{"merger"}, store.GetStringSlice("segmentation.post_processors"))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 330*time.Millisecond, loaded.Playback.Interval)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), knownMerger)

	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)

	settings := domain.DefaultAppSettings()
	settings.Tokenizer.Dictionary = "neologd"
	assert.ErrorIs(t, service.Save(&settings), domain.ErrUnsupportedDictionary)

	settings = domain.DefaultAppSettings()
	settings.PostProcessors = []string{"missing"}
	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

func TestSettingsService_SetSegmentation(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	got, err := service.SetSegmentation(&domain.SettingsOverride{MaxSegmentChars: domain.Float(10)})
	require.NoError(t, err)
	assert.Equal(t, domain.SegmentationSettings{MaxSegmentChars: 10, MinJoinLength: 4}, got)

	// A later partial update keeps the earlier value.
	got, err = service.SetSegmentation(&domain.SettingsOverride{MinJoinLength: domain.Float(2)})
	require.NoError(t, err)
	assert.Equal(t, domain.SegmentationSettings{MaxSegmentChars: 10, MinJoinLength: 2}, got)

	got, err = service.SetSegmentation(&domain.SettingsOverride{MaxSegmentChars: domain.Float(3), MinJoinLength: domain.Float(99)})
	require.NoError(t, err)
	assert.Equal(t, domain.SegmentationSettings{MaxSegmentChars: 6, MinJoinLength: 5}, got)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, got, settings.Segmentation)
}

func TestSettingsService_SetPlaybackInterval(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	got, err := service.SetPlaybackInterval(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPlaybackInterval, got)

	settings, _ := service.Get()
	assert.Equal(t, domain.MaxPlaybackInterval, settings.Playback.Interval)
}

func TestSettingsService_SetDictionary(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetDictionary(domain.DictionaryUni))
	settings, _ := service.Get()
	assert.Equal(t, domain.DictionaryUni, settings.Tokenizer.Dictionary)

	assert.ErrorIs(t, service.SetDictionary("unknown"), domain.ErrUnsupportedDictionary)
}

func TestSettingsService_SetPostProcessors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), knownMerger)

	require.NoError(t, service.SetPostProcessors([]string{}))
	settings, _ := service.Get()
	assert.Empty(t, settings.PostProcessors)

	assert.ErrorIs(t, service.SetPostProcessors([]string{"merger", "bogus"}), domain.ErrInvalidInput)
}

func TestSettingsService_Reset(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	_, err := service.SetSegmentation(&domain.SettingsOverride{MaxSegmentChars: domain.Float(8)})
	require.NoError(t, err)
	require.NoError(t, service.SetDictionary(domain.DictionaryUni))
	require.NoError(t, store.Set("unrelated.key", "kept"))

	require.NoError(t, service.Reset())

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, "kept", store.GetString("unrelated.key"))
}
