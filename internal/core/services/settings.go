package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyMaxSegmentChars = "segmentation.max_segment_chars"
	keyMinJoinLength   = "segmentation.min_join_length"
	keyPostProcessors  = "segmentation.post_processors"
	keyIntervalMS      = "playback.interval_ms"
	keyDictionary      = "tokenizer.dictionary"
	keyCacheTTL        = "cache.ttl_seconds"
)

// allKeys lists every key the service owns, for Reset.
var allKeys = []string{
	keyMaxSegmentChars,
	keyMinJoinLength,
	keyPostProcessors,
	keyIntervalMS,
	keyDictionary,
	keyCacheTTL,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	// knownPostProcessors validates post-processor names when set.
	knownPostProcessors func(name string) bool
}

// NewSettingsService creates a new settings service.
// known reports whether a post-processor name exists; nil accepts any name.
func NewSettingsService(configStore driven.ConfigStore, known func(name string) bool) *SettingsService {
	return &SettingsService{
		configStore:         configStore,
		knownPostProcessors: known,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	segmentation := domain.SegmentationSettings{
		MaxSegmentChars: s.getInt(keyMaxSegmentChars, defaults.Segmentation.MaxSegmentChars),
		MinJoinLength:   s.getInt(keyMinJoinLength, defaults.Segmentation.MinJoinLength),
	}.Normalize()

	interval := defaults.Playback.Interval
	if ms := s.configStore.GetInt(keyIntervalMS); ms != 0 {
		interval = domain.ClampInterval(time.Duration(ms) * time.Millisecond)
	}

	ttl := defaults.Cache.TTL
	if _, ok := s.configStore.Get(keyCacheTTL); ok {
		ttl = time.Duration(max(0, s.configStore.GetInt(keyCacheTTL))) * time.Second
	}

	postProcessors := defaults.PostProcessors
	if _, ok := s.configStore.Get(keyPostProcessors); ok {
		postProcessors = s.configStore.GetStringSlice(keyPostProcessors)
	}

	return &domain.AppSettings{
		Segmentation:   segmentation,
		Playback:       domain.PlaybackSettings{Interval: interval},
		Tokenizer:      domain.TokenizerSettings{Dictionary: s.getDictionary(defaults.Tokenizer.Dictionary)},
		Cache:          domain.CacheSettings{TTL: ttl},
		PostProcessors: postProcessors,
	}, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if !settings.Tokenizer.Dictionary.IsValid() {
		return fmt.Errorf("invalid dictionary %q: %w", settings.Tokenizer.Dictionary, domain.ErrUnsupportedDictionary)
	}
	if err := s.validatePostProcessors(settings.PostProcessors); err != nil {
		return err
	}

	segmentation := settings.Segmentation.Normalize()
	if err := s.configStore.Set(keyMaxSegmentChars, segmentation.MaxSegmentChars); err != nil {
		return fmt.Errorf("save max segment chars: %w", err)
	}
	if err := s.configStore.Set(keyMinJoinLength, segmentation.MinJoinLength); err != nil {
		return fmt.Errorf("save min join length: %w", err)
	}
	if err := s.configStore.Set(keyPostProcessors, settings.PostProcessors); err != nil {
		return fmt.Errorf("save post processors: %w", err)
	}

	interval := domain.ClampInterval(settings.Playback.Interval)
	if err := s.configStore.Set(keyIntervalMS, int(interval/time.Millisecond)); err != nil {
		return fmt.Errorf("save playback interval: %w", err)
	}
	if err := s.configStore.Set(keyDictionary, settings.Tokenizer.Dictionary.String()); err != nil {
		return fmt.Errorf("save dictionary: %w", err)
	}
	if err := s.configStore.Set(keyCacheTTL, int(max(0, settings.Cache.TTL)/time.Second)); err != nil {
		return fmt.Errorf("save cache ttl: %w", err)
	}

	return nil
}

// SetSegmentation merges override into the stored segmentation settings.
func (s *SettingsService) SetSegmentation(override *domain.SettingsOverride) (domain.SegmentationSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return domain.SegmentationSettings{}, err
	}

	merged := settings.Segmentation.Override()
	if override != nil {
		if override.MaxSegmentChars != nil {
			merged.MaxSegmentChars = override.MaxSegmentChars
		}
		if override.MinJoinLength != nil {
			merged.MinJoinLength = override.MinJoinLength
		}
	}
	normalized := domain.NormalizeSettings(merged)

	if err := s.configStore.Set(keyMaxSegmentChars, normalized.MaxSegmentChars); err != nil {
		return domain.SegmentationSettings{}, fmt.Errorf("save max segment chars: %w", err)
	}
	if err := s.configStore.Set(keyMinJoinLength, normalized.MinJoinLength); err != nil {
		return domain.SegmentationSettings{}, fmt.Errorf("save min join length: %w", err)
	}
	return normalized, nil
}

// SetPlaybackInterval stores the playback interval and returns it clamped.
func (s *SettingsService) SetPlaybackInterval(interval time.Duration) (time.Duration, error) {
	clamped := domain.ClampInterval(interval)
	if err := s.configStore.Set(keyIntervalMS, int(clamped/time.Millisecond)); err != nil {
		return 0, fmt.Errorf("save playback interval: %w", err)
	}
	return clamped, nil
}

// SetDictionary selects the tokenizer dictionary.
func (s *SettingsService) SetDictionary(dictionary domain.Dictionary) error {
	if !dictionary.IsValid() {
		return fmt.Errorf("invalid dictionary %q: %w", dictionary, domain.ErrUnsupportedDictionary)
	}
	if err := s.configStore.Set(keyDictionary, dictionary.String()); err != nil {
		return fmt.Errorf("save dictionary: %w", err)
	}
	return nil
}

// SetPostProcessors sets the post-processing pipeline.
func (s *SettingsService) SetPostProcessors(names []string) error {
	if err := s.validatePostProcessors(names); err != nil {
		return err
	}
	if err := s.configStore.Set(keyPostProcessors, names); err != nil {
		return fmt.Errorf("save post processors: %w", err)
	}
	return nil
}

// Reset removes every stored setting so the defaults apply again.
func (s *SettingsService) Reset() error {
	for _, key := range allKeys {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) validatePostProcessors(names []string) error {
	if s.knownPostProcessors == nil {
		return nil
	}
	for _, name := range names {
		if !s.knownPostProcessors(name) {
			return fmt.Errorf("unknown post-processor %q: %w", name, domain.ErrInvalidInput)
		}
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDictionary(defaultVal domain.Dictionary) domain.Dictionary {
	val := s.configStore.GetString(keyDictionary)
	if val == "" {
		return defaultVal
	}
	dictionary := domain.Dictionary(val)
	if !dictionary.IsValid() {
		return defaultVal
	}
	return dictionary
}
