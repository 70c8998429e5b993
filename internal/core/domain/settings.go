package domain

import (
	"math"
	"time"
)

// Segmentation bounds.
const (
	// DefaultMaxSegmentChars is the default upper bound on segment length.
	DefaultMaxSegmentChars = 16

	// DefaultMinJoinLength is the default length below which a fragment is
	// merged into its predecessor.
	DefaultMinJoinLength = 4

	// MinMaxSegmentChars is the smallest allowed MaxSegmentChars.
	MinMaxSegmentChars = 6

	// MaxMaxSegmentChars is the largest allowed MaxSegmentChars.
	MaxMaxSegmentChars = 32

	// minSoftBreakThreshold is the floor of the derived soft-break threshold.
	minSoftBreakThreshold = 3
)

// SegmentationSettings holds the tunable parameters of a segmentation run.
//
// After Normalize, 6 <= MaxSegmentChars <= 32 and
// 1 <= MinJoinLength <= max(1, MaxSegmentChars-1).
type SegmentationSettings struct {
	// MaxSegmentChars is the maximum segment length in code points.
	MaxSegmentChars int `json:"max_segment_chars"`

	// MinJoinLength is the minimum length for a fragment to stay separate.
	MinJoinLength int `json:"min_join_length"`
}

// SettingsOverride is a partial set of segmentation settings.
// Nil fields take their defaults. Values are rounded and clamped, and NaN
// clamps to the lower bound.
type SettingsOverride struct {
	MaxSegmentChars *float64
	MinJoinLength   *float64
}

// DefaultSegmentationSettings returns the default segmentation settings.
func DefaultSegmentationSettings() SegmentationSettings {
	return SegmentationSettings{
		MaxSegmentChars: DefaultMaxSegmentChars,
		MinJoinLength:   DefaultMinJoinLength,
	}
}

// NormalizeSettings fills missing fields with defaults and clamps every
// value into range. It never fails.
func NormalizeSettings(override *SettingsOverride) SegmentationSettings {
	maxChars := float64(DefaultMaxSegmentChars)
	minJoin := float64(DefaultMinJoinLength)
	if override != nil {
		if override.MaxSegmentChars != nil {
			maxChars = *override.MaxSegmentChars
		}
		if override.MinJoinLength != nil {
			minJoin = *override.MinJoinLength
		}
	}

	maxSegmentChars := clampRound(maxChars, MinMaxSegmentChars, MaxMaxSegmentChars)
	minJoinLength := clampRound(minJoin, 1, max(1, maxSegmentChars-1))

	return SegmentationSettings{
		MaxSegmentChars: maxSegmentChars,
		MinJoinLength:   minJoinLength,
	}
}

// Normalize returns s with both fields clamped into range.
func (s SegmentationSettings) Normalize() SegmentationSettings {
	return NormalizeSettings(s.Override())
}

// Override converts s into a fully populated override.
func (s SegmentationSettings) Override() *SettingsOverride {
	maxChars := float64(s.MaxSegmentChars)
	minJoin := float64(s.MinJoinLength)
	return &SettingsOverride{
		MaxSegmentChars: &maxChars,
		MinJoinLength:   &minJoin,
	}
}

// SoftBreakThreshold derives the fill level at which a soft boundary ends a
// segment: clamp(round(max/3), 3, max(3, max-2)).
func (s SegmentationSettings) SoftBreakThreshold() int {
	approx := math.Round(float64(s.MaxSegmentChars) / 3)
	upper := max(minSoftBreakThreshold, s.MaxSegmentChars-2)
	return clampRound(approx, minSoftBreakThreshold, upper)
}

// clampRound rounds v to the nearest integer and clamps it to [lo, hi].
// NaN maps to lo.
func clampRound(v float64, lo, hi int) int {
	if math.IsNaN(v) {
		return lo
	}
	v = math.Round(v)
	if v < float64(lo) {
		return lo
	}
	if v > float64(hi) {
		return hi
	}
	return int(v)
}

// Float returns a pointer to v, for building overrides.
func Float(v float64) *float64 {
	return &v
}

// Playback interval bounds.
const (
	// DefaultPlaybackInterval is the default time each segment is shown.
	DefaultPlaybackInterval = 400 * time.Millisecond

	// MinPlaybackInterval is the fastest allowed playback interval.
	MinPlaybackInterval = 50 * time.Millisecond

	// MaxPlaybackInterval is the slowest allowed playback interval.
	MaxPlaybackInterval = 500 * time.Millisecond

	// PlaybackIntervalStep is the granularity of interval changes.
	PlaybackIntervalStep = 10 * time.Millisecond
)

// PlaybackSettings holds presentation configuration.
type PlaybackSettings struct {
	// Interval is how long each segment stays on screen.
	Interval time.Duration
}

// ClampInterval snaps d to the playback step and clamps it to the allowed range.
func ClampInterval(d time.Duration) time.Duration {
	d = d.Round(PlaybackIntervalStep)
	if d < MinPlaybackInterval {
		return MinPlaybackInterval
	}
	if d > MaxPlaybackInterval {
		return MaxPlaybackInterval
	}
	return d
}

// Dictionary identifies the morphological dictionary used by the tokenizer.
type Dictionary string

// Available dictionaries.
const (
	// DictionaryIPA is the IPA dictionary (MeCab-compatible part-of-speech tags).
	DictionaryIPA Dictionary = "ipa"

	// DictionaryUni is the UniDic dictionary.
	DictionaryUni Dictionary = "uni"
)

// AllDictionaries returns every supported dictionary.
func AllDictionaries() []Dictionary {
	return []Dictionary{DictionaryIPA, DictionaryUni}
}

// IsValid returns true if the dictionary is recognised.
func (d Dictionary) IsValid() bool {
	switch d {
	case DictionaryIPA, DictionaryUni:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d Dictionary) String() string {
	return string(d)
}

// Description returns a human-readable description of the dictionary.
func (d Dictionary) Description() string {
	switch d {
	case DictionaryIPA:
		return "IPA (MeCab compatible)"
	case DictionaryUni:
		return "UniDic"
	default:
		return "Unknown"
	}
}

// TokenizerSettings holds tokenizer configuration.
type TokenizerSettings struct {
	// Dictionary selects the morphological dictionary.
	Dictionary Dictionary
}

// CacheSettings holds segmentation cache configuration.
type CacheSettings struct {
	// TTL is how long a cached segmentation result is kept.
	// Zero disables caching.
	TTL time.Duration
}

// DefaultCacheTTL is the default lifetime of cached segmentation results.
const DefaultCacheTTL = 2 * time.Minute

// DefaultPostProcessors is the default post-processing pipeline.
var DefaultPostProcessors = []string{"merger"}

// AppSettings holds all application settings.
type AppSettings struct {
	// Segmentation holds the segmentation length bounds.
	Segmentation SegmentationSettings

	// Playback holds presentation settings.
	Playback PlaybackSettings

	// Tokenizer holds tokenizer settings.
	Tokenizer TokenizerSettings

	// Cache holds segmentation cache settings.
	Cache CacheSettings

	// PostProcessors names the post-processors run after chunk building, in order.
	PostProcessors []string
}

// DefaultAppSettings returns the default application settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Segmentation:   DefaultSegmentationSettings(),
		Playback:       PlaybackSettings{Interval: DefaultPlaybackInterval},
		Tokenizer:      TokenizerSettings{Dictionary: DictionaryIPA},
		Cache:          CacheSettings{TTL: DefaultCacheTTL},
		PostProcessors: append([]string(nil), DefaultPostProcessors...),
	}
}
