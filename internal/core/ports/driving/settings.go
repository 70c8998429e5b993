package driving

import (
	"time"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	// Stored values are normalised; unknown or invalid values fall back to defaults.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetSegmentation merges override into the stored segmentation settings
	// and returns the normalised result.
	SetSegmentation(override *domain.SettingsOverride) (domain.SegmentationSettings, error)

	// SetPlaybackInterval stores the playback interval and returns it clamped.
	SetPlaybackInterval(interval time.Duration) (time.Duration, error)

	// SetDictionary selects the tokenizer dictionary.
	SetDictionary(dictionary domain.Dictionary) error

	// SetPostProcessors sets the post-processing pipeline.
	SetPostProcessors(names []string) error

	// Reset removes every stored setting so the defaults apply again.
	Reset() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
