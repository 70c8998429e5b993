package driving

import (
	"context"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// SegmentService turns raw text into reading segments.
type SegmentService interface {
	// Segment splits text into segments. Fields of override that are nil
	// fall back to the configured settings, then to the defaults.
	Segment(ctx context.Context, text string, override *domain.SettingsOverride) (*SegmentResult, error)

	// EffectiveSettings returns the normalised settings a call with override would use.
	EffectiveSettings(override *domain.SettingsOverride) domain.SegmentationSettings
}

// SegmentResult is the outcome of a segmentation request.
type SegmentResult struct {
	// Segments is the final segment list, numbered from zero.
	Segments []domain.Segment

	// Settings are the normalised settings that were applied.
	Settings domain.SegmentationSettings

	// Tokenizer names the tokenizer and dictionary used.
	Tokenizer string

	// Cached reports whether the result was served from the cache.
	Cached bool
}
