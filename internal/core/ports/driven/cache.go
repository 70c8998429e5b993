package driven

import (
	"context"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// SegmentCache memoises segmentation results.
// Keys are derived from the sanitized text, the normalised settings and the
// tokenizer name, so equal keys always produce equal results.
type SegmentCache interface {
	// GetOrCompute returns the cached segments for key, or calls compute and
	// stores its result. Concurrent calls for the same key share one compute.
	// The boolean reports whether the result came from the cache.
	GetOrCompute(ctx context.Context, key string, compute func(context.Context) ([]domain.Segment, error)) ([]domain.Segment, bool, error)

	// Len returns the number of cached entries.
	Len() int

	// Clear removes every entry.
	Clear()
}
