package driven

import (
	"context"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// SegmentPostProcessor rewrites the raw chunk list produced by the builder.
// Post-processors are chained in a pipeline (e.g., merging, splitting).
type SegmentPostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes the chunks of one segmentation run and returns the
	// rewritten list. Returned IDs must be dense and start at zero.
	Process(ctx context.Context, segments []domain.Segment, settings domain.SegmentationSettings) ([]domain.Segment, error)
}
