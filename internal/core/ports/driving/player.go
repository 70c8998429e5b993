package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// Player drives the fixed-interval presentation of a segment list.
// Implementations are safe for concurrent use.
type Player interface {
	// Load replaces the segment list and resets to Idle at the first segment.
	Load(segments []domain.Segment)

	// Toggle starts, pauses or resumes playback. Starting from the last
	// segment restarts at the first. It does nothing without segments.
	Toggle()

	// Restart jumps to the first segment and starts playback.
	Restart()

	// Seek moves to index, clamped to the segment range.
	Seek(index int)

	// Step moves delta segments forward or backward.
	Step(delta int)

	// Advance moves to the next segment while presenting and reports
	// whether playback is still running.
	Advance() bool

	// SetInterval sets the time each segment is shown and returns it clamped.
	SetInterval(interval time.Duration) time.Duration

	// Interval returns the time each segment is shown.
	Interval() time.Duration

	// State returns the presentation state.
	State() domain.PresentationState

	// Index returns the current segment index.
	Index() int

	// Len returns the number of loaded segments.
	Len() int

	// Display returns what should be shown right now.
	Display() domain.Display

	// Run plays from the current position to the end, calling emit for each
	// shown segment at the configured interval. It returns when playback
	// finishes or ctx is done.
	Run(ctx context.Context, emit func(domain.Segment)) error
}
