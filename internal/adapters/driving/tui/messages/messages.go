// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// Tick advances playback by one segment. Ticks from an older generation
// are stale and ignored, so pausing or changing speed never double-steps.
type Tick struct {
	Generation int
	Time       time.Time
}

// SegmentsLoaded replaces the segments being presented.
type SegmentsLoaded struct {
	Title    string
	Segments []domain.Segment
}

// IntervalSaved reports the outcome of persisting a speed change.
type IntervalSaved struct {
	Interval time.Duration
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
