package domain

// PresentationState is the state of segment playback.
type PresentationState int

const (
	// PresentationIdle means playback has not started.
	PresentationIdle PresentationState = iota

	// PresentationPresenting means segments are advancing.
	PresentationPresenting

	// PresentationPaused means playback is suspended at the current segment.
	PresentationPaused

	// PresentationFinished means the last segment has been shown.
	PresentationFinished
)

// String returns the string representation of the state.
func (s PresentationState) String() string {
	switch s {
	case PresentationIdle:
		return "idle"
	case PresentationPresenting:
		return "presenting"
	case PresentationPaused:
		return "paused"
	case PresentationFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Display is what a presentation surface should show at a given moment.
type Display struct {
	// Text is the main text to render.
	Text string

	// Label describes the state ("Idle", "Segment", "Finished").
	Label string

	// Progress is the completion percentage in [0, 100].
	Progress float64
}
