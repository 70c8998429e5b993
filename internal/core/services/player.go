package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driving"
)

// Ensure Player implements the interface.
var _ driving.Player = (*Player)(nil)

// Display texts.
const (
	displayEmpty    = "Load a text or segment list to begin"
	displayIdle     = "Press Play to Start"
	displayFinished = "Finished. Press Play to restart."

	labelIdle     = "Idle"
	labelSegment  = "Segment"
	labelFinished = "Finished"
)

// Player is the presentation state machine for a segment list.
type Player struct {
	mu       sync.Mutex
	segments []domain.Segment
	index    int
	state    domain.PresentationState
	interval time.Duration
}

// NewPlayer creates an idle player with the given interval.
func NewPlayer(interval time.Duration) *Player {
	return &Player{
		interval: domain.ClampInterval(interval),
		state:    domain.PresentationIdle,
	}
}

// Load replaces the segment list and resets to Idle at the first segment.
func (p *Player) Load(segments []domain.Segment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.segments = domain.Renumber(segments)
	p.index = 0
	p.state = domain.PresentationIdle
}

// Toggle starts, pauses or resumes playback.
func (p *Player) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.segments) == 0 {
		return
	}
	switch p.state {
	case domain.PresentationPresenting:
		p.state = domain.PresentationPaused
	case domain.PresentationPaused:
		p.state = domain.PresentationPresenting
	default:
		if p.index >= len(p.segments)-1 {
			p.index = 0
		}
		p.state = domain.PresentationPresenting
	}
}

// Restart jumps to the first segment and starts playback.
func (p *Player) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.segments) == 0 {
		return
	}
	p.index = 0
	p.state = domain.PresentationPresenting
}

// Seek moves to index, clamped to the segment range.
func (p *Player) Seek(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seek(index)
}

// Step moves delta segments forward or backward.
func (p *Player) Step(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seek(p.index + delta)
}

func (p *Player) seek(index int) {
	if len(p.segments) == 0 {
		return
	}
	p.index = max(0, min(index, len(p.segments)-1))
	if p.state == domain.PresentationFinished && p.index < len(p.segments)-1 {
		p.state = domain.PresentationPaused
	}
}

// Advance moves to the next segment while presenting. Reaching the end
// switches to Finished and keeps the last index.
func (p *Player) Advance() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != domain.PresentationPresenting || len(p.segments) == 0 {
		return false
	}
	if p.index >= len(p.segments)-1 {
		p.state = domain.PresentationFinished
		return false
	}
	p.index++
	return true
}

// SetInterval sets the time each segment is shown and returns it clamped.
func (p *Player) SetInterval(interval time.Duration) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interval = domain.ClampInterval(interval)
	return p.interval
}

// Interval returns the time each segment is shown.
func (p *Player) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// State returns the presentation state.
func (p *Player) State() domain.PresentationState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Index returns the current segment index.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Len returns the number of loaded segments.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.segments)
}

// Display returns what should be shown right now.
func (p *Player) Display() domain.Display {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.segments) == 0 {
		return domain.Display{Text: displayEmpty, Label: labelIdle}
	}

	switch p.state {
	case domain.PresentationPresenting, domain.PresentationPaused:
		return domain.Display{
			Text:     p.segments[p.index].Text,
			Label:    labelSegment,
			Progress: float64(p.index+1) / float64(len(p.segments)) * 100,
		}
	case domain.PresentationFinished:
		return domain.Display{Text: displayFinished, Label: labelFinished, Progress: 100}
	default:
		return domain.Display{Text: displayIdle, Label: labelIdle}
	}
}

// Run plays from the current position to the end, calling emit for each
// shown segment. The interval is read before every wait, so SetInterval
// takes effect on the next segment.
func (p *Player) Run(ctx context.Context, emit func(domain.Segment)) error {
	if p.Len() == 0 {
		return domain.ErrNoSegments
	}
	if p.State() != domain.PresentationPresenting {
		p.Toggle()
	}

	interval := p.Interval()
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	// Drain the initial burst so the first segment stays up a full interval.
	limiter.Allow()

	for {
		if seg, ok := p.current(); ok {
			emit(seg)
		}

		if next := p.Interval(); next != interval {
			interval = next
			limiter.SetLimit(rate.Every(interval))
		}
		if err := limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}

		if !p.Advance() {
			if p.State() == domain.PresentationFinished {
				return nil
			}
			// Paused from elsewhere: wait for resume.
			if err := p.waitWhilePaused(ctx); err != nil {
				return err
			}
		}
	}
}

// current returns the segment to show while presenting.
func (p *Player) current() (domain.Segment, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != domain.PresentationPresenting || len(p.segments) == 0 {
		return domain.Segment{}, false
	}
	return p.segments[p.index], true
}

func (p *Player) waitWhilePaused(ctx context.Context) error {
	ticker := time.NewTicker(domain.MinPlaybackInterval)
	defer ticker.Stop()
	for {
		switch p.State() {
		case domain.PresentationPresenting:
			return nil
		case domain.PresentationFinished:
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
