package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

func loadedPlayer(texts ...string) *Player {
	p := NewPlayer(domain.DefaultPlaybackInterval)
	p.Load(domain.NewSegments(texts))
	return p
}

func TestPlayer_Empty(t *testing.T) {
	p := NewPlayer(0)

	p.Toggle()
	assert.Equal(t, domain.PresentationIdle, p.State())
	assert.False(t, p.Advance())
	assert.Equal(t, domain.Display{Text: displayEmpty, Label: "Idle"}, p.Display())
	assert.Equal(t, domain.MinPlaybackInterval, p.Interval())
	assert.ErrorIs(t, p.Run(context.Background(), func(domain.Segment) {}), domain.ErrNoSegments)
}

func TestPlayer_Lifecycle(t *testing.T) {
	p := loadedPlayer("一", "二", "三")

	assert.Equal(t, domain.Display{Text: "Press Play to Start", Label: "Idle"}, p.Display())

	p.Toggle()
	assert.Equal(t, domain.PresentationPresenting, p.State())
	d := p.Display()
	assert.Equal(t, "一", d.Text)
	assert.Equal(t, "Segment", d.Label)
	assert.InDelta(t, 100.0/3, d.Progress, 0.001)

	p.Toggle()
	assert.Equal(t, domain.PresentationPaused, p.State())
	assert.False(t, p.Advance())
	assert.Equal(t, 0, p.Index())

	p.Toggle()
	assert.True(t, p.Advance())
	assert.True(t, p.Advance())
	assert.Equal(t, 2, p.Index())
	assert.InDelta(t, 100, p.Display().Progress, 0.001)

	assert.False(t, p.Advance())
	assert.Equal(t, domain.PresentationFinished, p.State())
	assert.Equal(t, 2, p.Index())
	assert.Equal(t, domain.Display{Text: "Finished. Press Play to restart.", Label: "Finished", Progress: 100}, p.Display())

	// Playing again from the end starts over.
	p.Toggle()
	assert.Equal(t, domain.PresentationPresenting, p.State())
	assert.Equal(t, 0, p.Index())
}

func TestPlayer_SeekAndStep(t *testing.T) {
	p := loadedPlayer("a", "b", "c", "d")

	p.Seek(10)
	assert.Equal(t, 3, p.Index())
	p.Seek(-4)
	assert.Equal(t, 0, p.Index())
	p.Step(2)
	assert.Equal(t, 2, p.Index())
	p.Step(-5)
	assert.Equal(t, 0, p.Index())

	// Starting from a seeked position that is not the end keeps the position.
	p.Seek(1)
	p.Toggle()
	assert.Equal(t, 1, p.Index())
}

func TestPlayer_SeekOutOfFinished(t *testing.T) {
	p := loadedPlayer("a", "b")
	p.Toggle()
	p.Advance()
	p.Advance()
	require.Equal(t, domain.PresentationFinished, p.State())

	p.Step(-1)
	assert.Equal(t, domain.PresentationPaused, p.State())
	assert.Equal(t, "a", p.Display().Text)
}

func TestPlayer_Restart(t *testing.T) {
	p := loadedPlayer("a", "b", "c")
	p.Seek(2)
	p.Restart()
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, domain.PresentationPresenting, p.State())
}

func TestPlayer_LoadResets(t *testing.T) {
	p := loadedPlayer("a", "b")
	p.Toggle()
	p.Advance()

	p.Load([]domain.Segment{{ID: 9, Text: "x"}})
	assert.Equal(t, domain.PresentationIdle, p.State())
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, 1, p.Len())
}

func TestPlayer_SetInterval(t *testing.T) {
	p := NewPlayer(time.Second)
	assert.Equal(t, domain.MaxPlaybackInterval, p.Interval())
	assert.Equal(t, 120*time.Millisecond, p.SetInterval(123*time.Millisecond))
	assert.Equal(t, 120*time.Millisecond, p.Interval())
}

func TestPlayer_Run(t *testing.T) {
	p := loadedPlayer("今日は", "晴れ", "です。")
	p.SetInterval(domain.MinPlaybackInterval)

	var shown []string
	start := time.Now()
	err := p.Run(context.Background(), func(seg domain.Segment) {
		shown = append(shown, seg.Text)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"今日は", "晴れ", "です。"}, shown)
	assert.Equal(t, domain.PresentationFinished, p.State())
	// Three segments each stay up one interval.
	assert.GreaterOrEqual(t, time.Since(start), 2*domain.MinPlaybackInterval)
}

func TestPlayer_RunCancelled(t *testing.T) {
	p := loadedPlayer("a", "b", "c", "d", "e")
	p.SetInterval(domain.MaxPlaybackInterval)

	ctx, cancel := context.WithCancel(context.Background())
	var shown int
	err := p.Run(ctx, func(domain.Segment) {
		shown++
		cancel()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, shown)
}
