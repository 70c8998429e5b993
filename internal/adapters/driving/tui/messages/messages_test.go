package messages

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

func TestMessages_Fields(t *testing.T) {
	now := time.Now()
	tick := Tick{Generation: 3, Time: now}
	assert.Equal(t, 3, tick.Generation)
	assert.Equal(t, now, tick.Time)

	loaded := SegmentsLoaded{Title: "猫", Segments: domain.NewSegments([]string{"吾輩は", "猫である。"})}
	assert.Len(t, loaded.Segments, 2)

	saved := IntervalSaved{Interval: 300 * time.Millisecond, Err: errors.New("read-only")}
	assert.EqualError(t, saved.Err, "read-only")

	assert.Error(t, ErrorOccurred{Err: errors.New("boom")}.Err)
}
