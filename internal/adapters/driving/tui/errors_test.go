package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	assert.EqualError(t, ErrMissingPlayer, "tui: player is required")
	assert.EqualError(t, ErrInvalidPorts, "tui: invalid ports configuration")
}
