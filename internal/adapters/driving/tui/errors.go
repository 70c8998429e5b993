package tui

import "errors"

// ErrMissingPlayer is returned when the player is not provided.
var ErrMissingPlayer = errors.New("tui: player is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
