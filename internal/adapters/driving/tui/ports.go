// Package tui provides the interactive terminal reader for rsvp.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Player drives segment presentation.
	Player driving.Player

	// Settings persists speed changes. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(player driving.Player, settings driving.SettingsService) *Ports {
	return &Ports{
		Player:   player,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Player == nil {
		return ErrMissingPlayer
	}
	return nil
}
