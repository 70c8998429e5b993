package mcp

import (
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the MCP server.
type Ports struct {
	// Segment turns text into reading segments.
	Segment driving.SegmentService

	// Document exposes the stored library. Optional.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Segment == nil {
		return ErrMissingSegmentService
	}
	return nil
}
