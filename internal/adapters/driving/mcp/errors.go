// Package mcp provides an MCP (Model Context Protocol) server adapter for rsvp.
// It lets AI assistants segment Japanese text and read stored segment lists.
package mcp

import "errors"

// ErrMissingSegmentService is returned when the segment service is not provided.
var ErrMissingSegmentService = errors.New("mcp: segment service is required")

// ErrDocumentsUnavailable is returned by document tools when no document
// service is configured.
var ErrDocumentsUnavailable = errors.New("mcp: document library is not available")
