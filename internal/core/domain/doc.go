// Package domain defines the core business entities for rsvp.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Token: A morpheme produced by the external tokenizer
//   - Segment: One reading chunk shown at a time during playback
//   - SegmentationSettings: The tunable length bounds of a segmentation run
//   - Document: A stored text together with its segment list
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
