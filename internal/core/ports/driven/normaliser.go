package driven

import (
	"context"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// Normaliser transforms imported files into documents.
// Each normaliser handles specific MIME types (plain text, JSON segment lists).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise transforms a raw document into a document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Text imports produce a Document with Content and no Segments; segmentation
// is handled by the segmenter. Segment list imports produce Segments directly.
type NormaliseResult struct {
	// Document is the normalised document.
	Document domain.Document

	// Segments is the imported segment list, if the file carried one.
	Segments []domain.Segment
}
