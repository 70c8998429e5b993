package segmentjson

import (
	"encoding/json"
	"io"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// ExportFormat selects the shape of an exported segment list.
type ExportFormat int

const (
	// ExportFlat writes a flat array of strings.
	ExportFlat ExportFormat = iota

	// ExportWithIDs writes an array of {"id", "text"} objects.
	ExportWithIDs
)

// Export writes segments as indented JSON. Both formats can be imported again.
func Export(w io.Writer, segments []domain.Segment, format ExportFormat) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if format == ExportWithIDs {
		return enc.Encode(domain.Renumber(segments))
	}
	return enc.Encode(domain.SegmentTexts(segments))
}
