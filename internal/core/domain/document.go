package domain

import "time"

// DocumentKind records how a document's segments were produced.
type DocumentKind string

const (
	// DocumentKindText is a plain text that was segmented by rsvp.
	// Its Content holds the sanitized raw text, so it can be re-segmented.
	DocumentKindText DocumentKind = "text"

	// DocumentKindSegmentList is an imported JSON segment list.
	// It has no raw text and cannot be re-segmented.
	DocumentKindSegmentList DocumentKind = "segment_list"
)

// IsValid returns true if the kind is recognised.
func (k DocumentKind) IsValid() bool {
	return k == DocumentKindText || k == DocumentKindSegmentList
}

// String returns the string representation.
func (k DocumentKind) String() string {
	return string(k)
}

// Document is a stored text and the segment list produced from it.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title.
	Title string

	// URI is the original location (usually a file path).
	URI string

	// Kind records whether the document came from raw text or a segment list.
	Kind DocumentKind

	// Content is the sanitized raw text. Empty for imported segment lists.
	Content string

	// Settings are the normalised settings the segments were produced with.
	Settings SegmentationSettings

	// Dictionary is the tokenizer dictionary the segments were produced with.
	Dictionary Dictionary

	// SegmentCount is the number of stored segments.
	SegmentCount int

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the document was last re-segmented.
	UpdatedAt time.Time
}

// CanResegment reports whether the document carries raw text that can be
// segmented again with different settings.
func (d *Document) CanResegment() bool {
	return d.Kind == DocumentKindText && d.Content != ""
}
