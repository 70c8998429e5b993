package domain

// RawDocument represents the unparsed bytes of an imported file.
// It is the input of a normaliser.
type RawDocument struct {
	// URI is the original location (file path, "-" for stdin).
	URI string

	// MIMEType is the content type (one of the MIMEType constants).
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains importer-specific key-value pairs.
	// A "title" entry overrides the title derived from the URI.
	Metadata map[string]any
}

// Supported MIME types.
const (
	// MIMETypeText is a plain UTF-8 text file.
	MIMETypeText = "text/plain"

	// MIMETypeMarkdown is a Markdown file, read as text.
	MIMETypeMarkdown = "text/markdown"

	// MIMETypeJSON is a JSON segment list.
	MIMETypeJSON = "application/json"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// String returns the string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// RawDocumentChange represents a change event for a watched file.
type RawDocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Document is the affected document. Content is empty for deletions.
	Document RawDocument
}
