// Package segmentjson imports and exports segment lists as JSON.
//
// Two input shapes are accepted: a flat array of strings, or an array of
// objects carrying a string "text" field. Either way the imported segments
// are renumbered from zero in array order.
package segmentjson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// DefaultFileName is the default name of an exported segment list.
const DefaultFileName = "rsvp-segments.json"

// Normaliser handles JSON segment lists.
type Normaliser struct{}

// New creates a new segment list normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{domain.MIMETypeJSON}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 80
}

// Normalise parses a segment list into a document and its segments.
// The document carries no raw text, so it cannot be re-segmented.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	segments, err := Parse(raw.Content)
	if err != nil {
		return nil, err
	}

	title := extractTitle(raw.URI)
	if t, ok := raw.Metadata["title"].(string); ok && t != "" {
		title = t
	}

	metadata := make(map[string]any, len(raw.Metadata)+1)
	for k, v := range raw.Metadata {
		metadata[k] = v
	}
	metadata["mime_type"] = raw.MIMEType

	now := time.Now()
	return &driven.NormaliseResult{
		Document: domain.Document{
			ID:           uuid.New().String(),
			URI:          raw.URI,
			Title:        title,
			Kind:         domain.DocumentKindSegmentList,
			SegmentCount: len(segments),
			Metadata:     metadata,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		Segments: segments,
	}, nil
}

// Parse decodes a segment list.
//
// An array made only of strings is a flat list and keeps every non-blank
// string. Any other array is read as objects: entries with a non-blank
// string "text" are kept and everything else, bare strings included, is
// dropped. An "id" field is ignored. Text is kept as written and the result
// is renumbered from zero.
func Parse(data []byte) ([]domain.Segment, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, domain.ErrSegmentListNotArray
		}
		return nil, fmt.Errorf("parsing segment list: %w", err)
	}
	if items == nil {
		return nil, domain.ErrSegmentListNotArray
	}

	flat := true
	for _, item := range items {
		if !isString(item) {
			flat = false
			break
		}
	}

	texts := make([]string, 0, len(items))
	for _, item := range items {
		var (
			text string
			ok   bool
		)
		if flat {
			ok = json.Unmarshal(item, &text) == nil
		} else {
			text, ok = objectText(item)
		}
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		texts = append(texts, text)
	}

	if len(texts) == 0 {
		return nil, domain.ErrNoValidSegments
	}
	return domain.NewSegments(texts), nil
}

func isString(item json.RawMessage) bool {
	trimmed := bytes.TrimSpace(item)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

// objectText extracts the string "text" field of an object entry.
func objectText(item json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}

	var obj struct {
		Text *json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil || obj.Text == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(*obj.Text, &s); err != nil {
		return "", false
	}
	return s, true
}

// extractTitle extracts a human-readable title from a URI.
func extractTitle(uri string) string {
	if uri == "" || uri == "-" {
		return "stdin"
	}
	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
