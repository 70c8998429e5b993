package domain

import (
	"strings"
	"unicode/utf8"
)

// Segment is one reading chunk shown at a time during rapid serial
// visual presentation.
//
// IDs are dense 0-based positions assigned at the end of every pass.
// They are not stable identifiers and carry no meaning across passes.
type Segment struct {
	// ID is the positional index of the segment.
	ID int `json:"id"`

	// Text is the trimmed, whitespace-collapsed segment text.
	Text string `json:"text"`
}

// CharLen returns the length of s in Unicode code points.
// Every length comparison made during segmentation uses this count.
func CharLen(s string) int {
	return utf8.RuneCountInString(s)
}

// CollapseWhitespace replaces every run of whitespace with a single space
// and trims the result.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NewSegments builds a segment list from texts, numbering them from zero.
func NewSegments(texts []string) []Segment {
	segments := make([]Segment, len(texts))
	for i, text := range texts {
		segments[i] = Segment{ID: i, Text: text}
	}
	return segments
}

// Renumber returns a copy of segments with IDs reassigned from zero in order.
func Renumber(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	for i, seg := range segments {
		out[i] = Segment{ID: i, Text: seg.Text}
	}
	return out
}

// SegmentTexts returns the text of each segment in order.
func SegmentTexts(segments []Segment) []string {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return texts
}
