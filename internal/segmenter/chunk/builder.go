package chunk

import (
	"strings"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// Builder accumulates tokens into raw chunks.
//
// A chunk ends at a hard boundary, when it reaches the length limit, at a
// soft boundary once it holds at least the soft-break threshold, and at the
// end of every paragraph. A hard boundary token is never pushed into the
// next chunk, so a chunk may exceed the limit by one hard token; the
// post-processor restores the bound.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	settings      domain.SegmentationSettings
	softThreshold int

	buffer   []string
	length   int
	segments []domain.Segment
}

// NewBuilder creates a builder for normalised settings.
func NewBuilder(settings domain.SegmentationSettings) *Builder {
	return &Builder{
		settings:      settings,
		softThreshold: settings.SoftBreakThreshold(),
	}
}

// Feed processes the tokens of one paragraph. The current chunk is always
// closed once the paragraph ends.
func (b *Builder) Feed(tokens []domain.Token) {
	last := len(tokens) - 1
	for i, token := range tokens {
		surface := strings.TrimSpace(token.Surface)
		if surface == "" {
			continue
		}

		tokenLen := domain.CharLen(surface)
		boundary := Classify(token)

		willExceed := b.length > 0 && b.length+tokenLen > b.settings.MaxSegmentChars
		if willExceed && boundary != domain.BoundaryHard {
			b.Flush()
		}

		b.buffer = append(b.buffer, surface)
		b.length += tokenLen

		switch {
		case boundary == domain.BoundaryHard,
			b.length >= b.settings.MaxSegmentChars,
			boundary == domain.BoundarySoft && b.length >= b.softThreshold,
			i == last:
			b.Flush()
		}
	}
	b.Flush()
}

// Flush closes the current chunk. The buffered pieces are joined, whitespace
// runs collapse to one space, and the result is trimmed. Empty results are
// dropped. The buffer is always reset, so calling Flush twice is harmless.
func (b *Builder) Flush() {
	text := domain.CollapseWhitespace(strings.Join(b.buffer, ""))
	b.buffer = b.buffer[:0]
	b.length = 0

	if text == "" {
		return
	}
	b.segments = append(b.segments, domain.Segment{ID: len(b.segments), Text: text})
}

// Segments returns the raw chunks emitted so far, in order.
// Pending buffered tokens are not included until Flush.
func (b *Builder) Segments() []domain.Segment {
	return b.segments
}
