// Package merger provides the second segmentation pass: it glues stray
// punctuation and short fragments onto their predecessor and splits
// anything longer than the limit.
package merger

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rsvp-cli/internal/segmenter/chunk"
)

// Ensure Processor implements the interface.
var _ driven.SegmentPostProcessor = (*Processor)(nil)

// Name is the registry name of the merger.
const Name = "merger"

// punctuationSlack is how far a punctuation-only fragment may push its
// predecessor past the length limit.
const punctuationSlack = 1

// Processor merges and splits raw chunks.
// It implements the SegmentPostProcessor interface.
type Processor struct {
	logger *zap.Logger
}

// Option configures the merger processor.
type Option func(*Processor)

// WithLogger sets the logger used for merge decisions.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a new merger processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process rewrites raw chunks in a single left-to-right pass.
//
// Every output chunk is at most MaxSegmentChars long, except that a
// punctuation-only fragment may extend its predecessor by one code point.
// Output IDs are renumbered from zero. Running Process on its own output
// returns the same list.
//
// Pieces cut off by the oversize split are trimmed and then go through the
// punctuation and short-fragment rules like any other fragment. A trailing
// "！" left over by a split is therefore glued onto the piece before it
// rather than kept on its own; that is what makes a second pass a no-op.
func (p *Processor) Process(_ context.Context, segments []domain.Segment, settings domain.SegmentationSettings) ([]domain.Segment, error) {
	maxChars := settings.MaxSegmentChars
	merged := make([]string, 0, len(segments))

	// mergeInto glues text onto the last entry when the result is at most
	// limit code points long.
	mergeInto := func(text string, limit int, reason string) bool {
		if len(merged) == 0 {
			return false
		}
		last := merged[len(merged)-1]
		if domain.CharLen(last)+domain.CharLen(text) > limit {
			return false
		}
		merged[len(merged)-1] = last + text
		p.logger.Debug(reason, zap.String("into", last), zap.String("text", text))
		return true
	}

	// place merges a trimmed fragment onto its predecessor when a rule
	// allows it and appends it otherwise.
	place := func(text string) {
		if chunk.IsPunctuationOnly(text) && mergeInto(text, maxChars+punctuationSlack, "merged punctuation") {
			return
		}
		if domain.CharLen(text) < settings.MinJoinLength && mergeInto(text, maxChars, "merged short fragment") {
			return
		}
		merged = append(merged, text)
	}

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		if chunk.IsPunctuationOnly(text) && mergeInto(text, maxChars+punctuationSlack, "merged punctuation") {
			continue
		}
		if domain.CharLen(text) < settings.MinJoinLength && mergeInto(text, maxChars, "merged short fragment") {
			continue
		}

		for _, piece := range chunk.SplitOversized(text, maxChars) {
			if piece = strings.TrimSpace(piece); piece != "" {
				place(piece)
			}
		}
	}

	return domain.NewSegments(merged), nil
}
