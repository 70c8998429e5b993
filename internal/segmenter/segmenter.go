package segmenter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rsvp-cli/internal/postprocessors/merger"
	"github.com/custodia-labs/rsvp-cli/internal/segmenter/chunk"
)

// Segmenter runs the two-pass segmentation pipeline.
type Segmenter struct {
	tokenizer     driven.Tokenizer
	postProcessor driven.SegmentPostProcessor
	logger        *zap.Logger
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithPostProcessor replaces the default merger with processor.
func WithPostProcessor(processor driven.SegmentPostProcessor) Option {
	return func(s *Segmenter) {
		if processor != nil {
			s.postProcessor = processor
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Segmenter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a segmenter that tokenizes with tokenizer.
func New(tokenizer driven.Tokenizer, opts ...Option) *Segmenter {
	s := &Segmenter{
		tokenizer: tokenizer,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.postProcessor == nil {
		s.postProcessor = merger.New(merger.WithLogger(s.logger))
	}
	return s
}

// TokenizerName returns the name of the underlying tokenizer.
func (s *Segmenter) TokenizerName() string {
	return s.tokenizer.Name()
}

// Segment splits rawText into reading chunks.
//
// Empty or whitespace-only text yields an empty list without touching the
// tokenizer. Settings are normalised, so any override is accepted.
// Tokenizer failures are returned wrapped; a paragraph that yields no
// tokens is skipped.
func (s *Segmenter) Segment(ctx context.Context, rawText string, override *domain.SettingsOverride) ([]domain.Segment, error) {
	if strings.TrimSpace(rawText) == "" {
		return []domain.Segment{}, nil
	}

	sanitized := Sanitize(rawText)
	if sanitized == "" {
		return []domain.Segment{}, nil
	}

	if err := s.tokenizer.WaitReady(ctx); err != nil {
		return nil, fmt.Errorf("waiting for tokenizer: %w", err)
	}

	settings := domain.NormalizeSettings(override)
	start := time.Now()

	builder := chunk.NewBuilder(settings)
	paragraphs := SplitParagraphs(sanitized)
	for _, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			builder.Flush()
			continue
		}

		tokens, err := s.tokenizer.Query(ctx, paragraph)
		if err != nil {
			return nil, fmt.Errorf("tokenizing paragraph: %w", err)
		}
		builder.Feed(tokens)
	}
	builder.Flush()

	raw := builder.Segments()
	segments, err := s.postProcessor.Process(ctx, raw, settings)
	if err != nil {
		return nil, fmt.Errorf("post-processing segments: %w", err)
	}

	s.logger.Debug("segmented text",
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("raw_segments", len(raw)),
		zap.Int("segments", len(segments)),
		zap.Int("max_segment_chars", settings.MaxSegmentChars),
		zap.Int("min_join_length", settings.MinJoinLength),
		zap.Duration("elapsed", time.Since(start)),
	)

	if segments == nil {
		segments = []domain.Segment{}
	}
	return segments, nil
}
