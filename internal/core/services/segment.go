package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driving"
	"github.com/custodia-labs/rsvp-cli/internal/metrics"
	"github.com/custodia-labs/rsvp-cli/internal/segmenter"
)

// Ensure SegmentService implements the interface.
var _ driving.SegmentService = (*SegmentService)(nil)

// TextSegmenter is the segmentation pipeline used by SegmentService.
// *segmenter.Segmenter implements it.
type TextSegmenter interface {
	Segment(ctx context.Context, rawText string, override *domain.SettingsOverride) ([]domain.Segment, error)
	TokenizerName() string
}

// SegmentService segments text with the configured settings, optionally
// memoising results.
type SegmentService struct {
	segmenter TextSegmenter
	cache     driven.SegmentCache
	base      domain.SegmentationSettings
	logger    *zap.Logger
}

// SegmentOption configures a SegmentService.
type SegmentOption func(*SegmentService)

// WithSegmentCache enables result caching.
func WithSegmentCache(cache driven.SegmentCache) SegmentOption {
	return func(s *SegmentService) {
		s.cache = cache
	}
}

// WithBaseSettings sets the settings used for fields a request leaves unset.
func WithBaseSettings(settings domain.SegmentationSettings) SegmentOption {
	return func(s *SegmentService) {
		s.base = settings.Normalize()
	}
}

// WithSegmentLogger sets the logger.
func WithSegmentLogger(logger *zap.Logger) SegmentOption {
	return func(s *SegmentService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSegmentService creates a new segment service.
func NewSegmentService(seg TextSegmenter, opts ...SegmentOption) *SegmentService {
	s := &SegmentService{
		segmenter: seg,
		base:      domain.DefaultSegmentationSettings(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EffectiveSettings returns the normalised settings a call with override would use.
func (s *SegmentService) EffectiveSettings(override *domain.SettingsOverride) domain.SegmentationSettings {
	return domain.NormalizeSettings(s.mergeOverride(override))
}

// Segment splits text into segments.
func (s *SegmentService) Segment(
	ctx context.Context,
	text string,
	override *domain.SettingsOverride,
) (*driving.SegmentResult, error) {
	if s.segmenter == nil {
		return nil, domain.ErrNotImplemented
	}

	settings := s.EffectiveSettings(override)
	result := &driving.SegmentResult{
		Settings:  settings,
		Tokenizer: s.segmenter.TokenizerName(),
	}

	sanitized := segmenter.Sanitize(text)
	if sanitized == "" {
		result.Segments = []domain.Segment{}
		return result, nil
	}

	compute := func(ctx context.Context) ([]domain.Segment, error) {
		start := time.Now()
		segments, err := s.segmenter.Segment(ctx, sanitized, settings.Override())
		if err != nil {
			return nil, err
		}
		metrics.RecordSegmentation(result.Tokenizer, len(segments), time.Since(start))
		return segments, nil
	}

	var (
		segments []domain.Segment
		err      error
	)
	if s.cache != nil {
		segments, result.Cached, err = s.cache.GetOrCompute(ctx, s.cacheKey(result.Tokenizer, settings, sanitized), compute)
	} else {
		segments, err = compute(ctx)
	}
	if err != nil {
		metrics.RecordRequest(metrics.SourceError)
		return nil, fmt.Errorf("segment text: %w", err)
	}

	if result.Cached {
		metrics.RecordRequest(metrics.SourceCache)
	} else {
		metrics.RecordRequest(metrics.SourceComputed)
	}

	s.logger.Debug("segmented text",
		zap.Int("chars", domain.CharLen(sanitized)),
		zap.Int("segments", len(segments)),
		zap.Int("max_segment_chars", settings.MaxSegmentChars),
		zap.Int("min_join_length", settings.MinJoinLength),
		zap.Bool("cached", result.Cached))

	result.Segments = segments
	return result, nil
}

// mergeOverride layers the non-nil fields of override over the base settings.
func (s *SegmentService) mergeOverride(override *domain.SettingsOverride) *domain.SettingsOverride {
	merged := s.base.Override()
	if override == nil {
		return merged
	}
	if override.MaxSegmentChars != nil {
		merged.MaxSegmentChars = override.MaxSegmentChars
	}
	if override.MinJoinLength != nil {
		merged.MinJoinLength = override.MinJoinLength
	}
	return merged
}

// cacheKey identifies a request by everything that affects its output.
func (s *SegmentService) cacheKey(tokenizer string, settings domain.SegmentationSettings, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%d|", tokenizer, settings.MaxSegmentChars, settings.MinJoinLength)
	b.WriteString(text)
	return b.String()
}
